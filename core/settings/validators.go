package settings

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/studysync/core"
)

// password policy
var (
	pwdMinLen     = 8
	pwdMaxSim     = .7
	pwdMinLenErr  = fmt.Errorf("password must contain at least %d characters", pwdMinLen)
	pwdNoSpaceErr = errors.New("password must not contain whitespace")
	pwdAllNumErr  = errors.New("password cannot be entirely numeric")
	pwdTooSimErr  = errors.New("password cannot be similar to the display name")

	errMissingPasswords = errors.New("please fill both old and new password fields")
	errWrongOldPassword = errors.New("old password is incorrect")
)

// validatePassword applies the password policy to provided password:
// - minLen: 8
// - no whitespace
// - no all numeric
// - no display name similarity
func validatePassword(pwd, displayName string) error {
	reportErr := func(err error) error {
		return core.NewValidationError(err, core.FieldError{Field: "new_password", Error: err.Error()})
	}

	if len(pwd) < pwdMinLen {
		return reportErr(pwdMinLenErr)
	}
	var digitCount int
	for _, char := range []rune(pwd) {
		if unicode.IsSpace(char) {
			return reportErr(pwdNoSpaceErr)
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
	}
	if digitCount == len([]rune(pwd)) {
		return reportErr(pwdAllNumErr)
	}

	if displayName != "" {
		ratio := difflib.NewMatcher(
			strings.Split(strings.ToLower(pwd), ""),
			strings.Split(strings.ToLower(displayName), ""),
		).QuickRatio()
		if ratio >= pwdMaxSim {
			return reportErr(pwdTooSimErr)
		}
	}
	return nil
}
