package core

import (
	"reflect"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	studentNoTag   = "studentno"
	studentNoText  = "must be a valid student number (e.g., 22-12345)"
	studentNoRegex = regexp.MustCompile(`^\d{2}-\d{5}$`)

	isoDateTag   = "isodate"
	isoDateText  = "must be a date in YYYY-MM-DD format"
	isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// ValidStudentNo reports whether s matches the student number format
// (two digits, hyphen, five digits).
func ValidStudentNo(s string) bool {
	return studentNoRegex.MatchString(s)
}

// ValidISODate reports whether s is a YYYY-MM-DD date string.
func ValidISODate(s string) bool {
	return isoDateRegex.MatchString(s)
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(studentNoTag, studentNoValidation)
	RegisterCustomTranslation(validate, translator, studentNoTag, studentNoText)

	_ = validate.RegisterValidation(isoDateTag, isoDateValidation)
	RegisterCustomTranslation(validate, translator, isoDateTag, isoDateText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

func studentNoValidation(fl validator.FieldLevel) bool {
	return ValidStudentNo(fl.Field().String())
}

func isoDateValidation(fl validator.FieldLevel) bool {
	return ValidISODate(fl.Field().String())
}
