package settings

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/studysync/core"
)

type (
	// Settings is the single per-profile preferences record. Field names
	// match the persisted blob of earlier releases.
	Settings struct {
		DisplayName        string `json:"displayName"`
		EmailNotifications bool   `json:"emailNotifications"`
		PasswordHash       []byte `json:"password_hash,omitempty"`
	}

	// UpdateSettings defines what may be provided to modify Settings;
	// nil fields keep their current value.
	UpdateSettings struct {
		DisplayName        *string `json:"display_name"`
		EmailNotifications *bool   `json:"email_notifications"`
	}

	ChangePassword struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required"`
	}

	Repository interface {
		GetSettings() Settings
		SaveSettings(s Settings) error
	}

	Service struct {
		repo Repository
	}
)

func (s *Settings) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Settings) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Get() Settings {
	return svc.repo.GetSettings()
}

// Save merges the provided fields into the stored settings and persists.
func (svc *Service) Save(us UpdateSettings) (Settings, error) {
	s := svc.repo.GetSettings()
	if us.DisplayName != nil {
		s.DisplayName = core.CleanString(*us.DisplayName)
	}
	if us.EmailNotifications != nil {
		s.EmailNotifications = *us.EmailNotifications
	}
	if err := svc.repo.SaveSettings(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// UpdatePassword replaces the stored password hash. The old password is only
// checked once a hash exists; login itself never checks it (demo semantics).
func (svc *Service) UpdatePassword(cp ChangePassword) error {
	cp.OldPassword = core.CleanString(cp.OldPassword)
	cp.NewPassword = core.CleanString(cp.NewPassword)
	if cp.OldPassword == "" || cp.NewPassword == "" {
		return core.NewValidationError(errMissingPasswords)
	}

	s := svc.repo.GetSettings()
	if err := validatePassword(cp.NewPassword, s.DisplayName); err != nil {
		return err
	}
	if s.PasswordHash != nil {
		if err := s.CheckPassword(cp.OldPassword); err != nil {
			return core.NewValidationError(errWrongOldPassword, core.FieldError{Field: "old_password", Error: errWrongOldPassword.Error()})
		}
	}
	if err := s.SetPassword(cp.NewPassword); err != nil {
		return err
	}
	return svc.repo.SaveSettings(s)
}
