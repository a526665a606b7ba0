package session

import (
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
)

// Roles
const (
	RoleStudent   = "Student"
	RoleProfessor = "Professor"
)

type State int

const (
	Anonymous State = iota
	RoleChosen
	Authenticated
)

func (s State) String() string {
	switch s {
	case RoleChosen:
		return "RoleChosen"
	case Authenticated:
		return "Authenticated"
	default:
		return "Anonymous"
	}
}

var (
	// errors
	ErrUnknownRole        = errors.New("unknown role")
	ErrNotRoleChosen      = errors.New("no role chosen yet")
	errMissingCredentials = errors.New("please enter both ID and password")
	errInvalidStudentNo   = errors.New("please enter a valid student number (e.g., 22-12345)")
)

// Session tracks which role/identity is currently authenticated. It is held
// in memory only and never persisted; a fresh process always starts Anonymous.
type Session struct {
	state     State
	role      string
	studentNo string
}

func New() *Session {
	return &Session{state: Anonymous}
}

func (s *Session) State() State { return s.state }
func (s *Session) Role() string { return s.role }

// StudentNo returns the authenticated student number; empty for professors
// and unauthenticated sessions.
func (s *Session) StudentNo() string { return s.studentNo }

func (s *Session) IsAuthenticated() bool { return s.state == Authenticated }

// Identity returns the display identity of the authenticated user: the
// student number for students, "(Professor)" for professors.
func (s *Session) Identity() string {
	if s.role == RoleStudent {
		return s.studentNo
	}
	if s.state == Authenticated {
		return "(Professor)"
	}
	return ""
}

// ChooseRole moves Anonymous -> RoleChosen. Choosing again before logging in
// simply replaces the pending role.
func (s *Session) ChooseRole(role string) error {
	if role != RoleStudent && role != RoleProfessor {
		return core.NewValidationError(ErrUnknownRole, core.FieldError{Field: "role", Error: ErrUnknownRole.Error()})
	}
	if s.state == Authenticated {
		return errors.New("already authenticated; log out first")
	}
	s.role = role
	s.state = RoleChosen
	return nil
}

// SubmitCredentials moves RoleChosen -> Authenticated. Both fields must be
// non-empty and student IDs must match the DD-DDDDD format; any password is
// otherwise accepted. This is a demo simulation, not a security boundary.
func (s *Session) SubmitCredentials(id, password string) error {
	if s.state != RoleChosen {
		return ErrNotRoleChosen
	}
	id = core.CleanString(id)
	password = core.CleanString(password)

	if s.role == RoleStudent && !core.ValidStudentNo(id) {
		return core.NewValidationError(errInvalidStudentNo, core.FieldError{Field: "id", Error: errInvalidStudentNo.Error()})
	}
	if id == "" || password == "" {
		return core.NewValidationError(errMissingCredentials)
	}

	if s.role == RoleStudent {
		s.studentNo = id
	} else {
		s.studentNo = ""
	}
	s.state = Authenticated
	return nil
}

// Logout moves any state back to Anonymous, clearing the identity.
func (s *Session) Logout() {
	s.state = Anonymous
	s.role = ""
	s.studentNo = ""
}
