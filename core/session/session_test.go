package session

import (
	"testing"

	"github.com/trezcool/studysync/core"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()
	if s.State() != Anonymous {
		t.Fatalf("State() = %v, want Anonymous", s.State())
	}

	if err := s.ChooseRole("Admin"); err == nil {
		t.Error("ChooseRole(Admin) should fail")
	}
	if err := s.ChooseRole(RoleStudent); err != nil {
		t.Fatalf("ChooseRole(Student) failed: %v", err)
	}
	if s.State() != RoleChosen {
		t.Fatalf("State() = %v, want RoleChosen", s.State())
	}

	// switching the pending role is allowed
	if err := s.ChooseRole(RoleProfessor); err != nil {
		t.Fatalf("ChooseRole(Professor) failed: %v", err)
	}
	if err := s.ChooseRole(RoleStudent); err != nil {
		t.Fatalf("ChooseRole(Student) failed: %v", err)
	}

	if err := s.SubmitCredentials("22-12345", "hunter2"); err != nil {
		t.Fatalf("SubmitCredentials() failed: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after login")
	}
	if s.StudentNo() != "22-12345" {
		t.Errorf("StudentNo() = %q, want %q", s.StudentNo(), "22-12345")
	}
	if s.Identity() != "22-12345" {
		t.Errorf("Identity() = %q, want %q", s.Identity(), "22-12345")
	}

	s.Logout()
	if s.State() != Anonymous || s.Role() != "" || s.StudentNo() != "" {
		t.Errorf("Logout() left session dirty: %+v", s)
	}
}

func TestSubmitCredentialsValidation(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		id      string
		pwd     string
		wantErr bool
	}{
		{name: "student ok", role: RoleStudent, id: "22-12345", pwd: "pwd"},
		{name: "student bad format", role: RoleStudent, id: "221-2345", pwd: "pwd", wantErr: true},
		{name: "student short", role: RoleStudent, id: "22-1234", pwd: "pwd", wantErr: true},
		{name: "student letters", role: RoleStudent, id: "AB-12345", pwd: "pwd", wantErr: true},
		{name: "student empty", role: RoleStudent, id: "", pwd: "pwd", wantErr: true},
		{name: "student no password", role: RoleStudent, id: "22-12345", pwd: "", wantErr: true},
		{name: "professor ok", role: RoleProfessor, id: "prof-smith", pwd: "pwd"},
		{name: "professor empty id", role: RoleProfessor, id: "", pwd: "pwd", wantErr: true},
		{name: "professor empty password", role: RoleProfessor, id: "prof-smith", pwd: "  ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			if err := s.ChooseRole(tt.role); err != nil {
				t.Fatalf("ChooseRole() failed: %v", err)
			}
			err := s.SubmitCredentials(tt.id, tt.pwd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SubmitCredentials() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				// failed logins remain in RoleChosen and surface a validation error
				if s.State() != RoleChosen {
					t.Errorf("State() = %v, want RoleChosen", s.State())
				}
				if _, ok := err.(*core.ValidationError); !ok {
					t.Errorf("error type = %T, want *core.ValidationError", err)
				}
			}
		})
	}
}

func TestSubmitCredentialsRequiresRole(t *testing.T) {
	s := New()
	if err := s.SubmitCredentials("22-12345", "pwd"); err != ErrNotRoleChosen {
		t.Errorf("SubmitCredentials() error = %v, want ErrNotRoleChosen", err)
	}
}

func TestProfessorIdentity(t *testing.T) {
	s := New()
	_ = s.ChooseRole(RoleProfessor)
	if err := s.SubmitCredentials("prof-smith", "pwd"); err != nil {
		t.Fatalf("SubmitCredentials() failed: %v", err)
	}
	if s.StudentNo() != "" {
		t.Errorf("StudentNo() = %q, want empty for professor", s.StudentNo())
	}
	if s.Identity() != "(Professor)" {
		t.Errorf("Identity() = %q, want (Professor)", s.Identity())
	}
}
