package settings

import "testing"

type fakeRepo struct {
	s Settings
}

func (r *fakeRepo) GetSettings() Settings { return r.s }
func (r *fakeRepo) SaveSettings(s Settings) error {
	r.s = s
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestSaveMerges(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	s, err := svc.Save(UpdateSettings{DisplayName: strPtr("  Alex  ")})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if s.DisplayName != "Alex" || s.EmailNotifications {
		t.Errorf("Save() = %+v, want DisplayName=Alex, notifications off", s)
	}

	s, err = svc.Save(UpdateSettings{EmailNotifications: boolPtr(true)})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if s.DisplayName != "Alex" || !s.EmailNotifications {
		t.Errorf("Save() = %+v, want merge to keep DisplayName", s)
	}
}

func TestUpdatePassword(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	tests := []struct {
		name    string
		old     string
		new     string
		wantErr bool
	}{
		{name: "missing fields", old: "", new: "Sup3r-ok!", wantErr: true},
		{name: "too short", old: "x", new: "sh0rt", wantErr: true},
		{name: "whitespace", old: "x", new: "has a sp4ce!", wantErr: true},
		{name: "all numeric", old: "x", new: "12345678", wantErr: true},
		{name: "first set, any old accepted", old: "whatever", new: "Sup3r-ok!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdatePassword(ChangePassword{OldPassword: tt.old, NewPassword: tt.new})
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// once a hash exists the old password is verified
	if err := svc.UpdatePassword(ChangePassword{OldPassword: "wrong", NewPassword: "An0ther-ok!"}); err == nil {
		t.Error("UpdatePassword() with wrong old password should fail")
	}
	if err := svc.UpdatePassword(ChangePassword{OldPassword: "Sup3r-ok!", NewPassword: "An0ther-ok!"}); err != nil {
		t.Errorf("UpdatePassword() with correct old password failed: %v", err)
	}
	if err := repo.s.CheckPassword("An0ther-ok!"); err != nil {
		t.Errorf("CheckPassword() after update failed: %v", err)
	}
}

func TestUpdatePasswordSimilarity(t *testing.T) {
	repo := &fakeRepo{s: Settings{DisplayName: "alexander"}}
	svc := NewService(repo)
	if err := svc.UpdatePassword(ChangePassword{OldPassword: "x", NewPassword: "alexander1"}); err == nil {
		t.Error("UpdatePassword() similar to display name should fail")
	}
}
