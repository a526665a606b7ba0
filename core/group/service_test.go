package group

import (
	"strings"
	"testing"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/settings"
)

type fakeRepo struct {
	groups   []Group
	members  map[string][]Member
	files    map[string][]File
	messages map[string][]ChatMessage
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		members:  make(map[string][]Member),
		files:    make(map[string][]File),
		messages: make(map[string][]ChatMessage),
	}
}

func (r *fakeRepo) ListGroups() ([]Group, error) { return append([]Group(nil), r.groups...), nil }

func (r *fakeRepo) GetGroup(id string) (Group, error) {
	for _, g := range r.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return Group{}, ErrNotFound
}

func (r *fakeRepo) GetGroupByName(name string) (Group, error) {
	for _, g := range r.groups {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return Group{}, ErrNotFound
}

func (r *fakeRepo) CreateGroup(g Group, creator Member) (Group, error) {
	r.groups = append(r.groups, g)
	r.members[g.ID] = []Member{creator}
	return g, nil
}

func (r *fakeRepo) DeleteGroup(id string) error {
	for i, g := range r.groups {
		if g.ID == id {
			r.groups = append(r.groups[:i], r.groups[i+1:]...)
			break
		}
	}
	delete(r.members, id)
	delete(r.files, id)
	delete(r.messages, id)
	return nil
}

func (r *fakeRepo) ListMembers(groupID string) ([]Member, error) {
	return append([]Member(nil), r.members[groupID]...), nil
}

func (r *fakeRepo) AddMember(groupID string, m Member) error {
	r.members[groupID] = append(r.members[groupID], m)
	return nil
}

func (r *fakeRepo) RemoveMember(groupID, studentID string) error {
	members := r.members[groupID]
	kept := members[:0]
	for _, m := range members {
		if m.StudentID != studentID {
			kept = append(kept, m)
		}
	}
	r.members[groupID] = kept
	return nil
}

func (r *fakeRepo) ListFiles(groupID string) ([]File, error) {
	return append([]File(nil), r.files[groupID]...), nil
}

func (r *fakeRepo) AddFile(groupID string, f File) error {
	r.files[groupID] = append([]File{f}, r.files[groupID]...)
	return nil
}

func (r *fakeRepo) RemoveFile(groupID, fileID string) error {
	files := r.files[groupID]
	kept := files[:0]
	for _, f := range files {
		if f.ID != fileID {
			kept = append(kept, f)
		}
	}
	r.files[groupID] = kept
	return nil
}

func (r *fakeRepo) ListMessages(groupID string) ([]ChatMessage, error) {
	return append([]ChatMessage(nil), r.messages[groupID]...), nil
}

func (r *fakeRepo) AddMessage(groupID string, m ChatMessage) error {
	r.messages[groupID] = append(r.messages[groupID], m)
	return nil
}

type fakeSettingsRepo struct {
	s settings.Settings
}

func (r *fakeSettingsRepo) GetSettings() settings.Settings { return r.s }
func (r *fakeSettingsRepo) SaveSettings(s settings.Settings) error {
	r.s = s
	return nil
}

type fakeMailService struct {
	sent []*core.EmailMessage
}

func (svc *fakeMailService) SendMessages(messages ...*core.EmailMessage) {
	svc.sent = append(svc.sent, messages...)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, nil, nil, "")
}

func TestCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	g, err := svc.Create("Math Club", "22-00001")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID == "" || g.Name != "Math Club" || g.CreatorID != "22-00001" {
		t.Errorf("Create() = %+v", g)
	}
	members, _ := repo.ListMembers(g.ID)
	if len(members) != 1 || members[0].StudentID != "22-00001" || members[0].Role != RoleAdmin {
		t.Errorf("members = %+v, want sole creator admin", members)
	}

	// duplicate name, case-insensitive
	if _, err := svc.Create("math club", "22-00002"); err != ErrNameTaken {
		t.Errorf("Create(math club) error = %v, want ErrNameTaken", err)
	}
	groups, _ := svc.List()
	if len(groups) != 1 || groups[0].Name != "Math Club" {
		t.Errorf("groups = %+v, want single Math Club", groups)
	}

	if _, err := svc.Create("  ", "22-00001"); err == nil {
		t.Error("Create() with blank name should fail")
	}
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	g, _ := svc.Create("Math Club", "22-00001")
	_, _ = svc.Invite(g.ID, "22-00003")
	_, _ = svc.UploadFile(g.ID, "a.pdf", "22-00001")
	_, _ = svc.PostMessage(g.ID, "22-00001", "hello")

	if err := svc.Delete(g.ID, "22-00002"); !core.IsPermission(err) {
		t.Errorf("Delete() by non-creator error = %v, want permission error", err)
	}
	// nothing changed
	if members, _ := repo.ListMembers(g.ID); len(members) != 2 {
		t.Errorf("members len = %d, want 2 after failed delete", len(members))
	}
	if files, _ := repo.ListFiles(g.ID); len(files) != 1 {
		t.Errorf("files len = %d, want 1 after failed delete", len(files))
	}

	if err := svc.Delete(g.ID, "22-00001"); err != nil {
		t.Fatalf("Delete() by creator failed: %v", err)
	}
	if _, err := repo.GetGroup(g.ID); !core.IsNotFound(err) {
		t.Error("group still present after delete")
	}
	if len(repo.members[g.ID])+len(repo.files[g.ID])+len(repo.messages[g.ID]) != 0 {
		t.Error("group collections not cascaded on delete")
	}

	if err := svc.Delete("nope", "22-00001"); !core.IsNotFound(err) {
		t.Errorf("Delete(nope) error = %v, want not found", err)
	}
}

func TestInvite(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	g, _ := svc.Create("Math Club", "22-00001")

	if _, err := svc.Invite(g.ID, "notaformat"); err == nil {
		t.Error("Invite() with bad format should fail")
	}
	if members, _ := repo.ListMembers(g.ID); len(members) != 1 {
		t.Errorf("members len = %d, want unchanged 1", len(members))
	}

	m, err := svc.Invite(g.ID, "22-00003")
	if err != nil {
		t.Fatalf("Invite() failed: %v", err)
	}
	if m.Role != RoleMember {
		t.Errorf("Role = %q, want member", m.Role)
	}

	if _, err := svc.Invite(g.ID, "22-00003"); err != ErrAlreadyMember {
		t.Errorf("second Invite() error = %v, want ErrAlreadyMember", err)
	}
	if members, _ := repo.ListMembers(g.ID); len(members) != 2 {
		t.Errorf("members len = %d, want 2", len(members))
	}
}

func TestInviteNotification(t *testing.T) {
	repo := newFakeRepo()
	mailSvc := &fakeMailService{}
	prefs := settings.NewService(&fakeSettingsRepo{})
	svc := NewService(repo, prefs, mailSvc, "students.test")
	g, _ := svc.Create("Math Club", "22-00001")

	// notifications disabled: no email
	_, _ = svc.Invite(g.ID, "22-00003")
	if len(mailSvc.sent) != 0 {
		t.Fatalf("sent %d emails, want 0 with notifications off", len(mailSvc.sent))
	}

	on := true
	if _, err := prefs.Save(settings.UpdateSettings{EmailNotifications: &on}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	_, _ = svc.Invite(g.ID, "22-00004")
	if len(mailSvc.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailSvc.sent))
	}
	if to := mailSvc.sent[0].To[0].Address; to != "22-00004@students.test" {
		t.Errorf("To = %q, want 22-00004@students.test", to)
	}
}

func TestLeave(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	g, _ := svc.Create("Math Club", "22-00001")
	_, _ = svc.Invite(g.ID, "22-00003")

	if err := svc.Leave(g.ID, "22-00003"); err != nil {
		t.Fatalf("Leave() failed: %v", err)
	}
	if members, _ := repo.ListMembers(g.ID); len(members) != 1 {
		t.Errorf("members len = %d, want 1", len(members))
	}
	// leaving again is a no-op
	if err := svc.Leave(g.ID, "22-00003"); err != nil {
		t.Errorf("second Leave() failed: %v", err)
	}
}

func TestFiles(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	g, _ := svc.Create("Math Club", "22-00001")

	if _, err := svc.UploadFile(g.ID, "a.pdf", "22-00003"); err != nil {
		t.Fatalf("UploadFile() failed: %v", err)
	}
	if _, err := svc.UploadFile(g.ID, "b.pdf", "22-00003"); err != nil {
		t.Fatalf("UploadFile() failed: %v", err)
	}

	// most-recent-first
	files, _ := repo.ListFiles(g.ID)
	if len(files) != 2 || files[0].Name != "b.pdf" || files[1].Name != "a.pdf" {
		t.Errorf("files = %+v, want [b.pdf a.pdf]", files)
	}
	if files[0].ID == files[1].ID {
		t.Error("file ids are not unique")
	}

	// neither uploader nor creator
	if err := svc.DeleteFile(g.ID, files[0].ID, "22-00005"); !core.IsPermission(err) {
		t.Errorf("DeleteFile() by stranger error = %v, want permission error", err)
	}
	// uploader may delete
	if err := svc.DeleteFile(g.ID, files[0].ID, "22-00003"); err != nil {
		t.Errorf("DeleteFile() by uploader failed: %v", err)
	}
	// group creator may delete
	if err := svc.DeleteFile(g.ID, files[1].ID, "22-00001"); err != nil {
		t.Errorf("DeleteFile() by creator failed: %v", err)
	}
	if err := svc.DeleteFile(g.ID, "nope", "22-00001"); !core.IsNotFound(err) {
		t.Errorf("DeleteFile(nope) error = %v, want not found", err)
	}
}

func TestPostMessage(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	g, _ := svc.Create("Math Club", "22-00001")

	if _, err := svc.PostMessage(g.ID, "22-00001", "   "); err == nil {
		t.Error("PostMessage() with blank text should fail")
	}
	if msgs, _ := repo.ListMessages(g.ID); len(msgs) != 0 {
		t.Errorf("messages len = %d, want 0", len(msgs))
	}

	first, err := svc.PostMessage(g.ID, "22-00001", "hello")
	if err != nil {
		t.Fatalf("PostMessage() failed: %v", err)
	}
	if first.SenderID != "22-00001" || first.Message != "hello" || first.Timestamp.IsZero() {
		t.Errorf("PostMessage() = %+v", first)
	}
	_, _ = svc.PostMessage(g.ID, "", "anonymous hello")

	msgs, _ := repo.ListMessages(g.ID)
	if len(msgs) != 2 || msgs[0].Message != "hello" || msgs[1].SenderID != "User" {
		t.Errorf("messages = %+v, want append order with User fallback", msgs)
	}
}
