package group

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/settings"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound      = core.NewNotFoundError("group not found")
	ErrFileNotFound  = core.NewNotFoundError("file not found")
	ErrNameTaken     = core.NewConflictError("a group with this name already exists")
	ErrAlreadyMember = core.NewConflictError("member already in group")
	ErrNotCreator    = core.NewPermissionError("only the group creator can delete the group")
	ErrNotUploader   = core.NewPermissionError("only the uploader or the group creator can delete a file")

	errMissingName      = errors.New("please enter a group name")
	errMissingFileName  = errors.New("file name is required")
	errEmptyMessage     = errors.New("message cannot be empty")
	errInvalidStudentNo = errors.New("invalid student ID format; use e.g. 22-12345")
)

type (
	Repository interface {
		ListGroups() ([]Group, error)
		GetGroup(id string) (Group, error)
		// GetGroupByName does a case-insensitive match on the group name.
		GetGroupByName(name string) (Group, error)
		CreateGroup(g Group, creator Member) (Group, error)
		// DeleteGroup removes the group and all of its members, files and
		// chats; all-or-nothing from the caller's point of view.
		DeleteGroup(id string) error

		ListMembers(groupID string) ([]Member, error)
		AddMember(groupID string, m Member) error
		RemoveMember(groupID, studentID string) error

		ListFiles(groupID string) ([]File, error)
		// AddFile prepends; file lists are most-recent-first.
		AddFile(groupID string, f File) error
		RemoveFile(groupID, fileID string) error

		ListMessages(groupID string) ([]ChatMessage, error)
		// AddMessage appends; chats are append-only, oldest-first.
		AddMessage(groupID string, m ChatMessage) error
	}

	Service struct {
		repo          Repository
		prefs         *settings.Service
		mailSvc       core.EmailService
		studentDomain string
	}
)

// NewService returns a group Service. mailSvc may be nil; invite
// notifications are then skipped regardless of the user's preferences.
func NewService(repo Repository, prefs *settings.Service, mailSvc core.EmailService, studentDomain string) *Service {
	return &Service{repo: repo, prefs: prefs, mailSvc: mailSvc, studentDomain: studentDomain}
}

func (svc *Service) List() ([]Group, error) {
	return svc.repo.ListGroups()
}

func (svc *Service) Get(id string) (Detail, error) {
	g, err := svc.repo.GetGroup(id)
	if err != nil {
		return Detail{}, err
	}
	members, err := svc.repo.ListMembers(id)
	if err != nil {
		return Detail{}, err
	}
	files, err := svc.repo.ListFiles(id)
	if err != nil {
		return Detail{}, err
	}
	messages, err := svc.repo.ListMessages(id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Group: g, Members: members, Files: files, Messages: messages}, nil
}

// Create adds a group owned by creatorID and seeds its membership with the
// creator as admin. Names are unique case-insensitively.
func (svc *Service) Create(name, creatorID string) (Group, error) {
	name = core.CleanString(name)
	if name == "" {
		return Group{}, core.NewValidationError(errMissingName, core.FieldError{Field: "group_name", Error: errMissingName.Error()})
	}
	if _, err := svc.repo.GetGroupByName(name); err == nil {
		return Group{}, ErrNameTaken
	} else if !core.IsNotFound(err) {
		return Group{}, err
	}
	g := Group{
		ID:        uuid.New().String(),
		Name:      name,
		CreatorID: creatorID,
	}
	return svc.repo.CreateGroup(g, Member{StudentID: creatorID, Role: RoleAdmin})
}

// Delete removes the group and all of its data. Creator only.
func (svc *Service) Delete(id, requesterID string) error {
	g, err := svc.repo.GetGroup(id)
	if err != nil {
		return err
	}
	if !g.IsCreator(requesterID) {
		return ErrNotCreator
	}
	return svc.repo.DeleteGroup(id)
}

// Invite appends studentNo to the group membership with the "member" role
// and, when email notifications are enabled, emails the invitee.
func (svc *Service) Invite(groupID, studentNo string) (Member, error) {
	g, err := svc.repo.GetGroup(groupID)
	if err != nil {
		return Member{}, err
	}
	studentNo = core.CleanString(studentNo)
	if !core.ValidStudentNo(studentNo) {
		return Member{}, core.NewValidationError(errInvalidStudentNo, core.FieldError{Field: "student_no", Error: errInvalidStudentNo.Error()})
	}
	members, err := svc.repo.ListMembers(groupID)
	if err != nil {
		return Member{}, err
	}
	for _, m := range members {
		if m.StudentID == studentNo {
			return Member{}, ErrAlreadyMember
		}
	}
	m := Member{StudentID: studentNo, Role: RoleMember}
	if err := svc.repo.AddMember(groupID, m); err != nil {
		return Member{}, err
	}
	svc.notifyInvite(g, studentNo)
	return m, nil
}

// Leave removes the matching membership entry; no-op if absent.
func (svc *Service) Leave(groupID, studentID string) error {
	if _, err := svc.repo.GetGroup(groupID); err != nil {
		return err
	}
	return svc.repo.RemoveMember(groupID, studentID)
}

func (svc *Service) UploadFile(groupID, fileName, uploaderID string) (File, error) {
	if _, err := svc.repo.GetGroup(groupID); err != nil {
		return File{}, err
	}
	fileName = core.CleanString(fileName)
	if fileName == "" {
		return File{}, core.NewValidationError(errMissingFileName, core.FieldError{Field: "file_name", Error: errMissingFileName.Error()})
	}
	f := File{
		ID:         uuid.New().String(),
		Name:       fileName,
		UploaderID: uploaderID,
		UploadedAt: NowFunc().UTC(),
	}
	if err := svc.repo.AddFile(groupID, f); err != nil {
		return File{}, err
	}
	return f, nil
}

// DeleteFile removes a file. Uploader or group creator only.
func (svc *Service) DeleteFile(groupID, fileID, requesterID string) error {
	g, err := svc.repo.GetGroup(groupID)
	if err != nil {
		return err
	}
	files, err := svc.repo.ListFiles(groupID)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.ID == fileID {
			if f.UploaderID != requesterID && !g.IsCreator(requesterID) {
				return ErrNotUploader
			}
			return svc.repo.RemoveFile(groupID, fileID)
		}
	}
	return ErrFileNotFound
}

// PostMessage appends a chat message; empty messages are rejected.
func (svc *Service) PostMessage(groupID, senderID, text string) (ChatMessage, error) {
	if _, err := svc.repo.GetGroup(groupID); err != nil {
		return ChatMessage{}, err
	}
	text = core.CleanString(text)
	if text == "" {
		return ChatMessage{}, core.NewValidationError(errEmptyMessage, core.FieldError{Field: "message", Error: errEmptyMessage.Error()})
	}
	if senderID == "" {
		senderID = "User"
	}
	m := ChatMessage{
		SenderID:  senderID,
		Message:   text,
		Timestamp: NowFunc().UTC(),
	}
	if err := svc.repo.AddMessage(groupID, m); err != nil {
		return ChatMessage{}, err
	}
	return m, nil
}

func (svc *Service) notifyInvite(g Group, studentNo string) {
	if svc.mailSvc == nil || svc.prefs == nil || svc.studentDomain == "" {
		return
	}
	if !svc.prefs.Get().EmailNotifications {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: studentNo + "@" + svc.studentDomain}},
		Subject: fmt.Sprintf("You were invited to the group %q", g.Name),
		Body: fmt.Sprintf(
			"Hi %s,\n\nYou have been added to the study group %q. "+
				"Open the Group page in StudySync to see its files and chat.\n", studentNo, g.Name),
	})
}
