package course

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
)

var (
	// errors
	ErrSubjectNotFound = core.NewNotFoundError("subject not found")
	errUnknownAction   = errors.New("unknown assist action; use Explain or Edit")
	errEmptySelection  = errors.New("no text selected")
)

// Assist actions offered on selected module text.
const (
	ActionExplain = "Explain"
	ActionEdit    = "Edit"
)

type (
	Repository interface {
		GetNote(key string) string
		SetNote(key, text string) error
		GetSubmission(key string) (string, bool)
		SetSubmission(key, fileName string) error
		ClearSubmission(key string) error
	}

	Service struct {
		repo   Repository
		assist core.AssistService
	}
)

func NewService(repo Repository, assist core.AssistService) *Service {
	return &Service{repo: repo, assist: assist}
}

func (svc *Service) Subjects() []Subject {
	return subjects
}

func (svc *Service) GetSubject(name string) (SubjectDetail, error) {
	for _, subj := range subjects {
		if subj.Name == name {
			detail := SubjectDetail{
				Subject:     subj,
				Sections:    sections,
				Submissions: make(map[string]string),
			}
			for _, item := range sections[len(sections)-1].Items {
				if fileName, ok := svc.repo.GetSubmission(SubmissionKey(name, item.Title)); ok {
					detail.Submissions[item.Title] = fileName
				}
			}
			return detail, nil
		}
	}
	return SubjectDetail{}, ErrSubjectNotFound
}

// GetNote returns the private note for an item; empty when never written.
func (svc *Service) GetNote(section, item string) string {
	return svc.repo.GetNote(NoteKey(section, item))
}

// SetNote overwrites the note and persists immediately; last write wins.
func (svc *Service) SetNote(section, item, text string) error {
	return svc.repo.SetNote(NoteKey(section, item), text)
}

// GetSubmission returns the submitted file name; ok is false when nothing
// has been submitted for the assignment.
func (svc *Service) GetSubmission(subject, assignment string) (string, bool) {
	return svc.repo.GetSubmission(SubmissionKey(subject, assignment))
}

func (svc *Service) SetSubmission(subject, assignment, fileName string) error {
	return svc.repo.SetSubmission(SubmissionKey(subject, assignment), fileName)
}

// ClearSubmission unsubmits an assignment.
func (svc *Service) ClearSubmission(subject, assignment string) error {
	return svc.repo.ClearSubmission(SubmissionKey(subject, assignment))
}

// Ask forwards an Explain/Edit instruction for selected module text to the
// assist service. It changes no state; failures surface to the caller.
func (svc *Service) Ask(ctx context.Context, action, selection string) (string, error) {
	action = core.CleanString(action)
	if action != ActionExplain && action != ActionEdit {
		return "", core.NewValidationError(errUnknownAction, core.FieldError{Field: "action", Error: errUnknownAction.Error()})
	}
	selection = core.CleanString(selection)
	if selection == "" {
		return "", core.NewValidationError(errEmptySelection, core.FieldError{Field: "text", Error: errEmptySelection.Error()})
	}
	resp, err := svc.assist.Ask(ctx, core.AssistPrompt(action, selection))
	if err != nil {
		return "", errors.Wrap(err, "asking assist service")
	}
	return resp, nil
}
