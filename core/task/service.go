package task

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
)

var (
	// errors
	ErrNotFound     = core.NewNotFoundError("task not found")
	errInvalidDate  = errors.New("invalid date format; use YYYY-MM-DD")
	errMissingTitle = errors.New("task title is required")
)

type (
	// Task is one shared to-do entry. Tasks carry a stable id and are
	// mutated by id, never by list position.
	Task struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		DueDate     string `json:"due_date"` // YYYY-MM-DD or ""
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
	}

	// NewTask contains information needed to add a Task.
	NewTask struct {
		Title       string `json:"title" validate:"required"`
		DueDate     string `json:"due_date" validate:"omitempty,isodate"`
		Description string `json:"description"`
	}

	Repository interface {
		ListTasks() ([]Task, error)
		AddTask(t Task) (Task, error)
		GetTask(id string) (Task, error)
		UpdateTask(t Task) (Task, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all tasks in insertion order.
func (svc *Service) List() ([]Task, error) {
	return svc.repo.ListTasks()
}

// DueOn returns the tasks due on a YYYY-MM-DD date, in insertion order.
func (svc *Service) DueOn(date string) ([]Task, error) {
	all, err := svc.repo.ListTasks()
	if err != nil {
		return nil, err
	}
	due := make([]Task, 0)
	for _, t := range all {
		if t.DueDate == date {
			due = append(due, t)
		}
	}
	return due, nil
}

// Add appends a new incomplete task.
func (svc *Service) Add(nt NewTask) (Task, error) {
	nt.Title = core.CleanString(nt.Title)
	nt.DueDate = core.CleanString(nt.DueDate)
	if nt.Title == "" {
		return Task{}, core.NewValidationError(errMissingTitle, core.FieldError{Field: "title", Error: errMissingTitle.Error()})
	}
	if nt.DueDate != "" && !core.ValidISODate(nt.DueDate) {
		return Task{}, core.NewValidationError(errInvalidDate, core.FieldError{Field: "due_date", Error: errInvalidDate.Error()})
	}
	t := Task{
		ID:          uuid.New().String(),
		Title:       nt.Title,
		DueDate:     nt.DueDate,
		Description: nt.Description,
	}
	return svc.repo.AddTask(t)
}

// Toggle flips the completed flag of the task with the given id.
func (svc *Service) Toggle(id string) (Task, error) {
	t, err := svc.repo.GetTask(id)
	if err != nil {
		return Task{}, err
	}
	t.Completed = !t.Completed
	return svc.repo.UpdateTask(t)
}
