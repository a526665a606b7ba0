package core

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

var ErrAssistUnavailable = errors.New("assist service unavailable")

// AssistService is any service that can answer a free-form text instruction.
type AssistService interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// AssistPrompt builds the instruction sent for an action ("Explain", "Edit")
// applied to text selected in a course module.
func AssistPrompt(action, selection string) string {
	return fmt.Sprintf("%s the following text:\n\n%s", action, selection)
}
