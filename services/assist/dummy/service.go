package dummyassist

import (
	"context"

	"github.com/trezcool/studysync/core"
)

// service answers every prompt with a canned response; the default when no
// assist API key is configured, and used in tests.
type service struct{}

var _ core.AssistService = (*service)(nil)

func NewService() core.AssistService {
	return &service{}
}

func (service) Ask(_ context.Context, prompt string) (string, error) {
	return "This is a simulated AI response to your request:\n\n" + prompt, nil
}
