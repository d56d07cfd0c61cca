package llm

import (
	"context"
	"errors"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
	"github.com/0xcro3dile/neurobot-go/internal/domain/ports"
)

// Unconfigured stands in for the model when no credential is set. Every
// call fails without network I/O.
type Unconfigured struct{}

func (Unconfigured) Configured() bool { return false }

func (Unconfigured) Complete(context.Context, []entities.ChatMessage) (string, error) {
	return "", entities.NewError(entities.KindConfiguration, "complete", entities.ErrMissingCredential)
}

// New returns an OpenAIAdapter, or Unconfigured when opts carries no
// credential.
func New(opts Options) (ports.LLMService, error) {
	adapter, err := NewOpenAIAdapter(opts)
	if errors.Is(err, entities.ErrMissingCredential) {
		return Unconfigured{}, nil
	}
	if err != nil {
		return nil, err
	}
	return adapter, nil
}
