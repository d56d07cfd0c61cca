// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces only.
package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
	"github.com/0xcro3dile/neurobot-go/internal/domain/ports"
)

// completer runs a single timed model call and tags any failure.
type completer struct {
	llm     ports.LLMService
	metrics ports.Metrics
	timeout time.Duration
}

func newCompleter(llm ports.LLMService, metrics ports.Metrics, timeout time.Duration) completer {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return completer{llm: llm, metrics: metrics, timeout: timeout}
}

// configured fails with KindConfiguration when no credential is present.
func (c completer) configured(op string) error {
	if c.llm == nil || !c.llm.Configured() {
		c.metrics.ObserveUpstream(op, ports.OutcomeUnconfigured, 0)
		return entities.NewError(entities.KindConfiguration, op, entities.ErrMissingCredential)
	}
	return nil
}

// complete sends a system/user pair and returns the trimmed reply.
func (c completer) complete(ctx context.Context, op, system, user string) (*entities.Reply, error) {
	if err := c.configured(op); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []entities.ChatMessage{
		{Role: entities.RoleSystem, Content: system},
		{Role: entities.RoleUser, Content: user},
	}

	start := time.Now()
	content, err := c.llm.Complete(callCtx, messages)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		c.metrics.ObserveUpstream(op, ports.OutcomeError, elapsed)
		if entities.KindOf(err) == entities.KindConfiguration {
			return nil, err
		}
		return nil, entities.NewError(entities.KindUpstream, op, err)
	}
	c.metrics.ObserveUpstream(op, ports.OutcomeSuccess, elapsed)

	return &entities.Reply{Response: strings.TrimSpace(content)}, nil
}
