package usecases

import (
	"context"
	"time"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
	"github.com/0xcro3dile/neurobot-go/internal/domain/ports"
)

// ChatSystemPrompt frames every chat exchange.
const ChatSystemPrompt = "You are Neurobot, a professional expert in B2B sales and document analysis."

const defaultChatTimeout = 10 * time.Second

// ChatUseCase forwards a free-text message to the model.
type ChatUseCase struct {
	completer
}

// NewChatUseCase creates a ChatUseCase. A non-positive timeout uses 10s.
func NewChatUseCase(llm ports.LLMService, metrics ports.Metrics, timeout time.Duration) *ChatUseCase {
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	return &ChatUseCase{completer: newCompleter(llm, metrics, timeout)}
}

// Chat returns the model's trimmed reply to req.Message. The message is
// forwarded as-is, without validation.
func (uc *ChatUseCase) Chat(ctx context.Context, req *entities.ChatRequest) (*entities.Reply, error) {
	return uc.complete(ctx, "chat", ChatSystemPrompt, req.Message)
}
