package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
	"github.com/0xcro3dile/neurobot-go/internal/domain/ports"
)

// SummarizeSystemPrompt frames every document summary request.
const SummarizeSystemPrompt = "You are an assistant specialized in summarizing PDF documents."

const (
	defaultSummarizeTimeout = 15 * time.Second
	// DefaultMaxChars bounds the extracted text sent upstream.
	DefaultMaxChars = 3000
)

// SummarizeUseCase extracts text from an uploaded PDF and asks the model to
// summarize it.
type SummarizeUseCase struct {
	completer
	parser   ports.DocumentParser
	maxChars int
}

// NewSummarizeUseCase creates a SummarizeUseCase. Non-positive values fall
// back to a 15s timeout and a 3000 character limit.
func NewSummarizeUseCase(
	parser ports.DocumentParser,
	llm ports.LLMService,
	metrics ports.Metrics,
	timeout time.Duration,
	maxChars int,
) *SummarizeUseCase {
	if timeout <= 0 {
		timeout = defaultSummarizeTimeout
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &SummarizeUseCase{
		completer: newCompleter(llm, metrics, timeout),
		parser:    parser,
		maxChars:  maxChars,
	}
}

// Summarize parses doc, truncates its text and returns the model's summary.
// Truncation is silent to the caller.
func (uc *SummarizeUseCase) Summarize(ctx context.Context, doc *entities.Document) (*entities.Reply, error) {
	const op = "summarize"

	// No parsing without a credential.
	if err := uc.configured(op); err != nil {
		return nil, err
	}

	text, err := uc.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	return uc.complete(ctx, op, SummarizeSystemPrompt, BuildSummaryPrompt(text))
}

// Extract returns the trimmed, truncated text of doc.
func (uc *SummarizeUseCase) Extract(ctx context.Context, doc *entities.Document) (string, error) {
	const op = "summarize"

	raw, err := uc.parser.Parse(ctx, doc.Data, doc.Name)
	if err != nil {
		return "", entities.NewError(entities.KindParsing, op, err)
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", entities.NewError(entities.KindParsing, op, entities.ErrEmptyDocument)
	}

	text, truncated := TruncateText(text, uc.maxChars)
	if truncated {
		uc.metrics.DocumentTruncated()
	}
	return text, nil
}

// BuildSummaryPrompt embeds text in the fixed summary instruction.
func BuildSummaryPrompt(text string) string {
	return fmt.Sprintf("Here is the content of the document:\n\n%s\n\nCan you summarize it?", text)
}

// TruncateText keeps the first max characters of s. Characters are counted
// as code points so multi-byte text is never split mid-rune.
func TruncateText(s string, max int) (string, bool) {
	if utf8.RuneCountInString(s) <= max {
		return s, false
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i], true
		}
		n++
	}
	return s, false
}
