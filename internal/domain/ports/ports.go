// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions; adapters implement them.
package ports

import (
	"context"
	"io"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
)

// LLMService sends an ordered message list to a chat-completion model.
type LLMService interface {
	// Complete returns the content of the model's first choice.
	Complete(ctx context.Context, messages []entities.ChatMessage) (string, error)

	// Configured reports whether a credential is available. When false,
	// Complete fails without performing any I/O.
	Configured() bool
}

// DocumentParser extracts text from binary document formats.
type DocumentParser interface {
	// Parse extracts text content from document bytes, page by page.
	Parse(ctx context.Context, data []byte, filename string) (string, error)

	// SupportedFormats returns formats this parser handles (e.g., "pdf").
	SupportedFormats() []string
}

// DocumentLoader reads a document from a local path.
type DocumentLoader interface {
	Load(ctx context.Context, path string) (*entities.Document, error)
}

// DocumentRenderer writes conversation lines as a document.
type DocumentRenderer interface {
	// Render writes lines in order to w.
	Render(ctx context.Context, lines []string, w io.Writer) error

	// ContentType is the MIME type of the rendered output.
	ContentType() string
}

// FileWatcher monitors a file for changes.
type FileWatcher interface {
	// Watch starts monitoring path and emits events until ctx is done.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)

// Metrics records gateway telemetry. Implementations must be safe for
// concurrent use.
type Metrics interface {
	// ObserveUpstream records one model call for operation.
	ObserveUpstream(operation string, outcome string, seconds float64)

	// DocumentTruncated counts an extracted text cut to the length limit.
	DocumentTruncated()

	// ConversationExported counts a rendered export.
	ConversationExported()
}

// Upstream call outcomes reported to Metrics.
const (
	OutcomeSuccess      = "success"
	OutcomeError        = "error"
	OutcomeUnconfigured = "unconfigured"
)

// NopMetrics discards all observations.
type NopMetrics struct{}

func (NopMetrics) ObserveUpstream(string, string, float64) {}
func (NopMetrics) DocumentTruncated()                       {}
func (NopMetrics) ConversationExported()                    {}
