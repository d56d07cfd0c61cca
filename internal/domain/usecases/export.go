package usecases

import (
	"bytes"
	"context"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
	"github.com/0xcro3dile/neurobot-go/internal/domain/ports"
)

// ExportUseCase renders a conversation to a downloadable document.
type ExportUseCase struct {
	renderer ports.DocumentRenderer
	metrics  ports.Metrics
}

// NewExportUseCase creates an ExportUseCase.
func NewExportUseCase(renderer ports.DocumentRenderer, metrics ports.Metrics) *ExportUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ExportUseCase{renderer: renderer, metrics: metrics}
}

// Export renders conv into memory and returns the document bytes.
// An empty conversation yields a valid blank document.
func (uc *ExportUseCase) Export(ctx context.Context, conv *entities.Conversation) ([]byte, error) {
	var buf bytes.Buffer
	if err := uc.renderer.Render(ctx, conv.Lines, &buf); err != nil {
		return nil, entities.NewError(entities.KindRendering, "export", err)
	}
	uc.metrics.ConversationExported()
	return buf.Bytes(), nil
}

// ContentType is the MIME type of the exported document.
func (uc *ExportUseCase) ContentType() string {
	return uc.renderer.ContentType()
}
