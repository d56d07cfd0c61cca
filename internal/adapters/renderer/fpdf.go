// Package renderer provides document rendering adapters.
// Adapter implementing ports.DocumentRenderer with fpdf.
package renderer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Options configures the page layout.
type Options struct {
	Font       string
	FontSize   float64
	LineHeight float64
}

// PDFRenderer writes each line as a wrapped paragraph on A4 pages.
type PDFRenderer struct {
	font       string
	fontSize   float64
	lineHeight float64
}

// NewPDFRenderer creates a renderer. Zero options default to Arial 12pt
// with 10mm lines.
func NewPDFRenderer(opts Options) *PDFRenderer {
	if opts.Font == "" {
		opts.Font = "Arial"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = 10
	}
	return &PDFRenderer{
		font:       opts.Font,
		fontSize:   opts.FontSize,
		lineHeight: opts.LineHeight,
	}
}

// Render writes lines to w as a PDF. Page breaks are automatic.
func (r *PDFRenderer) Render(ctx context.Context, lines []string, w io.Writer) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont(r.font, "", r.fontSize)

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Width 0 spans to the right margin.
		doc.MultiCell(0, r.lineHeight, ToWinAnsi(line), "", "", false)
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// ContentType is the MIME type of rendered output.
func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

// ToWinAnsi transcodes s to Windows-1252, the encoding of the core PDF
// fonts. Runes outside it become '?'.
func ToWinAnsi(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		sb.WriteByte(b)
	}
	return sb.String()
}
