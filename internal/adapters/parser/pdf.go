// Package parser provides document parsing adapters.
// Adapter implementing ports.DocumentParser with a pure-Go PDF reader.
package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotPDF is returned when the input does not start like a PDF file.
var ErrNotPDF = errors.New("input is not a PDF document")

// PDFParser implements ports.DocumentParser.
type PDFParser struct{}

// NewPDFParser creates a new PDF parser.
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Parse extracts plain text from PDF bytes, page by page in order, one
// line per text row.
func (p *PDFParser) Parse(ctx context.Context, data []byte, filename string) (text string, err error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF")) {
		return "", fmt.Errorf("%s: %w", filename, ErrNotPDF)
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("reading %s: %v", filename, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filename, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		// Rows come back top to bottom, each row's text sorted left to right.
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("extracting page %d of %s: %w", i, filename, err)
		}
		for _, row := range rows {
			for _, t := range row.Content {
				sb.WriteString(t.S)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// SupportedFormats returns formats this parser handles.
func (p *PDFParser) SupportedFormats() []string {
	return []string{"pdf"}
}
