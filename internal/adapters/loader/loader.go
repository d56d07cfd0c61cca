// Package loader provides document loading adapters.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
)

// ErrTooLarge is returned when a file exceeds the loader's size limit.
var ErrTooLarge = errors.New("file exceeds size limit")

// FileLoader reads local files into documents.
type FileLoader struct {
	maxBytes   int64
	extensions map[string]bool
}

// NewFileLoader creates a loader accepting the given formats ("pdf", ...).
// A non-positive maxBytes means no limit; no formats means any file.
func NewFileLoader(maxBytes int64, formats ...string) *FileLoader {
	exts := make(map[string]bool, len(formats))
	for _, f := range formats {
		exts["."+strings.TrimPrefix(strings.ToLower(f), ".")] = true
	}
	return &FileLoader{maxBytes: maxBytes, extensions: exts}
}

// Load reads path into a Document named after the file's base name.
func (l *FileLoader) Load(ctx context.Context, path string) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !l.Supports(path) {
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if l.maxBytes > 0 {
		r = io.LimitReader(file, l.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	return &entities.Document{
		Name: filepath.Base(path),
		Data: data,
	}, nil
}

// Supports reports whether path has one of the accepted extensions.
func (l *FileLoader) Supports(path string) bool {
	if len(l.extensions) == 0 {
		return true
	}
	return l.extensions[strings.ToLower(filepath.Ext(path))]
}
