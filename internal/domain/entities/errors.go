package entities

import (
	"errors"
	"fmt"
)

// ErrorKind tags a failure so the transport layer can map it without
// inspecting the cause.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfiguration
	KindUpstream
	KindParsing
	KindValidation
	KindRendering
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindUpstream:
		return "upstream"
	case KindParsing:
		return "parsing"
	case KindValidation:
		return "validation"
	case KindRendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// ErrMissingCredential is returned when no API key was configured.
var ErrMissingCredential = errors.New("API credential not configured")

// ErrEmptyDocument is returned when a PDF yields no text.
var ErrEmptyDocument = errors.New("document contains no extractable text")

// ErrMissingFile is returned when an upload carries no file part.
var ErrMissingFile = errors.New("no file in request")

// Error is a tagged failure returned by use cases.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewError wraps err with a kind and the name of the failing operation.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
