package convert

import (
	"errors"
	"fmt"
)

// ErrorKind classifies conversion failures. Extraction and manifest kinds
// abort the whole run; content kinds are scoped to a single resource and
// degrade to a placeholder quiz.
type ErrorKind string

const (
	KindExtraction        ErrorKind = "EXTRACTION_ERROR"
	KindManifestNotFound  ErrorKind = "MANIFEST_NOT_FOUND"
	KindManifestParse     ErrorKind = "MANIFEST_PARSE_ERROR"
	KindContentNotFound   ErrorKind = "CONTENT_NOT_FOUND"
	KindContentParse      ErrorKind = "CONTENT_PARSE_ERROR"
	KindUnsupportedFormat ErrorKind = "UNSUPPORTED_FORMAT"
)

// Fatal reports whether the kind aborts the run instead of degrading one
// resource.
func (k ErrorKind) Fatal() bool {
	switch k {
	case KindExtraction, KindManifestNotFound, KindManifestParse:
		return true
	}
	return false
}

// Error is a classified conversion failure wrapping its cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the ErrorKind from err, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}
