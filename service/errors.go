package service

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies upload failures; the HTTP layer maps kinds to status codes.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindExtraction
	KindEmbedding
	KindStore
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindExtraction:
		return "extraction"
	case KindEmbedding:
		return "embedding"
	case KindStore:
		return "store"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// UploadError carries the kind of a failed upload step and the underlying cause.
type UploadError struct {
	Kind ErrorKind
	Op   string // What was being called, e.g. "embedding provider"
	Err  error
}

func (e *UploadError) Error() string {
	switch e.Kind {
	case KindValidation:
		return e.Err.Error()
	case KindExtraction:
		return fmt.Sprintf("Failed to extract text from PDF: %v", e.Err)
	case KindEmbedding:
		return fmt.Sprintf("Embedding provider error: %v", e.Err)
	case KindStore:
		return fmt.Sprintf("Database error: %v", e.Err)
	case KindTimeout:
		return fmt.Sprintf("Timed out waiting for %s: %v", e.Op, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *UploadError) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or zero when err is not an UploadError.
func KindOf(err error) ErrorKind {
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr.Kind
	}
	return 0
}

// FileTooLargeError reports an upload above limit bytes.
func FileTooLargeError(limit int64) error {
	return validationError(fmt.Sprintf("File too large: limit is %d bytes.", limit))
}

func validationError(msg string) error {
	return &UploadError{Kind: KindValidation, Op: "validation", Err: errors.New(msg)}
}

// externalError turns a failed external call into an UploadError, keeping
// deadline expiry apart from other failures.
func externalError(kind ErrorKind, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &UploadError{Kind: KindTimeout, Op: op, Err: err}
	}
	return &UploadError{Kind: kind, Op: op, Err: err}
}
