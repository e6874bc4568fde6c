package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Dev-Genie error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrFileExists       ErrorCode = "FILE_EXISTS"       // 409
	ErrCancelled        ErrorCode = "CANCELLED"         // 499
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED" // 500
	ErrArchiveFailed    ErrorCode = "ARCHIVE_FAILED"    // 500
	ErrInternal         ErrorCode = "INTERNAL"          // 500
	ErrRemoteFailed     ErrorCode = "REMOTE_FAILED"     // 502
	ErrPublishFailed    ErrorCode = "PUBLISH_FAILED"    // 502
)

// GenieError represents a structured error with code, status, and details.
type GenieError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *GenieError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *GenieError) Unwrap() error {
	return e.Cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *GenieError {
	return &GenieError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing generation, template, or archive.
func NewNotFound(kind, identifier string) *GenieError {
	return &GenieError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewFileExists creates a 409 error when an output path is already taken.
func NewFileExists(path string) *GenieError {
	return &GenieError{
		Code:    ErrFileExists,
		Status:  409,
		Message: fmt.Sprintf("output already exists: %s (use --force to overwrite)", path),
		Details: map[string]any{"path": path},
	}
}

// NewCancelled creates a 499 error when the caller abandoned the request.
func NewCancelled(err error) *GenieError {
	return &GenieError{
		Code:    ErrCancelled,
		Status:  499,
		Message: "request cancelled",
		Cause:   err,
	}
}

// NewGenerationFailed creates a 500 error when no file tree could be produced.
func NewGenerationFailed(err error) *GenieError {
	return &GenieError{
		Code:    ErrGenerationFailed,
		Status:  500,
		Message: "generation failed: " + causeText(err),
		Cause:   err,
	}
}

// NewArchiveFailed creates a 500 error when a project archive cannot be
// serialized, downloaded, or unpacked.
func NewArchiveFailed(err error) *GenieError {
	return &GenieError{
		Code:    ErrArchiveFailed,
		Status:  500,
		Message: "archive failed: " + causeText(err),
		Cause:   err,
	}
}

// NewRemoteFailed creates a 502 error for a remote API failure.
func NewRemoteFailed(op string, err error) *GenieError {
	return &GenieError{
		Code:    ErrRemoteFailed,
		Status:  502,
		Message: fmt.Sprintf("remote %s failed: %s", op, causeText(err)),
		Details: map[string]any{"operation": op},
		Cause:   err,
	}
}

// NewPublishFailed creates a 502 error when object storage rejects an upload.
func NewPublishFailed(bucket string, err error) *GenieError {
	return &GenieError{
		Code:    ErrPublishFailed,
		Status:  502,
		Message: fmt.Sprintf("publish to bucket %q failed: %s", bucket, causeText(err)),
		Details: map[string]any{"bucket": bucket},
		Cause:   err,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *GenieError {
	return &GenieError{
		Code:    ErrInternal,
		Status:  500,
		Message: causeText(err),
		Cause:   err,
	}
}

func causeText(err error) string {
	if err == nil {
		return "internal error"
	}
	return err.Error()
}

// As returns the first GenieError in err's chain.
func As(err error) (*GenieError, bool) {
	var gErr *GenieError
	if stderrors.As(err, &gErr) {
		return gErr, true
	}
	return nil, false
}

// Is checks if an error (or anything it wraps) is a GenieError with the given code.
func Is(err error, code ErrorCode) bool {
	if gErr, ok := As(err); ok {
		return gErr.Code == code
	}
	return false
}
