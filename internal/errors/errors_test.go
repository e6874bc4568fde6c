package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestGenieError_Error(t *testing.T) {
	err := &GenieError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "generation not found",
	}

	expected := "NOT_FOUND: generation not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")
	tests := []struct {
		name   string
		err    *GenieError
		code   ErrorCode
		status int
	}{
		{"invalid request", NewInvalidRequest("project name is required"), ErrInvalidRequest, 400},
		{"not found", NewNotFound("generation", "01ABC"), ErrNotFound, 404},
		{"file exists", NewFileExists("/tmp/x.zip"), ErrFileExists, 409},
		{"cancelled", NewCancelled(cause), ErrCancelled, 499},
		{"generation failed", NewGenerationFailed(cause), ErrGenerationFailed, 500},
		{"archive failed", NewArchiveFailed(cause), ErrArchiveFailed, 500},
		{"remote failed", NewRemoteFailed("generate", cause), ErrRemoteFailed, 502},
		{"publish failed", NewPublishFailed("projects", cause), ErrPublishFailed, 502},
		{"internal", NewInternal(cause), ErrInternal, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Status != tt.status {
				t.Errorf("Status = %d, want %d", tt.err.Status, tt.status)
			}
			if tt.err.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}

func TestNewNotFound_Details(t *testing.T) {
	err := NewNotFound("template", "ecommerce-api")
	if err.Details["identifier"] != "ecommerce-api" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "ecommerce-api")
	}
	if err.Message != "template not found: ecommerce-api" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewInternal_NilError(t *testing.T) {
	err := NewInternal(nil)
	if err.Message != "internal error" {
		t.Errorf("Message = %q, want %q", err.Message, "internal error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewRemoteFailed("health", cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"matching code", NewNotFound("generation", "x"), ErrNotFound, true},
		{"different code", NewNotFound("generation", "x"), ErrInvalidRequest, false},
		{"wrapped", fmt.Errorf("ctx: %w", NewArchiveFailed(nil)), ErrArchiveFailed, true},
		{"plain error", fmt.Errorf("plain"), ErrInternal, false},
		{"nil", nil, ErrInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}
