package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "error without wrapped error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "user not found",
			},
			expected: "user not found",
		},
		{
			name: "error with wrapped error",
			appErr: &AppError{
				Code:    CodeInternalError,
				Message: "internal error",
				Err:     errors.New("server selection timeout"),
			},
			expected: "internal error: server selection timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := &AppError{Code: CodeInternalError, Message: "wrapped error", Err: originalErr}

	if unwrapped := appErr.Unwrap(); unwrapped != originalErr {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, originalErr)
	}

	appErrNoWrap := &AppError{Code: CodeBadRequest, Message: "no wrap"}
	if unwrapped := appErrNoWrap.Unwrap(); unwrapped != nil {
		t.Errorf("AppError.Unwrap() = %v, want nil", unwrapped)
	}
}

func TestNew(t *testing.T) {
	err := New("CUSTOM", "custom message", http.StatusTeapot)
	if err.Code != "CUSTOM" || err.Message != "custom message" || err.Status != http.StatusTeapot {
		t.Errorf("New() = %+v", err)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("original")
	wrapped := Wrap(originalErr, ErrInternalError)

	if wrapped.Code != ErrInternalError.Code {
		t.Errorf("Wrap() Code = %v, want %v", wrapped.Code, ErrInternalError.Code)
	}
	if !errors.Is(wrapped, originalErr) {
		t.Error("Wrap() should keep the original error in the chain")
	}
	if wrapped.Status != ErrInternalError.Status {
		t.Errorf("Wrap() Status = %v, want %v", wrapped.Status, ErrInternalError.Status)
	}
}

func TestAppError_WithMessage(t *testing.T) {
	modified := ErrNotFound.WithMessage("movie not found")

	if modified.Message != "movie not found" {
		t.Errorf("WithMessage() Message = %v", modified.Message)
	}
	if modified.Code != ErrNotFound.Code {
		t.Errorf("WithMessage() Code = %v, want %v", modified.Code, ErrNotFound.Code)
	}
	if ErrNotFound.Message != "resource not found" {
		t.Error("WithMessage() must not mutate the sentinel")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	details := []string{"name is required", "age must be a positive number"}
	modified := ErrValidation.WithMessage("invalid user data").WithDetails(details)

	got, ok := modified.Details.([]string)
	if !ok || len(got) != 2 {
		t.Fatalf("WithDetails() Details = %#v", modified.Details)
	}
	if modified.Message != "invalid user data" {
		t.Errorf("WithDetails() dropped message: %v", modified.Message)
	}
	if ErrValidation.Details != nil {
		t.Error("WithDetails() must not mutate the sentinel")
	}
}

func TestAppError_WithError(t *testing.T) {
	cause := errors.New("boom")
	modified := ErrInternalError.WithError(cause)

	if !errors.Is(modified, cause) {
		t.Error("WithError() should wrap the cause")
	}
	if ErrInternalError.Err != nil {
		t.Error("WithError() must not mutate the sentinel")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   *AppError
		expected bool
	}{
		{"same error", ErrNotFound, ErrNotFound, true},
		{"wrapped app error", Wrap(errors.New("original"), ErrNotFound), ErrNotFound, true},
		{"different code", ErrBadRequest, ErrNotFound, false},
		{"standard error", errors.New("standard"), ErrNotFound, false},
		{"nil error", nil, ErrNotFound, false},
		{"fmt wrapped", fmt.Errorf("wrapped: %w", ErrValidation), ErrValidation, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.target); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAs(t *testing.T) {
	appErr, ok := As(fmt.Errorf("ctx: %w", ErrNotFound.WithMessage("cinema not found")))
	if !ok {
		t.Fatal("As() should find the AppError")
	}
	if appErr.Message != "cinema not found" {
		t.Errorf("As() Message = %v", appErr.Message)
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("As() should not match a plain error")
	}
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"bad request", ErrBadRequest, http.StatusBadRequest},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"internal", ErrInternalError, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
		{"standard error", errors.New("standard"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetStatus(tt.err); got != tt.expected {
				t.Errorf("GetStatus() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func BenchmarkWrap(b *testing.B) {
	err := errors.New("test")
	for i := 0; i < b.N; i++ {
		Wrap(err, ErrInternalError)
	}
}

func BenchmarkGetStatus(b *testing.B) {
	err := Wrap(errors.New("test"), ErrNotFound)
	for i := 0; i < b.N; i++ {
		GetStatus(err)
	}
}
