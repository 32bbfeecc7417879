package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidBoundary, "Boundary must be %s.", "planar")

	if err.Code != ErrCodeInvalidBoundary {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidBoundary)
	}

	if err.Message != "Boundary must be planar." {
		t.Errorf("Message = %v, want %v", err.Message, "Boundary must be planar.")
	}

	expected := "INVALID_BOUNDARY: Boundary must be planar."
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidFormat, cause, "decode site")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidSettings, "test"),
			code:     ErrCodeInvalidSettings,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidSettings, "test"),
			code:     ErrCodeInvalidBoundary,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeOffsetFailed, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("solve: %w", New(ErrCodeInvalidBoundary, "inner")),
			code:     ErrCodeInvalidBoundary,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeOffsetFailed, "test"),
			expected: ErrCodeOffsetFailed,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidBoundary, "Boundary is null."),
			expected: "Boundary is null.",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	for _, code := range []Code{ErrCodeInvalidBoundary, ErrCodeInvalidSettings, ErrCodeInvalidInput, ErrCodeInvalidFormat} {
		if !IsInvalid(New(code, "x")) {
			t.Errorf("IsInvalid(%s) = false", code)
		}
	}
	for _, code := range []Code{ErrCodeNotFound, ErrCodeInternal, ErrCodeOffsetFailed} {
		if IsInvalid(New(code, "x")) {
			t.Errorf("IsInvalid(%s) = true", code)
		}
	}
}

func TestDetail(t *testing.T) {
	cause := errors.New("unexpected EOF")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no cause", New(ErrCodeNotFound, "lot x not found"), "lot x not found"},
		{"with cause", Wrap(ErrCodeInvalidFormat, cause, "decode site"), "decode site: unexpected EOF"},
		{"wrapped", fmt.Errorf("solve: %w", New(ErrCodeInvalidBoundary, "Boundary is null.")), "Boundary is null."},
		{"plain", cause, "unexpected EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detail(tt.err); got != tt.want {
				t.Errorf("Detail() = %q, want %q", got, tt.want)
			}
		})
	}
}
