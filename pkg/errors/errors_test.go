package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Code
	}{
		{401, ErrCodeUnauthorized},
		{403, ErrCodeRateLimited},
		{429, ErrCodeRateLimited},
		{404, ErrCodeNotFound},
		{408, ErrCodeTimeout},
		{409, ErrCodeConflict},
		{500, ErrCodeUnmapped},
		{422, ErrCodeUnmapped},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, "https://api.github.com/users/x")
			if err == nil {
				t.Fatal("FromStatus() = nil, want error")
			}
			if err.Code != tt.want {
				t.Errorf("Code = %v, want %v", err.Code, tt.want)
			}
			if err.Status != tt.status {
				t.Errorf("Status = %d, want %d", err.Status, tt.status)
			}
		})
	}

	if err := FromStatus(200, "x"); err != nil {
		t.Errorf("FromStatus(200) = %v, want nil", err)
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
			err:      New(ErrCodeNotFound, "test"),
			code:     ErrCodeNotFound,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNotFound, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("resolve: %w", New(ErrCodeConflict, "inner")),
			code:     ErrCodeConflict,
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
	if got := GetCode(New(ErrCodeTimeout, "x")); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeTimeout)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %v, want empty", got)
	}
}

func TestFatal(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{FromStatus(403, "u"), true},
		{FromStatus(401, "u"), true},
		{FromStatus(404, "u"), false},
		{FromStatus(409, "u"), false},
		{errors.New("plain"), false},
	}
	for _, tt := range tests {
		if got := Fatal(tt.err); got != tt.want {
			t.Errorf("Fatal(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	seen := map[string]Code{}
	for _, code := range []Code{
		ErrCodeUnauthorized, ErrCodeRateLimited, ErrCodeNotFound,
		ErrCodeTimeout, ErrCodeConflict,
	} {
		msg := Describe(New(code, "detail"))
		if msg == "" {
			t.Errorf("Describe(%s) is empty", code)
		}
		if other, dup := seen[msg]; dup {
			t.Errorf("Describe(%s) repeats the message of %s", code, other)
		}
		seen[msg] = code
	}

	if got := Describe(New(ErrCodeInvalidInput, "bad target")); got != "bad target" {
		t.Errorf("Describe(invalid input) = %q, want %q", got, "bad target")
	}
	if got := Describe(errors.New("boom")); got != "Something went wrong: boom" {
		t.Errorf("Describe(plain) = %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %v, want %v", got, "friendly message")
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %v, want %v", got, "plain error")
	}
}
