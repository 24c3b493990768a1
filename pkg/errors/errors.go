// Package errors provides structured error types for ghfetch.
//
// Every network-backed operation reports failures as an [*Error] whose [Code]
// names the failure kind. The kinds mirror the HTTP statuses the GitHub API
// answers with, so callers can branch on them without inspecting responses:
//
//   - UNAUTHORIZED (401): the token is missing scopes or invalid
//   - RATE_LIMITED (403, 429): the hourly API quota is exhausted
//   - NOT_FOUND (404): no such user, organization, or repository
//   - TIMEOUT (408 or a transport deadline)
//   - CONFLICT (409): transient, retried internally with a bound
//   - UNMAPPED: any other status, or a response missing an expected field
//
// # Usage
//
//	err := errors.FromStatus(resp.StatusCode, url)
//	if errors.Is(err, errors.ErrCodeRateLimited) {
//	    // abort the whole batch
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "request %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Upstream status kinds
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeRateLimited  Code = "RATE_LIMITED"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeTimeout      Code = "TIMEOUT"
	ErrCodeConflict     Code = "CONFLICT"
	ErrCodeUnmapped     Code = "UNMAPPED"

	// Transport failures that never produced a status
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Status  int    // HTTP status that produced the error, 0 if none
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// FromStatus maps a non-200 HTTP status to its error kind.
// It returns nil for 200. Statuses without a dedicated kind map to
// [ErrCodeUnmapped].
func FromStatus(status int, url string) *Error {
	var code Code
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case http.StatusForbidden, http.StatusTooManyRequests:
		code = ErrCodeRateLimited
	case http.StatusNotFound:
		code = ErrCodeNotFound
	case http.StatusRequestTimeout:
		code = ErrCodeTimeout
	case http.StatusConflict:
		code = ErrCodeConflict
	default:
		code = ErrCodeUnmapped
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf("status %d from %s", status, url),
		Status:  status,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Fatal reports whether err makes every further API call fail the same way.
// Batches stop on these instead of moving to the next target.
func Fatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeRateLimited, ErrCodeUnauthorized:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Describe returns the one-line message shown to users for err's kind.
// Kinds without a dedicated sentence fall back to [UserMessage].
func Describe(err error) string {
	switch GetCode(err) {
	case ErrCodeUnauthorized:
		return "You don't have access to this."
	case ErrCodeRateLimited:
		return "You've reached the GitHub API hourly limit. Take the chance to make yourself a cup of coffee ☕"
	case ErrCodeNotFound:
		return "The given name is not an existing user, organization or repository."
	case ErrCodeTimeout:
		return "GitHub took too long to answer, try again in a moment."
	case ErrCodeConflict:
		return "GitHub kept answering with a conflict, try again later."
	case ErrCodeInvalidInput:
		return UserMessage(err)
	}
	return "Something went wrong: " + UserMessage(err)
}
