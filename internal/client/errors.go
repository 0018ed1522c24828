package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the server answers 401 to an
	// authenticated call. The session has been cleared by the time the
	// caller sees it.
	ErrUnauthorized = errors.New("unauthorized: stored credentials were rejected")

	// ErrAuthRejected is the 401 outcome of a login attempt.
	ErrAuthRejected = errors.New("invalid username or password")

	// ErrValidation is the 400 outcome of a login attempt.
	ErrValidation = errors.New("login request rejected")
)

// RequestError is any non-2xx answer other than 401.
type RequestError struct {
	Method     string
	Path       string
	Status     int
	StatusText string
	Message    string // server supplied {"error": ...}, if any
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Status, e.StatusText, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.StatusText)
}

// DecodeError reports a 2xx body that could not be parsed.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
