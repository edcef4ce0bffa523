package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy of the request layer. Callers branch with errors.Is.
var (
	// ErrUnavailable covers network failures and timeouts: the backend
	// cannot be reached. Retry is manual, there is no backoff.
	ErrUnavailable = errors.New("cannot connect to server")

	// ErrUnauthorized means the session expired or the credential was
	// rejected. The client has already cleared the stored token.
	ErrUnauthorized = errors.New("unauthorized")

	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")

	// ErrConflict marks a rejected seat hold: someone else took one of
	// the requested seats first.
	ErrConflict = errors.New("seat conflict")
)

// APIError is any other non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
	Errors     json.RawMessage
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error %d", e.StatusCode)
}

// ConflictError carries which seats were already taken when a hold was
// rejected. Matches ErrConflict under errors.Is.
type ConflictError struct {
	Message    string
	TakenSeats []string
}

func (e *ConflictError) Error() string {
	if len(e.TakenSeats) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.TakenSeats, ", "))
	}
	return e.Message
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
