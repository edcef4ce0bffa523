package flow

import (
	"errors"
	"fmt"
	"strings"

	"cinevers-client/internal/api"
	"cinevers-client/pkg/utils"
)

var (
	// ErrFlowExpired means the cross-step session is missing or
	// incomplete: the user landed on a later step without going
	// through the flow. The caller redirects to the catalog.
	ErrFlowExpired = errors.New("booking flow expired")

	// ErrEmptySelection blocks checkout with no seats chosen.
	ErrEmptySelection = errors.New("no seats selected")

	// ErrTermsNotAccepted blocks payment before any network call.
	ErrTermsNotAccepted = errors.New("terms and conditions must be accepted")

	// ErrSubmitInProgress rejects a second Submit while one is running.
	ErrSubmitInProgress = errors.New("payment submission already in progress")
)

// CardValidationError lists the card fields that failed validation.
// Produced before any network call.
type CardValidationError struct {
	Fields map[string]string
}

func (e *CardValidationError) Error() string {
	return "card validation failed: " + utils.FormatValidationErrors(e.Fields)
}

// HoldConflictError reports a rejected seat hold: the listed seats were
// taken by someone else between display and commit. Refreshed carries
// the re-fetched seat map so the seat page can reconcile.
// Matches api.ErrConflict under errors.Is.
type HoldConflictError struct {
	TakenSeats []string
	Refreshed  *SeatMap
}

func (e *HoldConflictError) Error() string {
	return fmt.Sprintf("seats no longer available: %s", strings.Join(e.TakenSeats, ", "))
}

func (e *HoldConflictError) Is(target error) bool {
	return target == api.ErrConflict
}
