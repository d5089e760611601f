package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guideport/backend/internal/models"
)

// ErrInvalidTransition is returned when a status change is not legal from the
// booking's current state. Re-invoking an operation on a terminal booking
// fails with this error rather than silently succeeding.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// ValidationError reports a rejected field on an otherwise legal operation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Confirm moves a booking from pending to confirmed. The deposit must already
// be paid.
func Confirm(b *models.Booking) error {
	if b.Status != models.BookingStatusPending {
		return fmt.Errorf("%w: cannot confirm from %s", ErrInvalidTransition, b.Status)
	}
	if b.DepositStatus != models.DepositStatusPaid {
		return fmt.Errorf("%w: deposit not paid", ErrInvalidTransition)
	}
	b.Status = models.BookingStatusConfirmed
	return nil
}

// Complete moves a confirmed booking to completed and records the actual
// tax-inclusive spend in yen. Commission calculation is the caller's side
// effect; this only validates and applies the state change.
func Complete(b *models.Booking, actualSpend int64, at time.Time) error {
	if b.Status != models.BookingStatusConfirmed {
		return fmt.Errorf("%w: cannot complete from %s", ErrInvalidTransition, b.Status)
	}
	if actualSpend < 0 {
		return &ValidationError{Field: "actual_spend", Message: "must be zero or positive"}
	}
	b.Status = models.BookingStatusCompleted
	b.ActualSpend = &actualSpend
	b.CompletedAt = &at
	return nil
}

// MarkNoShow moves a confirmed booking to no_show and forfeits the deposit.
// Forfeiture is irreversible; no transition restores a forfeited deposit.
func MarkNoShow(b *models.Booking) error {
	if b.Status != models.BookingStatusConfirmed {
		return fmt.Errorf("%w: cannot mark no-show from %s", ErrInvalidTransition, b.Status)
	}
	b.Status = models.BookingStatusNoShow
	b.DepositStatus = models.DepositStatusForfeited
	return nil
}

// Cancel moves a pending or confirmed booking to cancelled. A non-empty
// reason is required.
func Cancel(b *models.Booking, reason string) error {
	if b.Status != models.BookingStatusPending && b.Status != models.BookingStatusConfirmed {
		return fmt.Errorf("%w: cannot cancel from %s", ErrInvalidTransition, b.Status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &ValidationError{Field: "cancel_reason", Message: "required"}
	}
	b.Status = models.BookingStatusCancelled
	b.CancelReason = &reason
	return nil
}
