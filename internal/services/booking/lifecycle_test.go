package booking

import (
	"testing"
	"time"

	"github.com/guideport/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingBooking() *models.Booking {
	return &models.Booking{
		Status:        models.BookingStatusPending,
		DepositStatus: models.DepositStatusPending,
		DepositAmount: 10_000,
		PartySize:     4,
	}
}

func confirmedBooking() *models.Booking {
	b := pendingBooking()
	b.DepositStatus = models.DepositStatusPaid
	b.Status = models.BookingStatusConfirmed
	return b
}

func TestConfirmRequiresPaidDeposit(t *testing.T) {
	b := pendingBooking()

	err := Confirm(b)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.BookingStatusPending, b.Status)

	b.DepositStatus = models.DepositStatusPaid
	require.NoError(t, Confirm(b))
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
}

func TestConfirmOnlyFromPending(t *testing.T) {
	for _, status := range []models.BookingStatus{
		models.BookingStatusConfirmed,
		models.BookingStatusCompleted,
		models.BookingStatusNoShow,
		models.BookingStatusCancelled,
	} {
		b := pendingBooking()
		b.Status = status
		b.DepositStatus = models.DepositStatusPaid
		assert.ErrorIs(t, Confirm(b), ErrInvalidTransition, "from %s", status)
	}
}

func TestComplete(t *testing.T) {
	b := confirmedBooking()
	at := time.Now()

	require.NoError(t, Complete(b, 1_000_000, at))
	assert.Equal(t, models.BookingStatusCompleted, b.Status)
	require.NotNil(t, b.ActualSpend)
	assert.Equal(t, int64(1_000_000), *b.ActualSpend)
	require.NotNil(t, b.CompletedAt)
	assert.Equal(t, at, *b.CompletedAt)
}

func TestCompleteRejectsNegativeSpend(t *testing.T) {
	b := confirmedBooking()

	err := Complete(b, -1, time.Now())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "actual_spend", verr.Field)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
}

func TestCompleteIsTerminal(t *testing.T) {
	b := confirmedBooking()
	require.NoError(t, Complete(b, 500_000, time.Now()))

	assert.ErrorIs(t, Complete(b, 500_000, time.Now()), ErrInvalidTransition)
	assert.ErrorIs(t, Cancel(b, "changed plans"), ErrInvalidTransition)
	assert.ErrorIs(t, MarkNoShow(b), ErrInvalidTransition)
}

func TestMarkNoShowForfeitsDeposit(t *testing.T) {
	b := confirmedBooking()

	require.NoError(t, MarkNoShow(b))
	assert.Equal(t, models.BookingStatusNoShow, b.Status)
	assert.Equal(t, models.DepositStatusForfeited, b.DepositStatus)

	// no transition out of no_show restores the deposit
	assert.ErrorIs(t, Cancel(b, "mistake"), ErrInvalidTransition)
	assert.ErrorIs(t, Confirm(b), ErrInvalidTransition)
	assert.Equal(t, models.DepositStatusForfeited, b.DepositStatus)
}

func TestMarkNoShowOnlyFromConfirmed(t *testing.T) {
	b := pendingBooking()
	assert.ErrorIs(t, MarkNoShow(b), ErrInvalidTransition)
	assert.Equal(t, models.DepositStatusPending, b.DepositStatus)
}

func TestCancelFromPendingAndConfirmed(t *testing.T) {
	p := pendingBooking()
	require.NoError(t, Cancel(p, "customer request"))
	assert.Equal(t, models.BookingStatusCancelled, p.Status)
	require.NotNil(t, p.CancelReason)
	assert.Equal(t, "customer request", *p.CancelReason)

	c := confirmedBooking()
	require.NoError(t, Cancel(c, "venue closed"))
	assert.Equal(t, models.BookingStatusCancelled, c.Status)
}

func TestCancelRequiresReason(t *testing.T) {
	b := pendingBooking()

	err := Cancel(b, "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cancel_reason", verr.Field)
	assert.Equal(t, models.BookingStatusPending, b.Status)
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	for _, status := range []models.BookingStatus{
		models.BookingStatusCompleted,
		models.BookingStatusNoShow,
		models.BookingStatusCancelled,
	} {
		b := confirmedBooking()
		b.Status = status

		assert.True(t, status.IsTerminal())
		assert.ErrorIs(t, Confirm(b), ErrInvalidTransition, "confirm from %s", status)
		assert.ErrorIs(t, Complete(b, 1, time.Now()), ErrInvalidTransition, "complete from %s", status)
		assert.ErrorIs(t, MarkNoShow(b), ErrInvalidTransition, "no-show from %s", status)
		assert.ErrorIs(t, Cancel(b, "x"), ErrInvalidTransition, "cancel from %s", status)
	}
}

func TestFullLifecycle(t *testing.T) {
	b := pendingBooking()

	b.DepositStatus = models.DepositStatusPaid
	require.NoError(t, Confirm(b))
	require.NoError(t, Complete(b, 2_200_000, time.Now()))

	assert.Equal(t, models.BookingStatusCompleted, b.Status)
	assert.Equal(t, int64(2_200_000), *b.ActualSpend)
}
