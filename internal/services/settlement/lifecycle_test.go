package settlement

import (
	"testing"
	"time"

	"github.com/guideport/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmRequiresApprovedKYC(t *testing.T) {
	for _, status := range []models.KYCStatus{
		models.KYCStatusPending,
		models.KYCStatusSubmitted,
		models.KYCStatusRejected,
	} {
		s := models.Settlement{Status: models.SettlementStatusPending}

		err := Confirm(&s, status)

		assert.ErrorIs(t, err, ErrKYCNotApproved, "kyc status %s", status)
		assert.Equal(t, models.SettlementStatusPending, s.Status)
	}
}

func TestConfirmPendingWithApprovedKYC(t *testing.T) {
	s := models.Settlement{Status: models.SettlementStatusPending}

	require.NoError(t, Confirm(&s, models.KYCStatusApproved))
	assert.Equal(t, models.SettlementStatusConfirmed, s.Status)
}

func TestConfirmOnlyFromPending(t *testing.T) {
	for _, status := range []models.SettlementStatus{
		models.SettlementStatusConfirmed,
		models.SettlementStatusPaid,
	} {
		s := models.Settlement{Status: status}

		err := Confirm(&s, models.KYCStatusApproved)

		assert.ErrorIs(t, err, ErrInvalidTransition, "from %s", status)
		assert.Equal(t, status, s.Status)
	}
}

func TestMarkPaidFromConfirmed(t *testing.T) {
	now := time.Now()
	s := models.Settlement{Status: models.SettlementStatusConfirmed}

	require.NoError(t, MarkPaid(&s, "bank_transfer", now))

	assert.Equal(t, models.SettlementStatusPaid, s.Status)
	assert.Equal(t, "bank_transfer", s.PaymentMethod)
	require.NotNil(t, s.PaidAt)
	assert.Equal(t, now, *s.PaidAt)
}

func TestMarkPaidOnlyFromConfirmed(t *testing.T) {
	for _, status := range []models.SettlementStatus{
		models.SettlementStatusPending,
		models.SettlementStatusPaid,
	} {
		s := models.Settlement{Status: status}

		err := MarkPaid(&s, "bank_transfer", time.Now())

		assert.ErrorIs(t, err, ErrInvalidTransition, "from %s", status)
		assert.Equal(t, status, s.Status)
	}
}

func TestForMonthSelectsByAvailability(t *testing.T) {
	aug := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	sep := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// earned late in August, released in September after the holding period
	held := models.Commission{
		Type:        models.CommissionTypeBooking,
		EarnedAt:    time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		AvailableAt: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
	}
	released := models.Commission{
		Type:        models.CommissionTypeBooking,
		EarnedAt:    time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		AvailableAt: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
	}
	whiteLabel := models.Commission{
		Type:        models.CommissionTypeWhiteLabel,
		AvailableAt: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
	}

	commissions := []models.Commission{held, released, whiteLabel}

	augSet := ForMonth(commissions, aug)
	require.Len(t, augSet, 1)
	assert.Equal(t, released.AvailableAt, augSet[0].AvailableAt)

	sepSet := ForMonth(commissions, sep)
	require.Len(t, sepSet, 1)
	assert.Equal(t, held.AvailableAt, sepSet[0].AvailableAt)
}

func TestForMonthBoundaries(t *testing.T) {
	aug := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	first := models.Commission{Type: models.CommissionTypeBooking, AvailableAt: aug}
	next := models.Commission{
		Type:        models.CommissionTypeBooking,
		AvailableAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	got := ForMonth([]models.Commission{first, next}, aug)

	require.Len(t, got, 1)
	assert.Equal(t, aug, got[0].AvailableAt)
}
