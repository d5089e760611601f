package settlement

import (
	"errors"
	"fmt"
	"time"

	"github.com/guideport/backend/internal/models"
)

// ErrInvalidTransition is returned when a settlement status change is not
// legal; settlements only move forward: pending -> confirmed -> paid.
var ErrInvalidTransition = errors.New("invalid settlement status transition")

// ErrKYCNotApproved is returned when confirming a settlement for a guide
// whose identity verification has not been approved. Commission accrual is
// not KYC-gated; payout is.
var ErrKYCNotApproved = errors.New("guide KYC not approved")

// Confirm moves a pending settlement to confirmed. Payout requires the
// guide's KYC to be approved, so the gate sits on this transition.
func Confirm(s *models.Settlement, kycStatus models.KYCStatus) error {
	if s.Status != models.SettlementStatusPending {
		return fmt.Errorf("%w: cannot confirm from %s", ErrInvalidTransition, s.Status)
	}
	if kycStatus != models.KYCStatusApproved {
		return ErrKYCNotApproved
	}
	s.Status = models.SettlementStatusConfirmed
	return nil
}

// MarkPaid moves a confirmed settlement to paid and records how and when it
// was paid out.
func MarkPaid(s *models.Settlement, paymentMethod string, at time.Time) error {
	if s.Status != models.SettlementStatusConfirmed {
		return fmt.Errorf("%w: cannot mark paid from %s", ErrInvalidTransition, s.Status)
	}
	s.Status = models.SettlementStatusPaid
	s.PaymentMethod = paymentMethod
	s.PaidAt = &at
	return nil
}

// ForMonth selects the commissions that belong to a month's settlement:
// booking commissions whose holding period ends inside that month. A
// commission settles in the month it becomes available, never the month it
// was earned, so a rollup only ever counts released money.
func ForMonth(commissions []models.Commission, month time.Time) []models.Commission {
	next := month.AddDate(0, 1, 0)
	var out []models.Commission
	for _, c := range commissions {
		if c.Type != models.CommissionTypeBooking {
			continue
		}
		if c.AvailableAt.Before(month) || !c.AvailableAt.Before(next) {
			continue
		}
		out = append(out, c)
	}
	return out
}
