package models

import (
	"time"

	"github.com/google/uuid"
)

// SettlementStatus represents the payout state of a monthly settlement.
// Transitions are strictly forward: pending -> confirmed -> paid.
type SettlementStatus string

const (
	SettlementStatusPending   SettlementStatus = "pending"
	SettlementStatusConfirmed SettlementStatus = "confirmed"
	SettlementStatusPaid      SettlementStatus = "paid"
)

// Settlement rolls up one guide's completed bookings for one calendar month.
// Month is the first day of that month (UTC). Referral rewards are excluded;
// they settle separately.
type Settlement struct {
	Base
	GuideID         uuid.UUID        `gorm:"type:uuid;index:idx_settlements_guide_month,unique;not null" json:"guide_id"`
	Guide           Guide            `gorm:"foreignKey:GuideID" json:"-"`
	Month           time.Time        `gorm:"index:idx_settlements_guide_month,unique;not null" json:"month"`
	TotalBookings   int              `gorm:"not null" json:"total_bookings"`
	TotalSpend      int64            `gorm:"not null" json:"total_spend"`
	TotalCommission int64            `gorm:"not null" json:"total_commission"`
	Status          SettlementStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentMethod   string           `gorm:"type:varchar(50)" json:"payment_method"`
	PaidAt          *time.Time       `json:"paid_at"`
}
