package models

import (
	"time"

	"github.com/google/uuid"
)

// TierCode identifies a commission tier band
type TierCode string

const (
	TierBronze  TierCode = "bronze"
	TierSilver  TierCode = "silver"
	TierGold    TierCode = "gold"
	TierDiamond TierCode = "diamond"
)

// CommissionTier is static reference data mapping a quarterly-revenue band to a
// flat commission rate. Bands are half-open [MinRevenue, MaxRevenue);
// MaxRevenue is nil for the top tier.
type CommissionTier struct {
	Code       TierCode `gorm:"type:varchar(20);primary_key" json:"code"`
	Rank       int      `gorm:"uniqueIndex;not null" json:"rank"`
	MinRevenue int64    `gorm:"not null" json:"min_revenue"`
	MaxRevenue *int64   `json:"max_revenue"`
	Rate       float64  `gorm:"not null" json:"rate"` // percent
}

// CommissionStatus represents the payout state of an earned commission
type CommissionStatus string

const (
	// CommissionStatusCalculated means inside the holding period
	CommissionStatusCalculated CommissionStatus = "calculated"
	// CommissionStatusAvailable means the holding period has elapsed
	CommissionStatusAvailable CommissionStatus = "available"
	// CommissionStatusSettled means paid out through a settlement
	CommissionStatusSettled CommissionStatus = "settled"
)

// CommissionType distinguishes what triggered a commission
type CommissionType string

const (
	CommissionTypeBooking    CommissionType = "booking"
	CommissionTypeWhiteLabel CommissionType = "whitelabel"
)

// Commission is the single source of truth for an amount earned by a guide.
// Base commission and the new-customer bonus are recorded separately for
// auditability; Amount is their sum. All amounts are whole yen.
type Commission struct {
	Base
	GuideID      uuid.UUID        `gorm:"type:uuid;index;not null" json:"guide_id"`
	Guide        Guide            `gorm:"foreignKey:GuideID" json:"-"`
	BookingID    *uuid.UUID       `gorm:"type:uuid;uniqueIndex" json:"booking_id"`
	CustomerID   *uuid.UUID       `gorm:"type:uuid" json:"customer_id"`
	Type         CommissionType   `gorm:"type:varchar(20);not null;default:'booking'" json:"type"`
	OrderAmount  int64            `gorm:"not null" json:"order_amount"` // tax-inclusive spend
	TierCode     TierCode         `gorm:"type:varchar(20);not null" json:"tier_code"`
	Rate         float64          `gorm:"not null" json:"rate"`
	BaseAmount   int64            `gorm:"not null" json:"base_amount"`
	BonusAmount  int64            `gorm:"not null;default:0" json:"bonus_amount"`
	Amount       int64            `gorm:"not null" json:"amount"`
	Status       CommissionStatus `gorm:"type:varchar(20);not null;default:'calculated'" json:"status"`
	AvailableAt  time.Time        `gorm:"index" json:"available_at"`
	SettlementID *uuid.UUID       `gorm:"type:uuid;index" json:"settlement_id"`
	EarnedAt     time.Time        `gorm:"index;not null" json:"earned_at"`
}
