package models

import (
	"time"

	"github.com/google/uuid"
)

// ReferralRewardStatus represents the payout state of a referral reward
type ReferralRewardStatus string

const (
	ReferralRewardStatusPending ReferralRewardStatus = "pending"
	ReferralRewardStatusPaid    ReferralRewardStatus = "paid"
)

// ReferralReward is accrued by a referrer guide when a guide they referred
// earns commission. Rewards are additive; they never reduce the referred
// guide's own commission. They settle separately from booking commissions.
type ReferralReward struct {
	Base
	ReferrerID   uuid.UUID            `gorm:"type:uuid;index;not null" json:"referrer_id"`
	Referrer     Guide                `gorm:"foreignKey:ReferrerID" json:"-"`
	RefereeID    uuid.UUID            `gorm:"type:uuid;index;not null" json:"referee_id"`
	Referee      Guide                `gorm:"foreignKey:RefereeID" json:"-"`
	CommissionID uuid.UUID            `gorm:"type:uuid;uniqueIndex;not null" json:"commission_id"`
	Commission   Commission           `gorm:"foreignKey:CommissionID" json:"-"`
	BookingID    *uuid.UUID           `gorm:"type:uuid" json:"booking_id"`
	RewardType   string               `gorm:"type:varchar(50);not null;default:'commission_share'" json:"reward_type"`
	Rate         float64              `gorm:"not null" json:"rate"`
	Amount       int64                `gorm:"not null" json:"amount"`
	Status       ReferralRewardStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAt       *time.Time           `json:"paid_at"`
}
