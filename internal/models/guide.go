package models

import (
	"time"

	"github.com/google/uuid"
)

// GuideStatus represents the approval status of a guide partner account
type GuideStatus string

const (
	GuideStatusPending   GuideStatus = "pending"
	GuideStatusApproved  GuideStatus = "approved"
	GuideStatusSuspended GuideStatus = "suspended"
)

// KYCStatus represents the status of a guide's identity verification
type KYCStatus string

const (
	KYCStatusPending   KYCStatus = "pending"
	KYCStatusSubmitted KYCStatus = "submitted"
	KYCStatusApproved  KYCStatus = "approved"
	KYCStatusRejected  KYCStatus = "rejected"
)

// Guide represents a referral/sales partner who books venues on behalf of
// customers and earns commission.
type Guide struct {
	Base
	UserID          uuid.UUID   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User            User        `gorm:"foreignKey:UserID" json:"-"`
	DisplayName     string      `gorm:"type:varchar(100);not null" json:"display_name"`
	ContactEmail    string      `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone    string      `gorm:"type:varchar(20)" json:"contact_phone"`
	Status          GuideStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReferralCode    string      `gorm:"type:varchar(20);uniqueIndex;not null" json:"referral_code"`
	ReferrerID      *uuid.UUID  `gorm:"type:uuid;index" json:"referrer_id"`
	TierCode        TierCode    `gorm:"type:varchar(20);not null;default:'bronze'" json:"tier_code"`
	TierUpdatedAt   time.Time   `json:"tier_updated_at"`
	KYCStatus       KYCStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"kyc_status"`
	TotalBookings   int         `gorm:"default:0" json:"total_bookings"`
	TotalCommission int64       `gorm:"default:0" json:"total_commission"`
}
