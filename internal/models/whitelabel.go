package models

import (
	"time"

	"github.com/google/uuid"
)

// WhiteLabelSubscriptionStatus mirrors the Stripe subscription status values
// the platform cares about
type WhiteLabelSubscriptionStatus string

const (
	WhiteLabelSubscriptionNone     WhiteLabelSubscriptionStatus = "none"
	WhiteLabelSubscriptionActive   WhiteLabelSubscriptionStatus = "active"
	WhiteLabelSubscriptionPastDue  WhiteLabelSubscriptionStatus = "past_due"
	WhiteLabelSubscriptionCanceled WhiteLabelSubscriptionStatus = "canceled"
)

// WhiteLabelPage is a guide-branded storefront reusing the platform booking
// flow under the guide's own branding, gated by a paid Stripe subscription.
type WhiteLabelPage struct {
	Base
	GuideID              uuid.UUID                    `gorm:"type:uuid;uniqueIndex;not null" json:"guide_id"`
	Guide                Guide                        `gorm:"foreignKey:GuideID" json:"-"`
	Slug                 string                       `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	SiteName             string                       `gorm:"type:varchar(255);not null" json:"site_name"`
	LogoURL              string                       `gorm:"type:text" json:"logo_url"`
	ThemeColor           string                       `gorm:"type:varchar(7)" json:"theme_color"`
	Branding             JSON                         `gorm:"type:jsonb" json:"branding"`
	ContactEmail         string                       `gorm:"type:varchar(255)" json:"contact_email"`
	Published            bool                         `gorm:"default:false" json:"published"`
	SubscriptionStatus   WhiteLabelSubscriptionStatus `gorm:"type:varchar(20);not null;default:'none'" json:"subscription_status"`
	StripeCustomerID     *string                      `gorm:"type:varchar(255)" json:"stripe_customer_id"`
	StripeSubscriptionID *string                      `gorm:"type:varchar(255)" json:"stripe_subscription_id"`
	CurrentPeriodEnd     *time.Time                   `json:"current_period_end"`
}

// WhiteLabelOrder is a purchase made through a guide's white-label page.
// Order amounts count toward the guide's trailing quarterly revenue.
type WhiteLabelOrder struct {
	Base
	PageID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"page_id"`
	Page          WhiteLabelPage `gorm:"foreignKey:PageID" json:"-"`
	GuideID       uuid.UUID      `gorm:"type:uuid;index;not null" json:"guide_id"`
	CustomerEmail string         `gorm:"type:varchar(255)" json:"customer_email"`
	Amount        int64          `gorm:"not null" json:"amount"`
	Status        string         `gorm:"type:varchar(20);not null;default:'paid'" json:"status"`
	OrderedAt     time.Time      `gorm:"index;not null" json:"ordered_at"`
}
