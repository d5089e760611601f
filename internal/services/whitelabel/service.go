package whitelabel

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/guideport/backend/internal/config"
	"github.com/guideport/backend/internal/models"
	"github.com/guideport/backend/internal/services/stripepay"
	"gorm.io/gorm"
)

// ErrNoSubscription is returned when a page has no Stripe subscription yet
var ErrNoSubscription = errors.New("white-label page has no subscription")

// StripeGateway is the slice of the Stripe client the white-label flow uses.
// *stripepay.Client satisfies it; tests substitute a fake.
type StripeGateway interface {
	CreateSubscriptionCheckout(priceID, customerEmail, successURL, cancelURL string, metadata map[string]string) (*stripepay.CheckoutSession, error)
	GetSubscription(subscriptionID string) (*stripepay.Subscription, error)
	CancelSubscription(subscriptionID string) (*stripepay.Subscription, error)
}

// Service manages guide white-label storefront pages and their paid
// subscriptions.
type Service struct {
	db     *gorm.DB
	stripe StripeGateway
	cfg    config.StripeConfig
}

// NewService creates a new white-label service
func NewService(db *gorm.DB, gateway StripeGateway, cfg config.StripeConfig) *Service {
	return &Service{db: db, stripe: gateway, cfg: cfg}
}

// PageInput is the payload for creating or updating a white-label page
type PageInput struct {
	SiteName     string      `json:"site_name"`
	LogoURL      string      `json:"logo_url"`
	ThemeColor   string      `json:"theme_color"`
	Branding     models.JSON `json:"branding"`
	ContactEmail string      `json:"contact_email"`
}

// UpsertPage creates or updates the guide's white-label page. The slug is
// derived from the site name on first create and never changes afterwards,
// since it is the page's public address.
func (s *Service) UpsertPage(guideID uuid.UUID, input PageInput) (*models.WhiteLabelPage, error) {
	if input.SiteName == "" {
		return nil, errors.New("site_name is required")
	}

	var page models.WhiteLabelPage
	err := s.db.Where("guide_id = ?", guideID).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		page = models.WhiteLabelPage{
			GuideID:            guideID,
			Slug:               fmt.Sprintf("%s-%s", slug.Make(input.SiteName), uuid.New().String()[:8]),
			SiteName:           input.SiteName,
			LogoURL:            input.LogoURL,
			ThemeColor:         input.ThemeColor,
			Branding:           input.Branding,
			ContactEmail:       input.ContactEmail,
			SubscriptionStatus: models.WhiteLabelSubscriptionNone,
		}
		if err := s.db.Create(&page).Error; err != nil {
			return nil, fmt.Errorf("error creating white-label page: %w", err)
		}
		return &page, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding white-label page: %w", err)
	}

	page.SiteName = input.SiteName
	page.LogoURL = input.LogoURL
	page.ThemeColor = input.ThemeColor
	page.Branding = input.Branding
	page.ContactEmail = input.ContactEmail
	if err := s.db.Save(&page).Error; err != nil {
		return nil, fmt.Errorf("error updating white-label page: %w", err)
	}

	return &page, nil
}

// GetPage returns the guide's white-label page
func (s *Service) GetPage(guideID uuid.UUID) (*models.WhiteLabelPage, error) {
	var page models.WhiteLabelPage
	if err := s.db.Where("guide_id = ?", guideID).First(&page).Error; err != nil {
		return nil, fmt.Errorf("error finding white-label page: %w", err)
	}
	return &page, nil
}

// GetPageBySlug returns a published page by its public slug
func (s *Service) GetPageBySlug(pageSlug string) (*models.WhiteLabelPage, error) {
	var page models.WhiteLabelPage
	if err := s.db.Where("slug = ? AND published = true", pageSlug).First(&page).Error; err != nil {
		return nil, fmt.Errorf("error finding white-label page: %w", err)
	}
	return &page, nil
}

// CreateSubscription starts a Stripe checkout for the page's subscription
// and returns the hosted checkout URL for the browser redirect.
func (s *Service) CreateSubscription(guideID uuid.UUID, customerEmail string) (string, error) {
	page, err := s.GetPage(guideID)
	if err != nil {
		return "", err
	}

	session, err := s.stripe.CreateSubscriptionCheckout(
		s.cfg.WhiteLabelPriceID,
		customerEmail,
		s.cfg.CheckoutSuccessURL,
		s.cfg.CheckoutCancelURL,
		map[string]string{"guide_id": guideID.String(), "page_id": page.ID.String()},
	)
	if err != nil {
		return "", fmt.Errorf("error creating checkout session: %w", err)
	}

	if session.Customer != "" {
		page.StripeCustomerID = &session.Customer
		if err := s.db.Save(page).Error; err != nil {
			return "", fmt.Errorf("error saving stripe customer: %w", err)
		}
	}

	return session.URL, nil
}

// AttachSubscription records the subscription ID once checkout completes
// (called from the webhook or the success-page sync).
func (s *Service) AttachSubscription(guideID uuid.UUID, subscriptionID string) error {
	page, err := s.GetPage(guideID)
	if err != nil {
		return err
	}
	page.StripeSubscriptionID = &subscriptionID
	if err := s.db.Save(page).Error; err != nil {
		return fmt.Errorf("error attaching subscription: %w", err)
	}
	return nil
}

// SyncSubscription pulls the subscription state from Stripe and mirrors it
// onto the page. Publication follows the subscription: only active
// subscriptions keep a page published.
func (s *Service) SyncSubscription(guideID uuid.UUID) (*models.WhiteLabelPage, error) {
	page, err := s.GetPage(guideID)
	if err != nil {
		return nil, err
	}
	if page.StripeSubscriptionID == nil {
		return nil, ErrNoSubscription
	}

	sub, err := s.stripe.GetSubscription(*page.StripeSubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subscription: %w", err)
	}

	switch sub.Status {
	case "active", "trialing":
		page.SubscriptionStatus = models.WhiteLabelSubscriptionActive
		page.Published = true
	case "past_due", "unpaid":
		page.SubscriptionStatus = models.WhiteLabelSubscriptionPastDue
	default:
		page.SubscriptionStatus = models.WhiteLabelSubscriptionCanceled
		page.Published = false
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	page.CurrentPeriodEnd = &periodEnd

	if err := s.db.Save(page).Error; err != nil {
		return nil, fmt.Errorf("error saving subscription state: %w", err)
	}

	return page, nil
}

// CancelSubscription requests cancellation at period end and syncs the
// resulting state.
func (s *Service) CancelSubscription(guideID uuid.UUID) (*models.WhiteLabelPage, error) {
	page, err := s.GetPage(guideID)
	if err != nil {
		return nil, err
	}
	if page.StripeSubscriptionID == nil {
		return nil, ErrNoSubscription
	}

	if _, err := s.stripe.CancelSubscription(*page.StripeSubscriptionID); err != nil {
		return nil, fmt.Errorf("error cancelling subscription: %w", err)
	}

	return s.SyncSubscription(guideID)
}

// RecordOrder registers a paid order placed through a white-label page.
// Order amounts count toward the guide's trailing quarterly revenue.
func (s *Service) RecordOrder(pageSlug, customerEmail string, amount int64) (*models.WhiteLabelOrder, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	page, err := s.GetPageBySlug(pageSlug)
	if err != nil {
		return nil, err
	}

	order := models.WhiteLabelOrder{
		PageID:        page.ID,
		GuideID:       page.GuideID,
		CustomerEmail: customerEmail,
		Amount:        amount,
		Status:        "paid",
		OrderedAt:     time.Now(),
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("error recording order: %w", err)
	}

	return &order, nil
}
