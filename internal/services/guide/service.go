package guide

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guideport/backend/internal/models"
	"github.com/guideport/backend/internal/utils"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned when signing up with an email already in use
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidReferralCode is returned when a signup references an unknown code
var ErrInvalidReferralCode = errors.New("unknown referral code")

// ErrInvalidStatusChange is returned for illegal approval-status changes
var ErrInvalidStatusChange = errors.New("invalid guide status change")

// Service manages guide partner accounts: signup, approval lifecycle and
// admin-side maintenance.
type Service struct {
	db *gorm.DB
}

// NewService creates a new guide service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SignupInput is the payload for guide self-signup
type SignupInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	DisplayName  string `json:"display_name"`
	ContactPhone string `json:"contact_phone"`
	ReferralCode string `json:"referral_code"` // optional, the referrer's code
}

// Signup creates a login account and a guide profile in pending state. When
// a referral code is supplied the referring guide is linked for reward
// accrual.
func (s *Service) Signup(input SignupInput) (*models.Guide, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" {
		return nil, errors.New("email is required")
	}
	if input.DisplayName == "" {
		return nil, errors.New("display_name is required")
	}
	if err := utils.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var created models.Guide

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("error checking email: %w", err)
		}

		var referrerID *uuid.UUID
		if input.ReferralCode != "" {
			var referrer models.Guide
			err := tx.Where("referral_code = ?", strings.ToUpper(input.ReferralCode)).First(&referrer).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidReferralCode
			}
			if err != nil {
				return fmt.Errorf("error finding referrer: %w", err)
			}
			referrerID = &referrer.ID
		}

		user := models.User{
			Email:        input.Email,
			Name:         input.DisplayName,
			PasswordHash: passwordHash,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		created = models.Guide{
			UserID:        user.ID,
			DisplayName:   input.DisplayName,
			ContactEmail:  input.Email,
			ContactPhone:  input.ContactPhone,
			Status:        models.GuideStatusPending,
			ReferralCode:  utils.GenerateReferralCode(),
			ReferrerID:    referrerID,
			TierCode:      models.TierBronze,
			TierUpdatedAt: time.Now(),
			KYCStatus:     models.KYCStatusPending,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("error creating guide: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Get loads a guide by ID
func (s *Service) Get(id uuid.UUID) (*models.Guide, error) {
	var g models.Guide
	if err := s.db.First(&g, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("error finding guide: %w", err)
	}
	return &g, nil
}

// GetByUser loads the guide profile attached to a login account
func (s *Service) GetByUser(userID uuid.UUID) (*models.Guide, error) {
	var g models.Guide
	if err := s.db.Where("user_id = ?", userID).First(&g).Error; err != nil {
		return nil, fmt.Errorf("error finding guide: %w", err)
	}
	return &g, nil
}

// List returns guides, optionally filtered by approval status
func (s *Service) List(status *models.GuideStatus, limit, offset int) ([]models.Guide, int64, error) {
	query := s.db.Model(&models.Guide{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("error counting guides: %w", err)
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var guides []models.Guide
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&guides).Error; err != nil {
		return nil, 0, fmt.Errorf("error listing guides: %w", err)
	}

	return guides, total, nil
}

// Approve moves a pending or suspended guide to approved
func (s *Service) Approve(id uuid.UUID) (*models.Guide, error) {
	return s.setStatus(id, models.GuideStatusApproved,
		models.GuideStatusPending, models.GuideStatusSuspended)
}

// Suspend moves an approved guide to suspended
func (s *Service) Suspend(id uuid.UUID) (*models.Guide, error) {
	return s.setStatus(id, models.GuideStatusSuspended, models.GuideStatusApproved)
}

func (s *Service) setStatus(id uuid.UUID, to models.GuideStatus, allowedFrom ...models.GuideStatus) (*models.Guide, error) {
	var g models.Guide
	if err := s.db.First(&g, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("error finding guide: %w", err)
	}

	allowed := false
	for _, from := range allowedFrom {
		if g.Status == from {
			allowed = true
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusChange, g.Status, to)
	}

	g.Status = to
	if err := s.db.Save(&g).Error; err != nil {
		return nil, fmt.Errorf("error updating guide status: %w", err)
	}

	return &g, nil
}

// SetTier applies a manual tier override by an admin. The override counts as
// this quarter's evaluation so the scheduled refresh does not undo it.
func (s *Service) SetTier(id uuid.UUID, code models.TierCode) (*models.Guide, error) {
	var tier models.CommissionTier
	if err := s.db.First(&tier, "code = ?", code).Error; err != nil {
		return nil, fmt.Errorf("unknown tier code %q", code)
	}

	var g models.Guide
	if err := s.db.First(&g, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("error finding guide: %w", err)
	}

	g.TierCode = code
	g.TierUpdatedAt = time.Now()
	if err := s.db.Save(&g).Error; err != nil {
		return nil, fmt.Errorf("error updating guide tier: %w", err)
	}

	return &g, nil
}
