package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guideport/backend/internal/models"
	"github.com/guideport/backend/internal/services/commission"
	"gorm.io/gorm"
)

// Service applies booking lifecycle transitions with their side effects.
// Every status change is persisted together with a history row; completing a
// booking records its commission in the same transaction.
type Service struct {
	db          *gorm.DB
	commissions *commission.Service
}

// NewService creates a new booking service
func NewService(db *gorm.DB, commissions *commission.Service) *Service {
	return &Service{db: db, commissions: commissions}
}

// CreateInput is the payload for creating a booking
type CreateInput struct {
	VenueID       uuid.UUID
	GuideID       uuid.UUID
	CustomerID    uuid.UUID
	PartySize     int
	BookingAt     time.Time
	DepositAmount int64
	AdminNotes    string
}

// Create registers a new booking in pending state with a pending deposit
func (s *Service) Create(input CreateInput) (*models.Booking, error) {
	if input.PartySize <= 0 {
		return nil, &ValidationError{Field: "party_size", Message: "must be positive"}
	}
	if input.DepositAmount < 0 {
		return nil, &ValidationError{Field: "deposit_amount", Message: "must be zero or positive"}
	}

	b := models.Booking{
		VenueID:       input.VenueID,
		GuideID:       input.GuideID,
		CustomerID:    input.CustomerID,
		PartySize:     input.PartySize,
		BookingAt:     input.BookingAt,
		Status:        models.BookingStatusPending,
		DepositStatus: models.DepositStatusPending,
		DepositAmount: input.DepositAmount,
		AdminNotes:    input.AdminNotes,
	}

	if err := s.db.Create(&b).Error; err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}

	return &b, nil
}

// Get loads a booking by ID
func (s *Service) Get(id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("error finding booking: %w", err)
	}
	return &b, nil
}

// ListFilter narrows the admin booking list
type ListFilter struct {
	GuideID *uuid.UUID
	VenueID *uuid.UUID
	Status  *models.BookingStatus
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// List returns bookings matching the filter, newest first
func (s *Service) List(filter ListFilter) ([]models.Booking, int64, error) {
	query := s.db.Model(&models.Booking{})

	if filter.GuideID != nil {
		query = query.Where("guide_id = ?", *filter.GuideID)
	}
	if filter.VenueID != nil {
		query = query.Where("venue_id = ?", *filter.VenueID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("booking_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("booking_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var bookings []models.Booking
	err := query.Order("booking_at DESC").Limit(limit).Offset(filter.Offset).Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("error listing bookings: %w", err)
	}

	return bookings, total, nil
}

// MarkDepositPaid records that the deposit for a booking has been paid
func (s *Service) MarkDepositPaid(id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("error finding booking: %w", err)
	}
	if b.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, b.Status)
	}
	if b.DepositStatus == models.DepositStatusForfeited {
		return nil, fmt.Errorf("%w: deposit forfeited", ErrInvalidTransition)
	}

	b.DepositStatus = models.DepositStatusPaid
	if err := s.db.Save(&b).Error; err != nil {
		return nil, fmt.Errorf("error updating deposit status: %w", err)
	}
	return &b, nil
}

// Confirm applies the pending -> confirmed transition
func (s *Service) Confirm(id, actorID uuid.UUID) (*models.Booking, error) {
	return s.transition(id, actorID, "", func(b *models.Booking) error {
		return Confirm(b)
	})
}

// MarkNoShow applies the confirmed -> no_show transition, forfeiting the deposit
func (s *Service) MarkNoShow(id, actorID uuid.UUID) (*models.Booking, error) {
	return s.transition(id, actorID, "no-show recorded", func(b *models.Booking) error {
		return MarkNoShow(b)
	})
}

// Cancel applies the pending/confirmed -> cancelled transition
func (s *Service) Cancel(id, actorID uuid.UUID, reason string) (*models.Booking, error) {
	return s.transition(id, actorID, reason, func(b *models.Booking) error {
		return Cancel(b, reason)
	})
}

// Complete applies the confirmed -> completed transition, records the actual
// spend and computes the commission in the same transaction.
func (s *Service) Complete(id, actorID uuid.UUID, actualSpend int64) (*models.Booking, error) {
	var b models.Booking
	var comm *models.Commission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&b, "id = ?", id).Error; err != nil {
			return fmt.Errorf("error finding booking: %w", err)
		}

		prev := b.Status
		if err := Complete(&b, actualSpend, time.Now()); err != nil {
			return err
		}

		recorded, err := s.commissions.RecordBookingCommissionTx(tx, &b)
		if err != nil {
			return err
		}
		comm = recorded
		b.CommissionAmount = &recorded.Amount

		if err := tx.Save(&b).Error; err != nil {
			return fmt.Errorf("error updating booking: %w", err)
		}

		history := models.BookingStatusHistory{
			BookingID:      b.ID,
			PreviousStatus: prev,
			NewStatus:      b.Status,
			ChangedBy:      actorID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("error recording status history: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Referral rewards ride the job queue; enqueue only after commit
	s.commissions.EnqueueReferralReward(comm)

	return &b, nil
}

// transition loads, validates, applies and persists a status change along
// with its history row.
func (s *Service) transition(id, actorID uuid.UUID, notes string, apply func(*models.Booking) error) (*models.Booking, error) {
	var b models.Booking

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&b, "id = ?", id).Error; err != nil {
			return fmt.Errorf("error finding booking: %w", err)
		}

		prev := b.Status
		if err := apply(&b); err != nil {
			return err
		}

		if err := tx.Save(&b).Error; err != nil {
			return fmt.Errorf("error updating booking: %w", err)
		}

		history := models.BookingStatusHistory{
			BookingID:      b.ID,
			PreviousStatus: prev,
			NewStatus:      b.Status,
			ChangedBy:      actorID,
			Notes:          notes,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("error recording status history: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// History returns the status change audit trail for a booking
func (s *Service) History(id uuid.UUID) ([]models.BookingStatusHistory, error) {
	var rows []models.BookingStatusHistory
	err := s.db.Where("booking_id = ?", id).Order("created_at").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error loading booking history: %w", err)
	}
	return rows, nil
}
