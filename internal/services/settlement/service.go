package settlement

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/guideport/backend/internal/models"
	"gorm.io/gorm"
)

// Service rolls released commissions up into monthly settlements and
// advances them toward payout.
type Service struct {
	db *gorm.DB
}

// NewService creates a new settlement service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// MonthStart truncates t to the first day of its calendar month (UTC)
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Totals is the per-guide monthly rollup. Referral rewards are excluded;
// they settle separately.
type Totals struct {
	Bookings   int
	TotalSpend int64
	Commission int64
}

// Summarize rolls a set of booking commissions into settlement totals.
// Commission amounts already include the new-customer bonus.
func Summarize(commissions []models.Commission) Totals {
	var t Totals
	for _, c := range commissions {
		if c.Type != models.CommissionTypeBooking {
			continue
		}
		t.Bookings++
		t.TotalSpend += c.OrderAmount
		t.Commission += c.Amount
	}
	return t
}

// AggregateMonth produces one settlement per guide for the calendar month
// containing at. Commissions join the settlement of the month their holding
// period ends, so the rollup only ever counts released money. Months that
// already carry a paid settlement are never re-aggregated; pending ones are
// recomputed in place.
func (s *Service) AggregateMonth(at time.Time) (int, error) {
	month := MonthStart(at)
	next := month.AddDate(0, 1, 0)

	var guideIDs []uuid.UUID
	err := s.db.Model(&models.Commission{}).
		Where("type = ? AND available_at >= ? AND available_at < ?", models.CommissionTypeBooking, month, next).
		Distinct("guide_id").
		Pluck("guide_id", &guideIDs).Error
	if err != nil {
		return 0, fmt.Errorf("error finding guides to settle: %w", err)
	}

	created := 0
	for _, guideID := range guideIDs {
		if err := s.aggregateGuideMonth(guideID, month, next); err != nil {
			log.Printf("settlement: guide %s month %s: %v", guideID, month.Format("2006-01"), err)
			continue
		}
		created++
	}

	return created, nil
}

func (s *Service) aggregateGuideMonth(guideID uuid.UUID, month, next time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var commissions []models.Commission
		err := tx.Where("guide_id = ? AND available_at >= ? AND available_at < ?",
			guideID, month, next).
			Find(&commissions).Error
		if err != nil {
			return fmt.Errorf("error loading commissions: %w", err)
		}

		totals := Summarize(ForMonth(commissions, month))

		var existing models.Settlement
		err = tx.Where("guide_id = ? AND month = ?", guideID, month).First(&existing).Error
		switch {
		case err == nil:
			if existing.Status == models.SettlementStatusPaid {
				// paid months are closed
				return nil
			}
			existing.TotalBookings = totals.Bookings
			existing.TotalSpend = totals.TotalSpend
			existing.TotalCommission = totals.Commission
			return tx.Save(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			settlement := models.Settlement{
				GuideID:         guideID,
				Month:           month,
				TotalBookings:   totals.Bookings,
				TotalSpend:      totals.TotalSpend,
				TotalCommission: totals.Commission,
				Status:          models.SettlementStatusPending,
			}
			return tx.Create(&settlement).Error
		default:
			return fmt.Errorf("error finding settlement: %w", err)
		}
	})
}

// Confirm advances a settlement from pending to confirmed. Payout requires
// the guide's KYC to be approved.
func (s *Service) Confirm(id uuid.UUID) (*models.Settlement, error) {
	var settlement models.Settlement

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&settlement, "id = ?", id).Error; err != nil {
			return fmt.Errorf("error finding settlement: %w", err)
		}
		var guide models.Guide
		if err := tx.First(&guide, "id = ?", settlement.GuideID).Error; err != nil {
			return fmt.Errorf("error finding guide: %w", err)
		}
		if err := Confirm(&settlement, guide.KYCStatus); err != nil {
			return err
		}
		return tx.Save(&settlement).Error
	})
	if err != nil {
		return nil, err
	}

	return &settlement, nil
}

// MarkPaid advances a confirmed settlement to paid and stamps the included
// commissions as settled.
func (s *Service) MarkPaid(id uuid.UUID, paymentMethod string) (*models.Settlement, error) {
	var settlement models.Settlement

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&settlement, "id = ?", id).Error; err != nil {
			return fmt.Errorf("error finding settlement: %w", err)
		}
		if err := MarkPaid(&settlement, paymentMethod, time.Now()); err != nil {
			return err
		}
		if err := tx.Save(&settlement).Error; err != nil {
			return fmt.Errorf("error updating settlement: %w", err)
		}

		// every commission the rollup counted becomes settled; a row the
		// daily release job has not swept yet still settles, its holding
		// period ended inside this month
		next := settlement.Month.AddDate(0, 1, 0)
		err := tx.Model(&models.Commission{}).
			Where("guide_id = ? AND type = ? AND available_at >= ? AND available_at < ? AND status <> ?",
				settlement.GuideID, models.CommissionTypeBooking,
				settlement.Month, next, models.CommissionStatusSettled).
			Updates(map[string]interface{}{
				"status":        models.CommissionStatusSettled,
				"settlement_id": settlement.ID,
			}).Error
		if err != nil {
			return fmt.Errorf("error settling commissions: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &settlement, nil
}

// ListByGuide returns a guide's settlements, newest month first
func (s *Service) ListByGuide(guideID uuid.UUID) ([]models.Settlement, error) {
	var settlements []models.Settlement
	err := s.db.Where("guide_id = ?", guideID).Order("month DESC").Find(&settlements).Error
	if err != nil {
		return nil, fmt.Errorf("error listing settlements: %w", err)
	}
	return settlements, nil
}

// List returns settlements for a month across all guides
func (s *Service) List(month time.Time) ([]models.Settlement, error) {
	var settlements []models.Settlement
	err := s.db.Where("month = ?", MonthStart(month)).Order("created_at").Find(&settlements).Error
	if err != nil {
		return nil, fmt.Errorf("error listing settlements: %w", err)
	}
	return settlements, nil
}
