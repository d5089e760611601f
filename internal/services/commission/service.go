package commission

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/guideport/backend/internal/config"
	"github.com/guideport/backend/internal/models"
	"github.com/guideport/backend/internal/queue"
	"gorm.io/gorm"
)

// Service owns the commission ledger: tier resolution, commission recording,
// holding-period release and referral reward accrual.
type Service struct {
	db    *gorm.DB
	redis *redis.Client
	cfg   config.CommissionConfig
	queue queue.Enqueuer
}

// NewService creates a new commission service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg config.CommissionConfig, q queue.Enqueuer) *Service {
	return &Service{db: db, redis: redisClient, cfg: cfg, queue: q}
}

// Tiers returns the static tier table ordered by rank
func (s *Service) Tiers() ([]models.CommissionTier, error) {
	var tiers []models.CommissionTier
	if err := s.db.Order("rank").Find(&tiers).Error; err != nil {
		return nil, fmt.Errorf("error loading commission tiers: %w", err)
	}
	return tiers, nil
}

// TrailingQuarterRevenue sums a guide's completed-booking spend and
// white-label order amounts inside the calendar quarter containing at.
func (s *Service) TrailingQuarterRevenue(tx *gorm.DB, guideID uuid.UUID, at time.Time) (int64, error) {
	return s.revenueInWindow(tx, guideID, QuarterStart(at), at)
}

func (s *Service) revenueInWindow(tx *gorm.DB, guideID uuid.UUID, start, end time.Time) (int64, error) {
	var bookingRevenue int64
	err := tx.Model(&models.Booking{}).
		Where("guide_id = ? AND status = ? AND completed_at >= ? AND completed_at < ?",
			guideID, models.BookingStatusCompleted, start, end).
		Select("COALESCE(SUM(actual_spend), 0)").
		Scan(&bookingRevenue).Error
	if err != nil {
		return 0, fmt.Errorf("error summing booking revenue: %w", err)
	}

	var orderRevenue int64
	err = tx.Model(&models.WhiteLabelOrder{}).
		Where("guide_id = ? AND status = ? AND ordered_at >= ? AND ordered_at < ?",
			guideID, "paid", start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&orderRevenue).Error
	if err != nil {
		return 0, fmt.Errorf("error summing white-label revenue: %w", err)
	}

	return bookingRevenue + orderRevenue, nil
}

// currentTierTx returns the guide's applicable tier, re-evaluating it when
// this is the first qualifying event of a new quarter. Tiers are never
// downgraded mid-quarter; the guide keeps last quarter's tier until the
// first event of the new quarter re-resolves it.
func (s *Service) currentTierTx(tx *gorm.DB, guide *models.Guide, at time.Time) (models.CommissionTier, error) {
	var tiers []models.CommissionTier
	if err := tx.Order("rank").Find(&tiers).Error; err != nil {
		return models.CommissionTier{}, fmt.Errorf("error loading commission tiers: %w", err)
	}

	if !guide.TierUpdatedAt.Before(QuarterStart(at)) {
		for _, t := range tiers {
			if t.Code == guide.TierCode {
				return t, nil
			}
		}
		return models.CommissionTier{}, fmt.Errorf("unknown tier code %q", guide.TierCode)
	}

	// First qualifying event of a new quarter: re-resolve from the previous
	// quarter's full revenue window.
	quarterStart := QuarterStart(at)
	revenue, err := s.revenueInWindow(tx, guide.ID, quarterStart.AddDate(0, -3, 0), quarterStart)
	if err != nil {
		return models.CommissionTier{}, err
	}

	tier := ResolveTier(tiers, revenue)
	guide.TierCode = tier.Code
	guide.TierUpdatedAt = at
	if err := tx.Model(&models.Guide{}).Where("id = ?", guide.ID).
		Updates(map[string]interface{}{"tier_code": tier.Code, "tier_updated_at": at}).Error; err != nil {
		return models.CommissionTier{}, fmt.Errorf("error updating guide tier: %w", err)
	}

	return tier, nil
}

// RecordBookingCommissionTx computes and records the commission for a booking
// that has just completed, inside the caller's transaction. It also bumps the
// guide's cumulative totals. The booking must already have its actual spend
// and completion time set.
func (s *Service) RecordBookingCommissionTx(tx *gorm.DB, b *models.Booking) (*models.Commission, error) {
	if b.ActualSpend == nil || b.CompletedAt == nil {
		return nil, fmt.Errorf("booking %s has no recorded spend", b.ID)
	}

	var guide models.Guide
	if err := tx.First(&guide, "id = ?", b.GuideID).Error; err != nil {
		return nil, fmt.Errorf("error finding guide: %w", err)
	}

	tier, err := s.currentTierTx(tx, &guide, *b.CompletedAt)
	if err != nil {
		return nil, err
	}

	firstTime, err := s.isFirstTimeCustomerTx(tx, b)
	if err != nil {
		return nil, err
	}

	breakdown := Calculate(*b.ActualSpend, tier.Rate, s.cfg.NewCustomerBonusRate, firstTime)

	comm := models.Commission{
		GuideID:     b.GuideID,
		BookingID:   &b.ID,
		CustomerID:  &b.CustomerID,
		Type:        models.CommissionTypeBooking,
		OrderAmount: *b.ActualSpend,
		TierCode:    tier.Code,
		Rate:        tier.Rate,
		BaseAmount:  breakdown.BaseCommission,
		BonusAmount: breakdown.Bonus,
		Amount:      breakdown.Total,
		Status:      models.CommissionStatusCalculated,
		AvailableAt: b.CompletedAt.Add(time.Duration(s.cfg.HoldingPeriodDays) * 24 * time.Hour),
		EarnedAt:    *b.CompletedAt,
	}

	if err := tx.Create(&comm).Error; err != nil {
		return nil, fmt.Errorf("error creating commission: %w", err)
	}

	err = tx.Model(&models.Guide{}).Where("id = ?", guide.ID).
		Updates(map[string]interface{}{
			"total_bookings":   gorm.Expr("total_bookings + 1"),
			"total_commission": gorm.Expr("total_commission + ?", comm.Amount),
		}).Error
	if err != nil {
		return nil, fmt.Errorf("error updating guide totals: %w", err)
	}

	return &comm, nil
}

// isFirstTimeCustomerTx reports whether the booking's customer has no prior
// completed booking under the same guide.
func (s *Service) isFirstTimeCustomerTx(tx *gorm.DB, b *models.Booking) (bool, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("guide_id = ? AND customer_id = ? AND status = ? AND id <> ?",
			b.GuideID, b.CustomerID, models.BookingStatusCompleted, b.ID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("error checking customer history: %w", err)
	}
	return count == 0, nil
}

// EnqueueReferralReward queues referral reward processing for a recorded
// commission if the earning guide has a referrer. Call after the commission's
// transaction has committed.
func (s *Service) EnqueueReferralReward(comm *models.Commission) {
	var guide models.Guide
	if err := s.db.First(&guide, "id = ?", comm.GuideID).Error; err != nil {
		log.Printf("commission: cannot load guide %s for referral reward: %v", comm.GuideID, err)
		return
	}
	if guide.ReferrerID == nil {
		return
	}

	payload := map[string]interface{}{"commission_id": comm.ID.String()}
	if _, err := s.queue.EnqueueJob(queue.JobTypeReferralReward, payload); err != nil {
		log.Printf("commission: failed to enqueue referral reward for commission %s: %v", comm.ID, err)
	}
}

// RefreshTiers re-resolves every guide whose tier has not yet been evaluated
// this quarter. The per-event lazy path covers active guides; this sweep
// covers idle ones so dashboards show the current tier.
func (s *Service) RefreshTiers(at time.Time) (int, error) {
	var guides []models.Guide
	err := s.db.Where("tier_updated_at < ?", QuarterStart(at)).Find(&guides).Error
	if err != nil {
		return 0, fmt.Errorf("error loading guides for tier refresh: %w", err)
	}

	refreshed := 0
	for i := range guides {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			_, err := s.currentTierTx(tx, &guides[i], at)
			return err
		})
		if err != nil {
			log.Printf("commission: tier refresh for guide %s failed: %v", guides[i].ID, err)
			continue
		}
		refreshed++
	}

	return refreshed, nil
}

// ReleaseDue moves commissions whose holding period has elapsed from
// calculated to available. Nothing releases a commission early.
func (s *Service) ReleaseDue(now time.Time) (int64, error) {
	res := s.db.Model(&models.Commission{}).
		Where("status = ? AND available_at <= ?", models.CommissionStatusCalculated, now).
		Update("status", models.CommissionStatusAvailable)
	if res.Error != nil {
		return 0, fmt.Errorf("error releasing commissions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ListByGuide returns a guide's commissions, newest first
func (s *Service) ListByGuide(guideID uuid.UUID) ([]models.Commission, error) {
	var commissions []models.Commission
	err := s.db.Where("guide_id = ?", guideID).Order("earned_at DESC").Find(&commissions).Error
	if err != nil {
		return nil, fmt.Errorf("error listing commissions: %w", err)
	}
	return commissions, nil
}

// DashboardSummary is the guide dashboard rollup
type DashboardSummary struct {
	GuideID          uuid.UUID       `json:"guide_id"`
	TierCode         models.TierCode `json:"tier_code"`
	TierRate         float64         `json:"tier_rate"`
	QuarterRevenue   int64           `json:"quarter_revenue"`
	TotalBookings    int             `json:"total_bookings"`
	TotalCommission  int64           `json:"total_commission"`
	PendingAmount    int64           `json:"pending_amount"`   // still in holding period
	AvailableAmount  int64           `json:"available_amount"` // released, not settled
	ReferralEarnings int64           `json:"referral_earnings"`
}

const dashboardCacheTTL = 60 * time.Second

// Dashboard builds the guide dashboard summary, cached briefly in Redis to
// keep the portal snappy under polling.
func (s *Service) Dashboard(ctx context.Context, guideID uuid.UUID) (*DashboardSummary, error) {
	cacheKey := fmt.Sprintf("dashboard:%s", guideID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary DashboardSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	var guide models.Guide
	if err := s.db.First(&guide, "id = ?", guideID).Error; err != nil {
		return nil, fmt.Errorf("error finding guide: %w", err)
	}

	now := time.Now()
	revenue, err := s.TrailingQuarterRevenue(s.db, guideID, now)
	if err != nil {
		return nil, err
	}

	tiers, err := s.Tiers()
	if err != nil {
		return nil, err
	}
	var tierRate float64
	for _, t := range tiers {
		if t.Code == guide.TierCode {
			tierRate = t.Rate
		}
	}

	summary := DashboardSummary{
		GuideID:         guide.ID,
		TierCode:        guide.TierCode,
		TierRate:        tierRate,
		QuarterRevenue:  revenue,
		TotalBookings:   guide.TotalBookings,
		TotalCommission: guide.TotalCommission,
	}

	err = s.db.Model(&models.Commission{}).
		Where("guide_id = ? AND status = ?", guideID, models.CommissionStatusCalculated).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.PendingAmount).Error
	if err != nil {
		return nil, fmt.Errorf("error summing pending commissions: %w", err)
	}

	err = s.db.Model(&models.Commission{}).
		Where("guide_id = ? AND status = ?", guideID, models.CommissionStatusAvailable).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.AvailableAmount).Error
	if err != nil {
		return nil, fmt.Errorf("error summing available commissions: %w", err)
	}

	err = s.db.Model(&models.ReferralReward{}).
		Where("referrer_id = ?", guideID).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.ReferralEarnings).Error
	if err != nil {
		return nil, fmt.Errorf("error summing referral rewards: %w", err)
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(summary); err == nil {
			s.redis.Set(ctx, cacheKey, encoded, dashboardCacheTTL)
		}
	}

	return &summary, nil
}
