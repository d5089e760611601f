package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/guideport/backend/internal/config"
	"github.com/guideport/backend/internal/models"
	"github.com/guideport/backend/internal/queue"
	"github.com/guideport/backend/internal/services/commission"
	"gorm.io/gorm"
)

// ReferralRewardPayload is the payload for a referral reward job
type ReferralRewardPayload struct {
	CommissionID uuid.UUID `json:"commission_id"`
}

// ReferralRewardJob accrues the referrer's share of a commission. Rewards
// are additive: they never reduce the earning guide's commission.
type ReferralRewardJob struct {
	db  *gorm.DB
	cfg config.CommissionConfig
}

// NewReferralRewardJob creates a new referral reward job handler
func NewReferralRewardJob(db *gorm.DB, cfg config.CommissionConfig) *ReferralRewardJob {
	return &ReferralRewardJob{db: db, cfg: cfg}
}

// RegisterReferralRewardJobHandlers registers the referral reward job handlers
func RegisterReferralRewardJobHandlers(q *queue.Queue, db *gorm.DB, cfg config.CommissionConfig) {
	handler := NewReferralRewardJob(db, cfg)
	q.RegisterHandler(queue.JobTypeReferralReward, func(ctx context.Context, job queue.Job) (interface{}, error) {
		return nil, handler.Process(ctx, job)
	})
}

// Process accrues a referral reward for one commission. Re-delivery is safe:
// a commission that already has a reward is skipped.
func (j *ReferralRewardJob) Process(ctx context.Context, job queue.Job) error {
	var payload ReferralRewardPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal referral reward payload: %w", err)
	}

	var comm models.Commission
	if err := j.db.First(&comm, "id = ?", payload.CommissionID).Error; err != nil {
		return fmt.Errorf("failed to get commission: %w", err)
	}

	var earner models.Guide
	if err := j.db.First(&earner, "id = ?", comm.GuideID).Error; err != nil {
		return fmt.Errorf("failed to get guide: %w", err)
	}
	if earner.ReferrerID == nil {
		return nil
	}

	var existing models.ReferralReward
	result := j.db.Where("commission_id = ?", comm.ID).First(&existing)
	if result.Error == nil {
		log.Printf("referral reward for commission %s already processed", comm.ID)
		return nil
	}
	if result.Error != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to check existing reward: %w", result.Error)
	}

	reward := models.ReferralReward{
		ReferrerID:   *earner.ReferrerID,
		RefereeID:    earner.ID,
		CommissionID: comm.ID,
		BookingID:    comm.BookingID,
		RewardType:   "commission_share",
		Rate:         j.cfg.ReferralRewardRate,
		Amount:       commission.ReferralRewardAmount(comm.Amount, j.cfg.ReferralRewardRate),
		Status:       models.ReferralRewardStatusPending,
	}

	if err := j.db.Create(&reward).Error; err != nil {
		return fmt.Errorf("failed to create referral reward: %w", err)
	}

	log.Printf("accrued referral reward %d yen for referrer %s (commission %s)",
		reward.Amount, reward.ReferrerID, comm.ID)
	return nil
}
