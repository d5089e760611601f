package jobs

import (
	"github.com/guideport/backend/internal/config"
	"github.com/guideport/backend/internal/queue"
	"gorm.io/gorm"
)

// RegisterAllJobHandlers registers all job handlers with the queue
func RegisterAllJobHandlers(q *queue.Queue, db *gorm.DB, cfg config.CommissionConfig) {
	RegisterReferralRewardJobHandlers(q, db, cfg)
}
