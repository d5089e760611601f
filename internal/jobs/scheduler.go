package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/guideport/backend/internal/services/commission"
	"github.com/guideport/backend/internal/services/settlement"
)

// Scheduler runs the recurring platform jobs: releasing held commissions and
// aggregating monthly settlements.
type Scheduler struct {
	scheduler     *gocron.Scheduler
	commissionSvc *commission.Service
	settlementSvc *settlement.Service
}

// NewScheduler creates a new scheduler
func NewScheduler(commissionSvc *commission.Service, settlementSvc *settlement.Service) *Scheduler {
	return &Scheduler{
		scheduler:     gocron.NewScheduler(time.UTC),
		commissionSvc: commissionSvc,
		settlementSvc: settlementSvc,
	}
}

// Start registers and starts the recurring jobs
func (s *Scheduler) Start() error {
	// Release commissions whose 14-day holding period has elapsed
	if _, err := s.scheduler.Every(1).Day().At("03:00").Do(s.releaseCommissions); err != nil {
		return err
	}

	// Aggregate last month's settlements shortly after the month boundary
	if _, err := s.scheduler.Cron("0 2 1 * *").Do(s.aggregateSettlements); err != nil {
		return err
	}

	// Sweep idle guides onto their new tier at each quarter start
	if _, err := s.scheduler.Cron("0 1 1 1,4,7,10 *").Do(s.refreshTiers); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) releaseCommissions() {
	released, err := s.commissionSvc.ReleaseDue(time.Now())
	if err != nil {
		log.Printf("scheduler: commission release failed: %v", err)
		return
	}
	if released > 0 {
		log.Printf("scheduler: released %d commissions", released)
	}
}

func (s *Scheduler) refreshTiers() {
	refreshed, err := s.commissionSvc.RefreshTiers(time.Now())
	if err != nil {
		log.Printf("scheduler: tier refresh failed: %v", err)
		return
	}
	log.Printf("scheduler: refreshed tiers for %d guides", refreshed)
}

func (s *Scheduler) aggregateSettlements() {
	// Settle the month that just ended
	lastMonth := settlement.MonthStart(time.Now().UTC()).AddDate(0, 0, -1)
	created, err := s.settlementSvc.AggregateMonth(lastMonth)
	if err != nil {
		log.Printf("scheduler: settlement aggregation failed: %v", err)
		return
	}
	log.Printf("scheduler: aggregated settlements for %d guides (%s)",
		created, settlement.MonthStart(lastMonth).Format("2006-01"))
}
