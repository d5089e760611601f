package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeReferralReward       JobType = "process_referral_reward"
	JobTypeReleaseCommissions   JobType = "release_commissions"
	JobTypeAggregateSettlements JobType = "aggregate_settlements"
	JobTypeSyncSubscription     JobType = "sync_whitelabel_subscription"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job represents a background job persisted in the database
type Job struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Type       JobType         `json:"type" gorm:"index"`
	Payload    json.RawMessage `json:"payload"`
	Status     JobStatus       `json:"status" gorm:"index"`
	RetryCount int             `json:"retry_count" gorm:"default:0"`
	MaxRetries int             `json:"max_retries" gorm:"default:3"`
	NextRetry  *time.Time      `json:"next_retry,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Error      string          `json:"error,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
}

// JobHandler is a function that processes a job
type JobHandler func(ctx context.Context, job Job) (interface{}, error)

// Enqueuer is the narrow interface services use to push work onto the queue
type Enqueuer interface {
	EnqueueJob(jobType JobType, payload interface{}) (string, error)
}

// Queue is a database-backed job queue
type Queue struct {
	db       *gorm.DB
	handlers map[JobType]JobHandler
	quit     chan struct{}
}

// NewQueue creates a new queue
func NewQueue(db *gorm.DB) *Queue {
	return &Queue{
		db:       db,
		handlers: make(map[JobType]JobHandler),
		quit:     make(chan struct{}),
	}
}

// RegisterHandler registers a handler for a job type
func (q *Queue) RegisterHandler(jobType JobType, handler JobHandler) {
	q.handlers[jobType] = handler
}

// EnqueueJob adds a job to the queue
func (q *Queue) EnqueueJob(jobType JobType, payload interface{}) (string, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal job payload: %w", err)
	}

	job := Job{
		ID:         uuid.New(),
		Type:       jobType,
		Payload:    payloadBytes,
		Status:     JobStatusPending,
		MaxRetries: 3,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := q.db.Create(&job).Error; err != nil {
		return "", err
	}

	return job.ID.String(), nil
}

// GetJob retrieves a job by ID
func (q *Queue) GetJob(jobID string) (*Job, error) {
	var job Job
	err := q.db.Where("id = ?", jobID).First(&job).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job not found")
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// ProcessJobs polls for pending jobs and dispatches them to their handlers.
// Intended to run in its own goroutine; call Stop to shut it down.
func (q *Queue) ProcessJobs() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-q.quit:
			return
		case <-ticker.C:
			q.processNextBatch()
		}
	}
}

// Stop stops the job processor
func (q *Queue) Stop() {
	close(q.quit)
}

func (q *Queue) processNextBatch() {
	var jobs []Job
	now := time.Now()
	err := q.db.
		Where("status = ?", JobStatusPending).
		Where("next_retry IS NULL OR next_retry <= ?", now).
		Order("created_at").
		Limit(10).
		Find(&jobs).Error
	if err != nil {
		log.Printf("queue: failed to fetch pending jobs: %v", err)
		return
	}

	for _, job := range jobs {
		q.runJob(job)
	}
}

func (q *Queue) runJob(job Job) {
	handler, ok := q.handlers[job.Type]
	if !ok {
		log.Printf("queue: no handler registered for job type %s", job.Type)
		q.markFailed(&job, fmt.Errorf("no handler for job type %s", job.Type))
		return
	}

	// Claim the job before running it
	res := q.db.Model(&Job{}).
		Where("id = ? AND status = ?", job.ID, JobStatusPending).
		Updates(map[string]interface{}{"status": JobStatusProcessing, "updated_at": time.Now()})
	if res.Error != nil || res.RowsAffected == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := handler(ctx, job)
	if err != nil {
		q.handleFailure(&job, err)
		return
	}

	job.Status = JobStatusCompleted
	job.UpdatedAt = time.Now()
	if result != nil {
		if resultBytes, marshalErr := json.Marshal(result); marshalErr == nil {
			job.Result = resultBytes
		}
	}

	if err := q.db.Save(&job).Error; err != nil {
		log.Printf("queue: failed to mark job %s completed: %v", job.ID, err)
	}
}

func (q *Queue) handleFailure(job *Job, jobErr error) {
	job.RetryCount++
	job.Error = jobErr.Error()
	job.UpdatedAt = time.Now()

	if job.RetryCount >= job.MaxRetries {
		job.Status = JobStatusFailed
		log.Printf("queue: job %s (%s) failed permanently: %v", job.ID, job.Type, jobErr)
	} else {
		next := time.Now().Add(calculateBackoff(job.RetryCount))
		job.Status = JobStatusPending
		job.NextRetry = &next
		log.Printf("queue: job %s (%s) failed, retry %d/%d at %s: %v",
			job.ID, job.Type, job.RetryCount, job.MaxRetries, next.Format(time.RFC3339), jobErr)
	}

	if err := q.db.Save(job).Error; err != nil {
		log.Printf("queue: failed to persist job failure for %s: %v", job.ID, err)
	}
}

func (q *Queue) markFailed(job *Job, jobErr error) {
	job.Status = JobStatusFailed
	job.Error = jobErr.Error()
	job.UpdatedAt = time.Now()
	if err := q.db.Save(job).Error; err != nil {
		log.Printf("queue: failed to mark job %s failed: %v", job.ID, err)
	}
}
