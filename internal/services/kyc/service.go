package kyc

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guideport/backend/internal/models"
	"gorm.io/gorm"
)

// ErrInvalidTransition is returned for illegal KYC status changes.
// Approved is terminal; only pending or rejected guides may (re)submit.
var ErrInvalidTransition = errors.New("invalid KYC status transition")

// Transition validates a KYC status change:
// pending -> submitted -> {approved | rejected}, rejected -> submitted.
func Transition(from, to models.KYCStatus) error {
	switch to {
	case models.KYCStatusSubmitted:
		switch from {
		case models.KYCStatusPending, models.KYCStatusRejected:
			return nil
		case models.KYCStatusApproved:
			return fmt.Errorf("%w: already approved", ErrInvalidTransition)
		}
		return fmt.Errorf("%w: submission already under review", ErrInvalidTransition)
	case models.KYCStatusApproved, models.KYCStatusRejected:
		if from == models.KYCStatusSubmitted {
			return nil
		}
		return fmt.Errorf("%w: cannot review from %s", ErrInvalidTransition, from)
	}
	return fmt.Errorf("%w: %s is not a reachable status", ErrInvalidTransition, to)
}

// FieldErrors maps field names to validation messages. A failed validation
// never transitions state.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// SubmissionInput is the payload for a KYC submission
type SubmissionInput struct {
	DocumentType   models.KYCDocumentType `json:"document_type"`
	DocumentNumber string                 `json:"document_number"`
	LegalName      string                 `json:"legal_name"`
	Nationality    string                 `json:"nationality"`
	FrontImageURL  string                 `json:"front_image_url"`
	BackImageURL   *string                `json:"back_image_url"`
}

// ValidateSubmission checks the required fields. The back-side image is
// optional and explicitly waived for passports, which have no back side.
func ValidateSubmission(input SubmissionInput) FieldErrors {
	errs := FieldErrors{}

	switch input.DocumentType {
	case models.KYCDocumentPassport, models.KYCDocumentDriversLicense,
		models.KYCDocumentResidenceCard, models.KYCDocumentNationalID:
	case "":
		errs["document_type"] = "required"
	default:
		errs["document_type"] = "unknown document type"
	}

	if strings.TrimSpace(input.DocumentNumber) == "" {
		errs["document_number"] = "required"
	}
	if strings.TrimSpace(input.LegalName) == "" {
		errs["legal_name"] = "required"
	}
	if len(strings.TrimSpace(input.Nationality)) != 2 {
		errs["nationality"] = "two-letter country code required"
	}
	if strings.TrimSpace(input.FrontImageURL) == "" {
		errs["front_image_url"] = "required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Service manages the guide KYC state machine:
// pending -> submitted -> {approved | rejected}, rejected -> submitted.
type Service struct {
	db *gorm.DB
}

// NewService creates a new KYC service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Submit validates and records a KYC submission for a guide, moving the
// guide's KYC status to submitted. Rejected guides may resubmit; each
// resubmission is a fresh row.
func (s *Service) Submit(guideID uuid.UUID, input SubmissionInput) (*models.KYCSubmission, error) {
	if errs := ValidateSubmission(input); errs != nil {
		return nil, errs
	}

	var submission models.KYCSubmission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var guide models.Guide
		if err := tx.First(&guide, "id = ?", guideID).Error; err != nil {
			return fmt.Errorf("error finding guide: %w", err)
		}

		if err := Transition(guide.KYCStatus, models.KYCStatusSubmitted); err != nil {
			return err
		}

		submission = models.KYCSubmission{
			GuideID:        guideID,
			DocumentType:   input.DocumentType,
			DocumentNumber: strings.TrimSpace(input.DocumentNumber),
			LegalName:      strings.TrimSpace(input.LegalName),
			Nationality:    strings.ToUpper(strings.TrimSpace(input.Nationality)),
			FrontImageURL:  input.FrontImageURL,
			BackImageURL:   input.BackImageURL,
			Status:         models.KYCStatusSubmitted,
		}
		if err := tx.Create(&submission).Error; err != nil {
			return fmt.Errorf("error creating KYC submission: %w", err)
		}

		return s.setStatusTx(tx, &guide, models.KYCStatusSubmitted, &submission.ID, nil, nil)
	})
	if err != nil {
		return nil, err
	}

	return &submission, nil
}

// Approve marks the guide's latest submission approved. Approved is terminal.
func (s *Service) Approve(guideID, reviewerID uuid.UUID) error {
	return s.review(guideID, reviewerID, models.KYCStatusApproved, nil)
}

// Reject marks the guide's latest submission rejected with a reason; the
// guide may resubmit afterwards.
func (s *Service) Reject(guideID, reviewerID uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return FieldErrors{"rejection_reason": "required"}
	}
	return s.review(guideID, reviewerID, models.KYCStatusRejected, &reason)
}

func (s *Service) review(guideID, reviewerID uuid.UUID, status models.KYCStatus, reason *string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var guide models.Guide
		if err := tx.First(&guide, "id = ?", guideID).Error; err != nil {
			return fmt.Errorf("error finding guide: %w", err)
		}
		if err := Transition(guide.KYCStatus, status); err != nil {
			return err
		}

		var submission models.KYCSubmission
		err := tx.Where("guide_id = ? AND status = ?", guideID, models.KYCStatusSubmitted).
			Order("created_at DESC").First(&submission).Error
		if err != nil {
			return fmt.Errorf("error finding submission: %w", err)
		}

		now := time.Now()
		submission.Status = status
		submission.RejectionReason = reason
		submission.ReviewedBy = &reviewerID
		submission.ReviewedAt = &now
		if err := tx.Save(&submission).Error; err != nil {
			return fmt.Errorf("error updating submission: %w", err)
		}

		return s.setStatusTx(tx, &guide, status, &submission.ID, &reviewerID, reason)
	})
}

// setStatusTx updates the guide's KYC status and appends a history row
func (s *Service) setStatusTx(tx *gorm.DB, guide *models.Guide, status models.KYCStatus, submissionID, changedBy *uuid.UUID, notes *string) error {
	prev := guide.KYCStatus
	guide.KYCStatus = status
	if err := tx.Model(&models.Guide{}).Where("id = ?", guide.ID).
		Update("kyc_status", status).Error; err != nil {
		return fmt.Errorf("error updating guide KYC status: %w", err)
	}

	history := models.KYCStatusHistory{
		GuideID:        guide.ID,
		SubmissionID:   submissionID,
		PreviousStatus: prev,
		NewStatus:      status,
		ChangedBy:      changedBy,
		Notes:          notes,
	}
	if err := tx.Create(&history).Error; err != nil {
		return fmt.Errorf("error recording KYC history: %w", err)
	}
	return nil
}

// Status returns a guide's current KYC status and latest submission if any
func (s *Service) Status(guideID uuid.UUID) (models.KYCStatus, *models.KYCSubmission, error) {
	var guide models.Guide
	if err := s.db.First(&guide, "id = ?", guideID).Error; err != nil {
		return "", nil, fmt.Errorf("error finding guide: %w", err)
	}

	var submission models.KYCSubmission
	err := s.db.Where("guide_id = ?", guideID).Order("created_at DESC").First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return guide.KYCStatus, nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("error finding submission: %w", err)
	}

	return guide.KYCStatus, &submission, nil
}
