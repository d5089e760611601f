package models

import (
	"time"

	"github.com/google/uuid"
)

// KYCDocumentType represents the type of identity document submitted
type KYCDocumentType string

const (
	KYCDocumentPassport       KYCDocumentType = "passport"
	KYCDocumentDriversLicense KYCDocumentType = "drivers_license"
	KYCDocumentResidenceCard  KYCDocumentType = "residence_card"
	KYCDocumentNationalID     KYCDocumentType = "national_id"
)

// KYCSubmission represents one identity verification submission by a guide.
// A rejected guide may resubmit; each resubmission is a new row.
type KYCSubmission struct {
	Base
	GuideID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"guide_id"`
	Guide           Guide           `gorm:"foreignKey:GuideID" json:"-"`
	DocumentType    KYCDocumentType `gorm:"type:varchar(30);not null" json:"document_type"`
	DocumentNumber  string          `gorm:"type:varchar(100);not null" json:"document_number"`
	LegalName       string          `gorm:"type:varchar(255);not null" json:"legal_name"`
	Nationality     string          `gorm:"type:varchar(2);not null" json:"nationality"`
	FrontImageURL   string          `gorm:"type:text;not null" json:"front_image_url"`
	BackImageURL    *string         `gorm:"type:text" json:"back_image_url"`
	Status          KYCStatus       `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
	RejectionReason *string         `gorm:"type:text" json:"rejection_reason"`
	ReviewedBy      *uuid.UUID      `gorm:"type:uuid" json:"reviewed_by"`
	ReviewedAt      *time.Time      `json:"reviewed_at"`
}

// KYCStatusHistory tracks the history of status changes for a guide's KYC
type KYCStatusHistory struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GuideID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"guide_id"`
	SubmissionID   *uuid.UUID `gorm:"type:uuid" json:"submission_id"`
	PreviousStatus KYCStatus  `gorm:"type:varchar(20);not null" json:"previous_status"`
	NewStatus      KYCStatus  `gorm:"type:varchar(20);not null" json:"new_status"`
	ChangedBy      *uuid.UUID `gorm:"type:uuid" json:"changed_by"`
	Notes          *string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
