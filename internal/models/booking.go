package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusNoShow, BookingStatusCancelled:
		return true
	}
	return false
}

// DepositStatus represents the state of a booking deposit
type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "pending"
	DepositStatusPaid      DepositStatus = "paid"
	DepositStatusRefunded  DepositStatus = "refunded"
	DepositStatusForfeited DepositStatus = "forfeited"
)

// Booking represents a single reservation. Bookings are never deleted;
// cancellation is a status. Amounts are whole yen.
type Booking struct {
	Base
	VenueID          uuid.UUID     `gorm:"type:uuid;index;not null" json:"venue_id"`
	Venue            Venue         `gorm:"foreignKey:VenueID" json:"-"`
	GuideID          uuid.UUID     `gorm:"type:uuid;index;not null" json:"guide_id"`
	Guide            Guide         `gorm:"foreignKey:GuideID" json:"-"`
	CustomerID       uuid.UUID     `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer         Customer      `gorm:"foreignKey:CustomerID" json:"-"`
	PartySize        int           `gorm:"not null" json:"party_size"`
	BookingAt        time.Time     `gorm:"not null" json:"booking_at"`
	Status           BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DepositStatus    DepositStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"deposit_status"`
	DepositAmount    int64         `gorm:"not null;default:0" json:"deposit_amount"`
	ActualSpend      *int64        `json:"actual_spend"`
	CommissionAmount *int64        `json:"commission_amount"`
	AdminNotes       string        `gorm:"type:text" json:"admin_notes"`
	CancelReason     *string       `gorm:"type:text" json:"cancel_reason"`
	CompletedAt      *time.Time    `json:"completed_at"`
}

// BookingStatusHistory tracks every status change applied to a booking
type BookingStatusHistory struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID      uuid.UUID     `gorm:"type:uuid;index;not null" json:"booking_id"`
	Booking        Booking       `gorm:"foreignKey:BookingID" json:"-"`
	PreviousStatus BookingStatus `gorm:"type:varchar(20);not null" json:"previous_status"`
	NewStatus      BookingStatus `gorm:"type:varchar(20);not null" json:"new_status"`
	ChangedBy      uuid.UUID     `gorm:"type:uuid" json:"changed_by"`
	Notes          string        `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
