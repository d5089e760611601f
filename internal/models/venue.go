package models

// VenueCategory represents the kind of establishment
type VenueCategory string

const (
	VenueCategoryNightclub  VenueCategory = "nightclub"
	VenueCategoryRestaurant VenueCategory = "restaurant"
	VenueCategoryClinic     VenueCategory = "clinic"
	VenueCategoryOther      VenueCategory = "other"
)

// Venue represents a bookable third-party establishment
type Venue struct {
	Base
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Category    VenueCategory `gorm:"type:varchar(20);not null;default:'other'" json:"category"`
	Area        string        `gorm:"type:varchar(100)" json:"area"`
	Address     string        `gorm:"type:text" json:"address"`
	PhoneNumber string        `gorm:"type:varchar(20)" json:"phone_number"`
	Active      bool          `gorm:"default:true" json:"active"`
}
