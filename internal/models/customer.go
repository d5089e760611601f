package models

// Customer represents an end customer a guide books on behalf of
type Customer struct {
	Base
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Email       *string `gorm:"type:varchar(255)" json:"email"`
	PhoneNumber *string `gorm:"type:varchar(20)" json:"phone_number"`
	Nationality *string `gorm:"type:varchar(2)" json:"nationality"`
	Notes       string  `gorm:"type:text" json:"notes"`
}
