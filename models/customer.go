package models

import (
	"strings"
	"time"
)

// Customer holds the identity data collected at the front desk and required
// for guest registration at check-in.
type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null;index" json:"last_name"`
	Email     string `gorm:"size:150;index" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`

	Address     string     `gorm:"size:255" json:"address"`
	City        string     `gorm:"size:100" json:"city"`
	Country     string     `gorm:"size:100" json:"country"`
	Nationality string     `gorm:"size:100" json:"nationality"`
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date,omitempty"`

	DocumentType   string `gorm:"size:30" json:"document_type"`
	DocumentNumber string `gorm:"size:50" json:"document_number"`
	Notes          string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Bookings []Booking `gorm:"foreignKey:CustomerID" json:"bookings,omitempty"`
}

func (c Customer) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}
