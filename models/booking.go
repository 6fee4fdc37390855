package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCheckedIn, BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking occupies its pitch over [CheckIn, CheckOut): the checkout day is free
// for the next arrival.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PitchID    uint  `gorm:"column:pitch_id;not null;index" json:"pitch_id"`
	CustomerID *uint `gorm:"column:customer_id;index" json:"customer_id,omitempty"`

	CheckIn  time.Time     `gorm:"column:check_in;type:date;not null;index" json:"check_in"`
	CheckOut time.Time     `gorm:"column:check_out;type:date;not null;index" json:"check_out"`
	Status   BookingStatus `gorm:"column:status;size:20;not null;default:confirmed;index" json:"status"`

	GuestsCount int     `gorm:"column:guests_count;not null" json:"guests_count"`
	Adults      int     `gorm:"column:adults;not null" json:"adults"`
	Children    int     `gorm:"column:children;default:0" json:"children"`
	Dogs        int     `gorm:"column:dogs;default:0" json:"dogs"`
	Cars        int     `gorm:"column:cars;default:0" json:"cars"`
	TotalPrice  float64 `gorm:"column:total_price;type:decimal(10,2)" json:"total_price"`
	Notes       string  `gorm:"type:text" json:"notes,omitempty"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Pitch    *Pitch    `gorm:"foreignKey:PitchID;references:ID" json:"pitch,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
}

// Blocking reports whether the booking still holds its pitch for the
// purpose of occupancy checks.
func (b Booking) Blocking() bool {
	return b.Status != BookingStatusCancelled
}

// CustomerName returns the display name of the customer, if loaded.
func (b Booking) CustomerName() string {
	if b.Customer == nil {
		return ""
	}
	return b.Customer.DisplayName()
}
