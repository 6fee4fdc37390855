package models

import (
	"time"
)

const DefaultSeasonColor = "#3b82f6"

// PricingSeason defines per-day rates for an inclusive date range. Seasons may
// overlap; the one with the highest Priority wins, then the most recently created.
type PricingSeason struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	StartDate time.Time `gorm:"column:start_date;type:date;not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index" json:"end_date"`

	PiazzolaRate float64 `gorm:"column:piazzola_rate;type:decimal(10,2);not null" json:"piazzola_rate"`
	TendaRate    float64 `gorm:"column:tenda_rate;type:decimal(10,2);not null" json:"tenda_rate"`
	AdultRate    float64 `gorm:"column:adult_rate;type:decimal(10,2);default:0" json:"adult_rate"`
	ChildRate    float64 `gorm:"column:child_rate;type:decimal(10,2);default:0" json:"child_rate"`
	DogRate      float64 `gorm:"column:dog_rate;type:decimal(10,2);default:0" json:"dog_rate"`
	CarRate      float64 `gorm:"column:car_rate;type:decimal(10,2);default:0" json:"car_rate"`

	Priority int    `gorm:"not null;default:0;index" json:"priority"`
	IsActive bool   `gorm:"column:is_active;not null;index" json:"is_active"`
	Color    string `gorm:"size:7" json:"color"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RateFor returns the base daily rate for a pitch type.
func (s PricingSeason) RateFor(t PitchType) float64 {
	if t == PitchTypeTenda {
		return s.TendaRate
	}
	return s.PiazzolaRate
}

// Covers reports whether day lies within [StartDate, EndDate], both inclusive.
func (s PricingSeason) Covers(day time.Time) bool {
	return !day.Before(dateOnly(s.StartDate)) && !day.After(dateOnly(s.EndDate))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
