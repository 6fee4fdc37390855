package models

import (
	"time"

	"gorm.io/datatypes"
)

type PitchType string

const (
	PitchTypePiazzola PitchType = "piazzola"
	PitchTypeTenda    PitchType = "tenda"
)

// Valid reports whether t is one of the known pitch types.
func (t PitchType) Valid() bool {
	return t == PitchTypePiazzola || t == PitchTypeTenda
}

type PitchStatus string

const (
	PitchStatusAvailable   PitchStatus = "available"
	PitchStatusMaintenance PitchStatus = "maintenance"
	PitchStatusBlocked     PitchStatus = "blocked"
)

func (s PitchStatus) Valid() bool {
	switch s {
	case PitchStatusAvailable, PitchStatusMaintenance, PitchStatusBlocked:
		return true
	}
	return false
}

// Suffixes of a pitch. A whole pitch has an empty suffix; a split one is
// represented by two rows with the same number and suffixes "a" and "b".
const (
	SuffixWhole = ""
	SuffixA     = "a"
	SuffixB     = "b"
)

type Pitch struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// (number, suffix) is unique: it is the physical identity of the pitch.
	Number string `gorm:"size:10;not null;uniqueIndex:idx_pitch_number_suffix" json:"number"`
	Suffix string `gorm:"size:1;not null;default:'';uniqueIndex:idx_pitch_number_suffix" json:"suffix"`

	Type       PitchType         `gorm:"size:20;not null;index" json:"type"`
	Status     PitchStatus       `gorm:"size:20;not null;default:available;index" json:"status"`
	Attributes datatypes.JSONMap `gorm:"column:attributes" json:"attributes"`

	SectorID *uint   `gorm:"column:sector_id;index" json:"sector_id,omitempty"`
	Sector   *Sector `gorm:"foreignKey:SectorID;constraint:OnDelete:SET NULL" json:"sector,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Label is the name shown on the site map, e.g. "012" or "012b".
func (p Pitch) Label() string {
	return p.Number + p.Suffix
}

type Sector struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Color     string    `gorm:"size:7" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
