package config

import (
	"fmt"
	"log"
	"time"

	"campsite-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedDatabase fills an empty database with a small site: three sectors,
// pitches 001 to 020 and a summer season. Tables that already hold rows are left alone.
func SeedDatabase(db *gorm.DB) {
	// ---------------- Sectors ----------------
	var sectorCount int64
	db.Model(&models.Sector{}).Count(&sectorCount)
	if sectorCount == 0 {
		sectors := []models.Sector{
			{Name: "Pineta", Color: "#16a34a"},
			{Name: "Mare", Color: "#0ea5e9"},
			{Name: "Prato", Color: "#84cc16"},
		}
		if err := db.Create(&sectors).Error; err != nil {
			log.Printf("⚠️ failed to seed sectors: %v", err)
		} else {
			log.Println("✅ Sectors seeded")
		}
	}

	var sectors []models.Sector
	db.Order("id ASC").Find(&sectors)

	// ---------------- Pitches ----------------
	var pitchCount int64
	db.Model(&models.Pitch{}).Count(&pitchCount)
	if pitchCount == 0 {
		pitches := make([]models.Pitch, 0, 20)
		for i := 1; i <= 20; i++ {
			p := models.Pitch{
				Number: fmt.Sprintf("%03d", i),
				Type:   models.PitchTypePiazzola,
				Status: models.PitchStatusAvailable,
				Attributes: datatypes.JSONMap{
					"electricity": true,
					"water":       i%2 == 0,
					"size_m2":     80,
				},
			}
			if i > 14 {
				p.Type = models.PitchTypeTenda
				p.Attributes = datatypes.JSONMap{"electricity": false, "size_m2": 40}
			}
			if len(sectors) > 0 {
				p.SectorID = &sectors[(i-1)%len(sectors)].ID
			}
			pitches = append(pitches, p)
		}
		if err := db.Create(&pitches).Error; err != nil {
			log.Printf("⚠️ failed to seed pitches: %v", err)
		} else {
			log.Println("✅ Pitches seeded")
		}
	}

	// ---------------- Pricing seasons ----------------
	var seasonCount int64
	db.Model(&models.PricingSeason{}).Count(&seasonCount)
	if seasonCount == 0 {
		year := time.Now().Year()
		season := models.PricingSeason{
			Name:         "Alta Stagione",
			Description:  "Luglio e agosto",
			StartDate:    time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(year, time.August, 31, 0, 0, 0, 0, time.UTC),
			PiazzolaRate: 40,
			TendaRate:    30,
			AdultRate:    8,
			ChildRate:    4,
			DogRate:      3,
			CarRate:      5,
			Priority:     10,
			IsActive:     true,
			Color:        "#ef4444",
		}
		if err := db.Create(&season).Error; err != nil {
			log.Printf("⚠️ failed to seed pricing season: %v", err)
		} else {
			log.Println("✅ Pricing season seeded")
		}
	}
}
