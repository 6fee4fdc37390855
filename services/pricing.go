package services

import (
	"math"
	"time"

	"campsite-backend/models"
	"campsite-backend/utils"
)

// Rates applied on days no active season covers.
const (
	DefaultPiazzolaRate = 25.0
	DefaultTendaRate    = 18.0
	DefaultRateLabel    = "Tariffa base"
	DefaultRateColor    = "#6b7280"
)

// Occupants are the extra people, pets and vehicles billed on top of the pitch rate.
type Occupants struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Dogs     int `json:"dogs"`
	Cars     int `json:"cars"`
}

// ExtraRates are the per-day rates of each occupant category.
type ExtraRates struct {
	AdultRate float64 `json:"adultRate"`
	ChildRate float64 `json:"childRate"`
	DogRate   float64 `json:"dogRate"`
	CarRate   float64 `json:"carRate"`
}

// DailySurcharge is the amount added to every day of the stay, whatever the season.
func (o Occupants) DailySurcharge(r ExtraRates) float64 {
	return float64(o.Adults)*r.AdultRate +
		float64(o.Children)*r.ChildRate +
		float64(o.Dogs)*r.DogRate +
		float64(o.Cars)*r.CarRate
}

type DayPrice struct {
	Date        string  `json:"date"`
	Rate        float64 `json:"rate"`
	SeasonName  string  `json:"seasonName"`
	SeasonColor string  `json:"seasonColor"`
}

type PriceCalculation struct {
	TotalPrice  float64    `json:"totalPrice"`
	Days        int        `json:"days"`
	AverageRate float64    `json:"averageRate"`
	Breakdown   []DayPrice `json:"breakdown"`
}

// DefaultRate is the fallback daily rate of a pitch type.
func DefaultRate(t models.PitchType) float64 {
	if t == models.PitchTypeTenda {
		return DefaultTendaRate
	}
	return DefaultPiazzolaRate
}

// BillableDays returns the number of billed days of a stay. The checkout day is
// not billed, but a same-day stay still counts as one day.
func BillableDays(checkIn, checkOut time.Time) int {
	days := utils.DaysBetween(checkIn, checkOut)
	if days == 0 {
		return 1
	}
	return days
}

// ResolveSeason returns the season that prices day: among the active seasons
// covering it, the highest priority wins and, on equal priority, the most
// recently created. It returns nil when no season applies.
func ResolveSeason(seasons []models.PricingSeason, day time.Time) *models.PricingSeason {
	var best *models.PricingSeason
	for i := range seasons {
		s := &seasons[i]
		if !s.IsActive || !s.Covers(day) {
			continue
		}
		if best == nil ||
			s.Priority > best.Priority ||
			(s.Priority == best.Priority && s.CreatedAt.After(best.CreatedAt)) {
			best = s
		}
	}
	return best
}

// CalculateStayPrice builds the per-day breakdown of a stay. checkOut must not
// be before checkIn; callers validate that.
func CalculateStayPrice(checkIn, checkOut time.Time, pitchType models.PitchType, occupants Occupants, rates ExtraRates, seasons []models.PricingSeason) PriceCalculation {
	checkIn = utils.Day(checkIn)
	days := BillableDays(checkIn, checkOut)
	extra := occupants.DailySurcharge(rates)

	breakdown := make([]DayPrice, 0, days)
	var total float64
	for i := 0; i < days; i++ {
		day := checkIn.AddDate(0, 0, i)
		entry := DayPrice{
			Date:        utils.FormatDate(day),
			Rate:        DefaultRate(pitchType) + extra,
			SeasonName:  DefaultRateLabel,
			SeasonColor: DefaultRateColor,
		}
		if len(seasons) > 0 {
			if season := ResolveSeason(seasons, day); season != nil {
				entry.Rate = season.RateFor(pitchType) + extra
				entry.SeasonName = season.Name
				entry.SeasonColor = season.Color
				if entry.SeasonColor == "" {
					entry.SeasonColor = models.DefaultSeasonColor
				}
			}
		}
		entry.Rate = round2(entry.Rate)
		total += entry.Rate
		breakdown = append(breakdown, entry)
	}

	calc := PriceCalculation{
		TotalPrice: round2(total),
		Days:       days,
		Breakdown:  breakdown,
	}
	if days > 0 {
		calc.AverageRate = round2(calc.TotalPrice / float64(days))
	}
	return calc
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
