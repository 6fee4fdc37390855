package services

import (
	"context"
	"strings"

	"campsite-backend/models"
	"campsite-backend/repository"
	"campsite-backend/tracing"
	"campsite-backend/utils"

	"go.opentelemetry.io/otel/attribute"
)

type AvailabilityResult struct {
	CheckIn        string         `json:"check_in"`
	CheckOut       string         `json:"check_out"`
	PitchType      *string        `json:"pitch_type"`
	TotalAvailable int            `json:"total_available"`
	Pitches        []models.Pitch `json:"pitches"`
}

type DateRangeView struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// BookingSummary is the part of a booking shown when a pitch is occupied.
type BookingSummary struct {
	ID           uint                 `json:"id"`
	CheckIn      string               `json:"check_in"`
	CheckOut     string               `json:"check_out"`
	Status       models.BookingStatus `json:"status"`
	GuestsCount  int                  `json:"guests_count"`
	CustomerName string               `json:"customer_name"`
}

type OccupancyResult struct {
	PitchID    uint            `json:"pitch_id"`
	DateRange  DateRangeView   `json:"date_range"`
	IsOccupied bool            `json:"is_occupied"`
	Booking    *BookingSummary `json:"booking,omitempty"`
}

type AvailabilityService interface {
	ResolveAvailability(ctx context.Context, checkIn, checkOut, pitchType string) (*AvailabilityResult, error)
	CheckOccupancy(ctx context.Context, pitchID uint, checkIn, checkOut string) (*OccupancyResult, error)
}

type availabilityService struct {
	pitches  repository.PitchRepository
	bookings repository.BookingRepository
}

func NewAvailabilityService(pitches repository.PitchRepository, bookings repository.BookingRepository) AvailabilityService {
	return &availabilityService{pitches: pitches, bookings: bookings}
}

// ResolveAvailability lists the available pitches with no non-cancelled
// booking intersecting [checkIn, checkOut).
func (s *availabilityService) ResolveAvailability(ctx context.Context, checkIn, checkOut, pitchType string) (*AvailabilityResult, error) {
	ctx, span := tracing.Tracer().Start(ctx, "AvailabilityService.ResolveAvailability")
	defer span.End()

	period, err := utils.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return nil, validationError("%v", err)
	}

	status := models.PitchStatusAvailable
	filter := repository.PitchFilter{Status: &status}
	var typeView *string
	if pitchType = strings.TrimSpace(pitchType); pitchType != "" {
		t := models.PitchType(pitchType)
		if !t.Valid() {
			return nil, validationError("pitch_type must be one of: piazzola, tenda")
		}
		filter.Type = &t
		typeView = &pitchType
	}
	span.SetAttributes(attribute.String("period", period.String()))

	pitches, err := s.pitches.List(ctx, filter)
	if err != nil {
		err = storageError("failed to load pitches", err)
		tracing.RecordError(span, err)
		return nil, err
	}
	bookings, err := s.bookings.FindOverlapping(ctx, period, nil, nil)
	if err != nil {
		err = storageError("failed to load bookings", err)
		tracing.RecordError(span, err)
		return nil, err
	}

	occupied := make(map[uint]struct{}, len(bookings))
	for _, b := range bookings {
		if blocks(b, period) {
			occupied[b.PitchID] = struct{}{}
		}
	}

	free := make([]models.Pitch, 0, len(pitches))
	for _, p := range pitches {
		if _, taken := occupied[p.ID]; !taken {
			free = append(free, p)
		}
	}
	sortPitches(free)

	return &AvailabilityResult{
		CheckIn:        utils.FormatDate(period.Start),
		CheckOut:       utils.FormatDate(period.End),
		PitchType:      typeView,
		TotalAvailable: len(free),
		Pitches:        free,
	}, nil
}

func (s *availabilityService) CheckOccupancy(ctx context.Context, pitchID uint, checkIn, checkOut string) (*OccupancyResult, error) {
	ctx, span := tracing.Tracer().Start(ctx, "AvailabilityService.CheckOccupancy")
	defer span.End()

	if pitchID == 0 {
		return nil, validationError("pitch_id must be a positive integer")
	}
	period, err := utils.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return nil, validationError("%v", err)
	}

	bookings, err := s.bookings.FindOverlapping(ctx, period, &pitchID, nil)
	if err != nil {
		err = storageError("failed to load bookings", err)
		tracing.RecordError(span, err)
		return nil, err
	}

	result := &OccupancyResult{
		PitchID: pitchID,
		DateRange: DateRangeView{
			CheckIn:  utils.FormatDate(period.Start),
			CheckOut: utils.FormatDate(period.End),
		},
	}
	for _, b := range bookings {
		if b.PitchID != pitchID || !blocks(b, period) {
			continue
		}
		result.IsOccupied = true
		result.Booking = summarize(b)
		break
	}
	return result, nil
}

// blocks reports whether b holds its pitch for any day of period.
func blocks(b models.Booking, period utils.DateRange) bool {
	if !b.Blocking() {
		return false
	}
	stay := utils.DateRange{Start: utils.Day(b.CheckIn), End: utils.Day(b.CheckOut)}
	return stay.Overlaps(period)
}

func summarize(b models.Booking) *BookingSummary {
	return &BookingSummary{
		ID:           b.ID,
		CheckIn:      utils.FormatDate(b.CheckIn),
		CheckOut:     utils.FormatDate(b.CheckOut),
		Status:       b.Status,
		GuestsCount:  b.GuestsCount,
		CustomerName: b.CustomerName(),
	}
}
