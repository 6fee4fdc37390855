package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"campsite-backend/metrics"
	"campsite-backend/models"
	"campsite-backend/repository"
	"campsite-backend/utils"
)

type BookingListQuery struct {
	From    string
	To      string
	Status  string
	PitchID *uint
}

type BookingInput struct {
	PitchID     uint
	CustomerID  *uint
	CheckIn     string
	CheckOut    string
	GuestsCount int
	Occupants
	// ExtraRates are used to price the stay when TotalPrice is nil.
	ExtraRates
	TotalPrice *float64
	Notes      string
}

type BookingService interface {
	List(ctx context.Context, q BookingListQuery) ([]models.Booking, error)
	Get(ctx context.Context, id uint) (*models.Booking, error)
	Create(ctx context.Context, in BookingInput) (*models.Booking, error)
	Reschedule(ctx context.Context, id uint, checkIn, checkOut string) (*models.Booking, error)
	CheckIn(ctx context.Context, id uint) (*models.Booking, error)
	CheckOut(ctx context.Context, id uint) (*models.Booking, error)
	Cancel(ctx context.Context, id uint) (*models.Booking, error)
	Delete(ctx context.Context, id uint) error
}

type bookingService struct {
	bookings  repository.BookingRepository
	pitches   repository.PitchRepository
	customers repository.CustomerRepository
	pricing   PricingService
	now       func() time.Time
}

func NewBookingService(bookings repository.BookingRepository, pitches repository.PitchRepository, customers repository.CustomerRepository, pricing PricingService) BookingService {
	return &bookingService{
		bookings:  bookings,
		pitches:   pitches,
		customers: customers,
		pricing:   pricing,
		now:       time.Now,
	}
}

func (s *bookingService) List(ctx context.Context, q BookingListQuery) ([]models.Booking, error) {
	var filter repository.BookingFilter

	if q.From != "" || q.To != "" {
		period, err := utils.ParseDateRange(q.From, q.To)
		if err != nil {
			return nil, validationError("from/to: %v", err)
		}
		filter.Range = &period
	}
	if q.Status != "" {
		st := models.BookingStatus(q.Status)
		if !st.Valid() {
			return nil, validationError("status must be one of: confirmed, checked_in, checked_out, cancelled")
		}
		filter.Status = &st
	}
	filter.PitchID = q.PitchID

	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, storageError("failed to load bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "booking not found")
	}
	return booking, nil
}

func (s *bookingService) Create(ctx context.Context, in BookingInput) (*models.Booking, error) {
	if in.PitchID == 0 {
		return nil, validationError("pitch_id is required")
	}
	period, err := parseStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if in.Adults < 0 || in.Children < 0 || in.Dogs < 0 || in.Cars < 0 || in.GuestsCount < 0 {
		return nil, validationError("guest, child, dog and car counts must not be negative")
	}
	if in.TotalPrice != nil && *in.TotalPrice < 0 {
		return nil, validationError("total_price must not be negative")
	}

	pitch, err := s.pitches.GetByID(ctx, in.PitchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError("pitch %d does not exist", in.PitchID)
		}
		return nil, storageError("failed to load pitch", err)
	}
	if pitch.Status != models.PitchStatusAvailable {
		return nil, conflictError("pitch %s is %s and cannot be booked", pitch.Label(), pitch.Status)
	}
	if in.CustomerID != nil {
		if _, err := s.customers.GetByID(ctx, *in.CustomerID, false); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, validationError("customer %d does not exist", *in.CustomerID)
			}
			return nil, storageError("failed to load customer", err)
		}
	}
	if err := s.ensureFree(ctx, pitch, period, nil); err != nil {
		return nil, err
	}

	adults := in.Adults
	guests := in.GuestsCount
	if guests == 0 {
		guests = adults + in.Children
	}
	if guests == 0 {
		guests, adults = 1, 1
	}

	booking := &models.Booking{
		PitchID:     pitch.ID,
		CustomerID:  in.CustomerID,
		CheckIn:     period.Start,
		CheckOut:    period.End,
		Status:      models.BookingStatusConfirmed,
		GuestsCount: guests,
		Adults:      adults,
		Children:    in.Children,
		Dogs:        in.Dogs,
		Cars:        in.Cars,
		Notes:       strings.TrimSpace(in.Notes),
	}
	if in.TotalPrice != nil {
		booking.TotalPrice = round2(*in.TotalPrice)
	} else {
		calc, err := s.pricing.CalculatePrice(ctx, PriceQuery{
			CheckIn:    utils.FormatDate(period.Start),
			CheckOut:   utils.FormatDate(period.End),
			PitchType:  string(pitch.Type),
			Occupants:  Occupants{Adults: adults, Children: in.Children, Dogs: in.Dogs, Cars: in.Cars},
			ExtraRates: in.ExtraRates,
		})
		if err != nil {
			return nil, err
		}
		booking.TotalPrice = calc.TotalPrice
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fromRepository(err, "booking not found")
	}
	metrics.BookingTransitions.WithLabelValues(string(booking.Status)).Inc()
	booking.Pitch = pitch
	return booking, nil
}

// Reschedule moves a confirmed or checked-in booking to new dates on the same pitch.
func (s *bookingService) Reschedule(ctx context.Context, id uint, checkIn, checkOut string) (*models.Booking, error) {
	period, err := parseStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "booking not found")
	}
	if booking.Status != models.BookingStatusConfirmed && booking.Status != models.BookingStatusCheckedIn {
		return nil, conflictError("a %s booking cannot change dates", booking.Status)
	}

	pitch := booking.Pitch
	if pitch == nil {
		pitch = &models.Pitch{ID: booking.PitchID}
	}
	if err := s.ensureFree(ctx, pitch, period, &booking.ID); err != nil {
		return nil, err
	}

	booking.CheckIn = period.Start
	booking.CheckOut = period.End
	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, fromRepository(err, "booking not found")
	}
	return booking, nil
}

func (s *bookingService) CheckIn(ctx context.Context, id uint) (*models.Booking, error) {
	return s.transition(ctx, id, models.BookingStatusConfirmed, models.BookingStatusCheckedIn, func(b *models.Booking, at time.Time) {
		b.CheckedInAt = &at
	})
}

func (s *bookingService) CheckOut(ctx context.Context, id uint) (*models.Booking, error) {
	return s.transition(ctx, id, models.BookingStatusCheckedIn, models.BookingStatusCheckedOut, func(b *models.Booking, at time.Time) {
		b.CheckedOutAt = &at
	})
}

func (s *bookingService) Cancel(ctx context.Context, id uint) (*models.Booking, error) {
	return s.transition(ctx, id, models.BookingStatusConfirmed, models.BookingStatusCancelled, nil)
}

func (s *bookingService) Delete(ctx context.Context, id uint) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fromRepository(err, "booking not found")
	}
	return nil
}

func (s *bookingService) transition(ctx context.Context, id uint, from, to models.BookingStatus, stamp func(*models.Booking, time.Time)) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "booking not found")
	}
	if booking.Status != from {
		return nil, conflictError("booking %d is %s, expected %s", booking.ID, booking.Status, from)
	}

	booking.Status = to
	if stamp != nil {
		stamp(booking, s.now().UTC())
	}
	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, fromRepository(err, "booking not found")
	}
	metrics.BookingTransitions.WithLabelValues(string(to)).Inc()
	return booking, nil
}

func (s *bookingService) ensureFree(ctx context.Context, pitch *models.Pitch, period utils.DateRange, exclude *uint) error {
	pitchID := pitch.ID
	clashes, err := s.bookings.FindOverlapping(ctx, period, &pitchID, exclude)
	if err != nil {
		return storageError("failed to check pitch occupancy", err)
	}
	for _, b := range clashes {
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if blocks(b, period) {
			return conflictError("pitch %s is already booked from %s to %s (booking %d)",
				pitchLabel(pitch), utils.FormatDate(b.CheckIn), utils.FormatDate(b.CheckOut), b.ID)
		}
	}
	return nil
}

func pitchLabel(p *models.Pitch) string {
	if p.Number == "" {
		return "#" + strconv.FormatUint(uint64(p.ID), 10)
	}
	return p.Label()
}

// parseStay parses the dates of a booked stay and bounds its length.
func parseStay(checkIn, checkOut string) (utils.DateRange, error) {
	period, err := utils.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return utils.DateRange{}, validationError("%v", err)
	}
	if err := utils.CheckStayLength(period.Start, period.End); err != nil {
		return utils.DateRange{}, validationError("%v", err)
	}
	return period, nil
}
