package services

import (
	"context"

	"campsite-backend/metrics"
	"campsite-backend/models"
	"campsite-backend/repository"
	"campsite-backend/tracing"
	"campsite-backend/utils"

	"go.opentelemetry.io/otel/attribute"
)

// PriceQuery is a price request as received from the API.
type PriceQuery struct {
	CheckIn   string
	CheckOut  string
	PitchType string
	Occupants
	ExtraRates
}

type PricingService interface {
	CalculatePrice(ctx context.Context, q PriceQuery) (*PriceCalculation, error)
}

type pricingService struct {
	seasons repository.SeasonRepository
}

func NewPricingService(seasons repository.SeasonRepository) PricingService {
	return &pricingService{seasons: seasons}
}

func (s *pricingService) CalculatePrice(ctx context.Context, q PriceQuery) (*PriceCalculation, error) {
	ctx, span := tracing.Tracer().Start(ctx, "PricingService.CalculatePrice")
	defer span.End()

	checkIn, err := utils.ParseDate(q.CheckIn)
	if err != nil {
		return nil, validationError("checkIn: %v", err)
	}
	checkOut, err := utils.ParseDate(q.CheckOut)
	if err != nil {
		return nil, validationError("checkOut: %v", err)
	}
	if checkOut.Before(checkIn) {
		return nil, validationError("checkOut must not be before checkIn")
	}
	if err := utils.CheckStayLength(checkIn, checkOut); err != nil {
		return nil, validationError("%v", err)
	}
	pitchType := models.PitchType(q.PitchType)
	if !pitchType.Valid() {
		return nil, validationError("pitchType must be one of: piazzola, tenda")
	}
	if q.Adults < 0 || q.Children < 0 || q.Dogs < 0 || q.Cars < 0 {
		return nil, validationError("guest, child, dog and car counts must not be negative")
	}
	if q.AdultRate < 0 || q.ChildRate < 0 || q.DogRate < 0 || q.CarRate < 0 {
		return nil, validationError("extra rates must not be negative")
	}

	days := BillableDays(checkIn, checkOut)
	lastDay := checkIn.AddDate(0, 0, days-1)
	span.SetAttributes(
		attribute.String("pitch.type", string(pitchType)),
		attribute.Int("stay.days", days),
	)

	seasons, err := s.seasons.ListActiveBetween(ctx, checkIn, lastDay)
	if err != nil {
		err = storageError("failed to load pricing seasons", err)
		tracing.RecordError(span, err)
		return nil, err
	}

	calc := CalculateStayPrice(checkIn, checkOut, pitchType, q.Occupants, q.ExtraRates, seasons)
	metrics.PriceQuotes.WithLabelValues(string(pitchType)).Inc()
	return &calc, nil
}
