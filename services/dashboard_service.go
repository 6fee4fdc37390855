package services

import (
	"context"

	"campsite-backend/models"
	"campsite-backend/repository"
	"campsite-backend/utils"
)

type DashboardStats struct {
	Date             string  `json:"date"`
	TotalPitches     int     `json:"total_pitches"`
	AvailablePitches int     `json:"available_pitches"`
	OccupiedToday    int     `json:"occupied_today"`
	ArrivalsToday    int64   `json:"arrivals_today"`
	DeparturesToday  int64   `json:"departures_today"`
	OccupancyRate    float64 `json:"occupancy_rate"`
	ActiveSeasons    int64   `json:"active_seasons"`
}

type DashboardService interface {
	Stats(ctx context.Context, date string) (*DashboardStats, error)
}

type dashboardService struct {
	pitches  repository.PitchRepository
	bookings repository.BookingRepository
	seasons  repository.SeasonRepository
}

func NewDashboardService(pitches repository.PitchRepository, bookings repository.BookingRepository, seasons repository.SeasonRepository) DashboardService {
	return &dashboardService{pitches: pitches, bookings: bookings, seasons: seasons}
}

// Stats summarizes the site for one day, today when date is empty.
func (s *dashboardService) Stats(ctx context.Context, date string) (*DashboardStats, error) {
	day := utils.Today()
	if date != "" {
		d, err := utils.ParseDate(date)
		if err != nil {
			return nil, validationError("date: %v", err)
		}
		day = d
	}
	night := utils.DateRange{Start: day, End: day.AddDate(0, 0, 1)}

	pitches, err := s.pitches.List(ctx, repository.PitchFilter{})
	if err != nil {
		return nil, storageError("failed to load pitches", err)
	}
	bookings, err := s.bookings.FindOverlapping(ctx, night, nil, nil)
	if err != nil {
		return nil, storageError("failed to load bookings", err)
	}
	arrivals, departures, err := s.bookings.CountMovements(ctx, day)
	if err != nil {
		return nil, storageError("failed to count arrivals and departures", err)
	}
	activeSeasons, err := s.seasons.CountActive(ctx)
	if err != nil {
		return nil, storageError("failed to count pricing seasons", err)
	}

	occupied := make(map[uint]struct{})
	for _, b := range bookings {
		if blocks(b, night) {
			occupied[b.PitchID] = struct{}{}
		}
	}

	stats := &DashboardStats{
		Date:            utils.FormatDate(day),
		TotalPitches:    len(pitches),
		OccupiedToday:   len(occupied),
		ArrivalsToday:   arrivals,
		DeparturesToday: departures,
		ActiveSeasons:   activeSeasons,
	}
	for _, p := range pitches {
		if _, taken := occupied[p.ID]; p.Status == models.PitchStatusAvailable && !taken {
			stats.AvailablePitches++
		}
	}
	if stats.TotalPitches > 0 {
		stats.OccupancyRate = round2(float64(stats.OccupiedToday) / float64(stats.TotalPitches) * 100)
	}
	return stats, nil
}
