package services

import (
	"context"
	"testing"

	"campsite-backend/models"
	"campsite-backend/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	pitches := new(mocks.MockPitchRepository)
	bookings := new(mocks.MockBookingRepository)
	seasons := new(mocks.MockSeasonRepository)
	svc := NewDashboardService(pitches, bookings, seasons)

	pitches.On("List", mock.Anything, mock.Anything).Return([]models.Pitch{
		{ID: 1, Number: "001", Status: models.PitchStatusAvailable},
		{ID: 2, Number: "002", Status: models.PitchStatusAvailable},
		{ID: 3, Number: "003", Status: models.PitchStatusMaintenance},
	}, nil)
	bookings.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]models.Booking{
		booking(1, 1, "2026-08-10", "2026-08-16", models.BookingStatusCheckedIn),
		// leaves on the day: the pitch is free that night
		booking(2, 2, "2026-08-12", "2026-08-15", models.BookingStatusCheckedIn),
	}, nil)
	bookings.On("CountMovements", mock.Anything, date("2026-08-15")).Return(int64(2), int64(1), nil)
	seasons.On("CountActive", mock.Anything).Return(int64(3), nil)

	stats, err := svc.Stats(context.Background(), "2026-08-15")

	require.NoError(t, err)
	assert.Equal(t, "2026-08-15", stats.Date)
	assert.Equal(t, 3, stats.TotalPitches)
	assert.Equal(t, 1, stats.OccupiedToday)
	assert.Equal(t, 1, stats.AvailablePitches)
	assert.Equal(t, int64(2), stats.ArrivalsToday)
	assert.Equal(t, int64(1), stats.DeparturesToday)
	assert.Equal(t, 33.33, stats.OccupancyRate)
	assert.Equal(t, int64(3), stats.ActiveSeasons)
}

func TestDashboardService_Stats_InvalidDate(t *testing.T) {
	svc := NewDashboardService(new(mocks.MockPitchRepository), new(mocks.MockBookingRepository), new(mocks.MockSeasonRepository))

	_, err := svc.Stats(context.Background(), "ieri")

	assert.ErrorIs(t, err, ErrValidation)
}
