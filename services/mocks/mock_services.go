package mocks

import (
	"context"

	"campsite-backend/models"
	"campsite-backend/services"

	"github.com/stretchr/testify/mock"
)

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) ResolveAvailability(ctx context.Context, checkIn, checkOut, pitchType string) (*services.AvailabilityResult, error) {
	args := m.Called(ctx, checkIn, checkOut, pitchType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AvailabilityResult), args.Error(1)
}

func (m *MockAvailabilityService) CheckOccupancy(ctx context.Context, pitchID uint, checkIn, checkOut string) (*services.OccupancyResult, error) {
	args := m.Called(ctx, pitchID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.OccupancyResult), args.Error(1)
}

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) CalculatePrice(ctx context.Context, q services.PriceQuery) (*services.PriceCalculation, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PriceCalculation), args.Error(1)
}

type MockPitchService struct {
	mock.Mock
}

func (m *MockPitchService) List(ctx context.Context, q services.PitchListQuery) ([]models.Pitch, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pitch), args.Error(1)
}

func (m *MockPitchService) Get(ctx context.Context, id uint) (*models.Pitch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pitch), args.Error(1)
}

func (m *MockPitchService) Create(ctx context.Context, in services.PitchInput) (*models.Pitch, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pitch), args.Error(1)
}

func (m *MockPitchService) Update(ctx context.Context, id uint, in services.PitchUpdate) (*models.Pitch, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pitch), args.Error(1)
}

func (m *MockPitchService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPitchService) Split(ctx context.Context, id uint) ([]models.Pitch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pitch), args.Error(1)
}

func (m *MockPitchService) Merge(ctx context.Context, pitchAID, pitchBID uint) (*models.Pitch, error) {
	args := m.Called(ctx, pitchAID, pitchBID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pitch), args.Error(1)
}

func (m *MockPitchService) ListSectors(ctx context.Context) ([]models.Sector, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sector), args.Error(1)
}

func (m *MockPitchService) CreateSector(ctx context.Context, in services.SectorInput) (*models.Sector, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sector), args.Error(1)
}

func (m *MockPitchService) DeleteSector(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) List(ctx context.Context, q services.BookingListQuery) ([]models.Booking, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id))
}

func (m *MockBookingService) Create(ctx context.Context, in services.BookingInput) (*models.Booking, error) {
	return m.booking(m.Called(ctx, in))
}

func (m *MockBookingService) Reschedule(ctx context.Context, id uint, checkIn, checkOut string) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id, checkIn, checkOut))
}

func (m *MockBookingService) CheckIn(ctx context.Context, id uint) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id))
}

func (m *MockBookingService) CheckOut(ctx context.Context, id uint) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id))
}

func (m *MockBookingService) Cancel(ctx context.Context, id uint) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id))
}

func (m *MockBookingService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingService) booking(args mock.Arguments) (*models.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

type MockSeasonService struct {
	mock.Mock
}

func (m *MockSeasonService) List(ctx context.Context, activeOnly bool) ([]models.PricingSeason, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PricingSeason), args.Error(1)
}

func (m *MockSeasonService) Get(ctx context.Context, id uint) (*models.PricingSeason, error) {
	return m.season(m.Called(ctx, id))
}

func (m *MockSeasonService) Create(ctx context.Context, in services.SeasonInput) (*models.PricingSeason, error) {
	return m.season(m.Called(ctx, in))
}

func (m *MockSeasonService) Update(ctx context.Context, id uint, in services.SeasonInput) (*models.PricingSeason, error) {
	return m.season(m.Called(ctx, id, in))
}

func (m *MockSeasonService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSeasonService) season(args mock.Arguments) (*models.PricingSeason, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PricingSeason), args.Error(1)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) List(ctx context.Context, query string) ([]models.Customer, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return m.customer(m.Called(ctx, id))
}

func (m *MockCustomerService) Create(ctx context.Context, in services.CustomerInput) (*models.Customer, error) {
	return m.customer(m.Called(ctx, in))
}

func (m *MockCustomerService) Update(ctx context.Context, id uint, in services.CustomerInput) (*models.Customer, error) {
	return m.customer(m.Called(ctx, id, in))
}

func (m *MockCustomerService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerService) customer(args mock.Arguments) (*models.Customer, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context, date string) (*services.DashboardStats, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DashboardStats), args.Error(1)
}
