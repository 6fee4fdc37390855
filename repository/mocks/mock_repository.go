package mocks

import (
	"context"
	"time"

	"campsite-backend/models"
	"campsite-backend/repository"
	"campsite-backend/utils"

	"github.com/stretchr/testify/mock"
)

// MockPitchRepository is a mock implementation of repository.PitchRepository.
// Transaction runs the callback against the mock itself, after consulting
// the "Transaction" expectation for an error to return instead.
type MockPitchRepository struct {
	mock.Mock
}

func (m *MockPitchRepository) List(ctx context.Context, filter repository.PitchFilter) ([]models.Pitch, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pitch), args.Error(1)
}

func (m *MockPitchRepository) GetByID(ctx context.Context, id uint) (*models.Pitch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pitch), args.Error(1)
}

func (m *MockPitchRepository) FindByNumber(ctx context.Context, number string, suffixes ...string) ([]models.Pitch, error) {
	args := m.Called(ctx, number, suffixes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pitch), args.Error(1)
}

func (m *MockPitchRepository) Create(ctx context.Context, pitch *models.Pitch) error {
	args := m.Called(ctx, pitch)
	return args.Error(0)
}

func (m *MockPitchRepository) Update(ctx context.Context, pitch *models.Pitch) error {
	args := m.Called(ctx, pitch)
	return args.Error(0)
}

func (m *MockPitchRepository) UpdateSuffix(ctx context.Context, id uint, suffix string) error {
	args := m.Called(ctx, id, suffix)
	return args.Error(0)
}

func (m *MockPitchRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPitchRepository) CountActiveBookings(ctx context.Context, pitchID uint, since time.Time) (int64, error) {
	args := m.Called(ctx, pitchID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPitchRepository) CountBookings(ctx context.Context, pitchID uint) (int64, error) {
	args := m.Called(ctx, pitchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPitchRepository) MoveBookings(ctx context.Context, fromPitchID, toPitchID uint) error {
	args := m.Called(ctx, fromPitchID, toPitchID)
	return args.Error(0)
}

func (m *MockPitchRepository) ListSectors(ctx context.Context) ([]models.Sector, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sector), args.Error(1)
}

func (m *MockPitchRepository) CreateSector(ctx context.Context, sector *models.Sector) error {
	args := m.Called(ctx, sector)
	return args.Error(0)
}

func (m *MockPitchRepository) DeleteSector(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPitchRepository) Transaction(ctx context.Context, fn func(tx repository.PitchRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

// MockBookingRepository is a mock implementation of repository.BookingRepository.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, r utils.DateRange, pitchID *uint, excludeID *uint) ([]models.Booking, error) {
	args := m.Called(ctx, r, pitchID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountMovements(ctx context.Context, day time.Time) (int64, int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Save(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSeasonRepository is a mock implementation of repository.SeasonRepository.
type MockSeasonRepository struct {
	mock.Mock
}

func (m *MockSeasonRepository) List(ctx context.Context, activeOnly bool) ([]models.PricingSeason, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PricingSeason), args.Error(1)
}

func (m *MockSeasonRepository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]models.PricingSeason, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PricingSeason), args.Error(1)
}

func (m *MockSeasonRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSeasonRepository) GetByID(ctx context.Context, id uint) (*models.PricingSeason, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PricingSeason), args.Error(1)
}

func (m *MockSeasonRepository) Create(ctx context.Context, season *models.PricingSeason) error {
	args := m.Called(ctx, season)
	return args.Error(0)
}

func (m *MockSeasonRepository) Save(ctx context.Context, season *models.PricingSeason) error {
	args := m.Called(ctx, season)
	return args.Error(0)
}

func (m *MockSeasonRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of repository.CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) List(ctx context.Context, query string) ([]models.Customer, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uint, withBookings bool) (*models.Customer, error) {
	args := m.Called(ctx, id, withBookings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountBookings(ctx context.Context, customerID uint) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}
