package repository

import (
	"context"
	"time"

	"campsite-backend/models"
	"campsite-backend/utils"

	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Preload("Pitch").Preload("Customer")
	if filter.Range != nil {
		q = q.Where("check_in < ? AND check_out > ?", filter.Range.End, filter.Range.Start)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.PitchID != nil {
		q = q.Where("pitch_id = ?", *filter.PitchID)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}

	var bookings []models.Booking
	if err := q.Order("check_in ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, translate(err, "list bookings")
	}
	return bookings, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Pitch").Preload("Customer").First(&booking, id).Error; err != nil {
		return nil, translate(err, "get booking")
	}
	return &booking, nil
}

// FindOverlapping relies on half-open intervals: a stored [ci, co) intersects the
// requested [start, end) exactly when ci < end and co > start.
func (r *bookingRepository) FindOverlapping(ctx context.Context, dr utils.DateRange, pitchID *uint, excludeID *uint) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Preload("Customer").
		Where("status <> ?", models.BookingStatusCancelled).
		Where("check_in < ? AND check_out > ?", dr.End, dr.Start)
	if pitchID != nil {
		q = q.Where("pitch_id = ?", *pitchID)
	}
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var bookings []models.Booking
	if err := q.Order("check_in ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, translate(err, "find overlapping bookings")
	}
	return bookings, nil
}

func (r *bookingRepository) CountMovements(ctx context.Context, day time.Time) (int64, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Booking{}).Where("status <> ?", models.BookingStatusCancelled)
	}

	var arrivals, departures int64
	if err := base().Where("check_in = ?", day).Count(&arrivals).Error; err != nil {
		return 0, 0, translate(err, "count arrivals")
	}
	if err := base().Where("check_out = ?", day).Count(&departures).Error; err != nil {
		return 0, 0, translate(err, "count departures")
	}
	return arrivals, departures, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return translate(r.db.WithContext(ctx).Omit("Pitch", "Customer").Create(booking).Error, "create booking")
}

func (r *bookingRepository) Save(ctx context.Context, booking *models.Booking) error {
	return translate(r.db.WithContext(ctx).Omit("Pitch", "Customer").Save(booking).Error, "save booking")
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete booking")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
