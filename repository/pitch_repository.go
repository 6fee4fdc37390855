package repository

import (
	"context"
	"time"

	"campsite-backend/models"

	"gorm.io/gorm"
)

type pitchRepository struct {
	db *gorm.DB
}

func NewPitchRepository(db *gorm.DB) PitchRepository {
	return &pitchRepository{db: db}
}

func (r *pitchRepository) List(ctx context.Context, filter PitchFilter) ([]models.Pitch, error) {
	q := r.db.WithContext(ctx).Preload("Sector")
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.SectorID != nil {
		q = q.Where("sector_id = ?", *filter.SectorID)
	}

	var pitches []models.Pitch
	if err := q.Order("number ASC, suffix ASC").Find(&pitches).Error; err != nil {
		return nil, translate(err, "list pitches")
	}
	return pitches, nil
}

func (r *pitchRepository) GetByID(ctx context.Context, id uint) (*models.Pitch, error) {
	var pitch models.Pitch
	if err := r.db.WithContext(ctx).Preload("Sector").First(&pitch, id).Error; err != nil {
		return nil, translate(err, "get pitch")
	}
	return &pitch, nil
}

func (r *pitchRepository) FindByNumber(ctx context.Context, number string, suffixes ...string) ([]models.Pitch, error) {
	q := r.db.WithContext(ctx).Where("number = ?", number)
	if len(suffixes) > 0 {
		q = q.Where("suffix IN ?", suffixes)
	}

	var pitches []models.Pitch
	if err := q.Order("suffix ASC").Find(&pitches).Error; err != nil {
		return nil, translate(err, "find pitches by number")
	}
	return pitches, nil
}

func (r *pitchRepository) Create(ctx context.Context, pitch *models.Pitch) error {
	return translate(r.db.WithContext(ctx).Create(pitch).Error, "create pitch")
}

func (r *pitchRepository) Update(ctx context.Context, pitch *models.Pitch) error {
	res := r.db.WithContext(ctx).Model(&models.Pitch{}).Where("id = ?", pitch.ID).Updates(map[string]interface{}{
		"number":     pitch.Number,
		"suffix":     pitch.Suffix,
		"type":       pitch.Type,
		"status":     pitch.Status,
		"attributes": pitch.Attributes,
		"sector_id":  pitch.SectorID,
	})
	return translate(res.Error, "update pitch")
}

func (r *pitchRepository) UpdateSuffix(ctx context.Context, id uint, suffix string) error {
	res := r.db.WithContext(ctx).Model(&models.Pitch{}).Where("id = ?", id).Update("suffix", suffix)
	if res.Error != nil {
		return translate(res.Error, "update pitch suffix")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pitchRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Pitch{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete pitch")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pitchRepository) CountActiveBookings(ctx context.Context, pitchID uint, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("pitch_id = ? AND status IN ? AND check_out > ?", pitchID,
			[]models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}, since).
		Count(&n).Error
	if err != nil {
		return 0, translate(err, "count active bookings")
	}
	return n, nil
}

func (r *pitchRepository) CountBookings(ctx context.Context, pitchID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("pitch_id = ?", pitchID).Count(&n).Error; err != nil {
		return 0, translate(err, "count bookings")
	}
	return n, nil
}

func (r *pitchRepository) MoveBookings(ctx context.Context, fromPitchID, toPitchID uint) error {
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("pitch_id = ?", fromPitchID).
		Update("pitch_id", toPitchID).Error
	return translate(err, "move bookings")
}

func (r *pitchRepository) ListSectors(ctx context.Context) ([]models.Sector, error) {
	var sectors []models.Sector
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sectors).Error; err != nil {
		return nil, translate(err, "list sectors")
	}
	return sectors, nil
}

func (r *pitchRepository) CreateSector(ctx context.Context, sector *models.Sector) error {
	return translate(r.db.WithContext(ctx).Create(sector).Error, "create sector")
}

func (r *pitchRepository) DeleteSector(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Sector{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete sector")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pitchRepository) Transaction(ctx context.Context, fn func(tx PitchRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pitchRepository{db: tx})
	})
}
