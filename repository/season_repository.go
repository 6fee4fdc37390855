package repository

import (
	"context"
	"time"

	"campsite-backend/models"

	"gorm.io/gorm"
)

type seasonRepository struct {
	db *gorm.DB
}

func NewSeasonRepository(db *gorm.DB) SeasonRepository {
	return &seasonRepository{db: db}
}

func (r *seasonRepository) List(ctx context.Context, activeOnly bool) ([]models.PricingSeason, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var seasons []models.PricingSeason
	if err := q.Order("start_date ASC, priority DESC").Find(&seasons).Error; err != nil {
		return nil, translate(err, "list pricing seasons")
	}
	return seasons, nil
}

func (r *seasonRepository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]models.PricingSeason, error) {
	var seasons []models.PricingSeason
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, to, from).
		Order("priority DESC, created_at DESC").
		Find(&seasons).Error
	if err != nil {
		return nil, translate(err, "list active pricing seasons")
	}
	return seasons, nil
}

func (r *seasonRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.PricingSeason{}).Where("is_active = ?", true).Count(&n).Error; err != nil {
		return 0, translate(err, "count pricing seasons")
	}
	return n, nil
}

func (r *seasonRepository) GetByID(ctx context.Context, id uint) (*models.PricingSeason, error) {
	var season models.PricingSeason
	if err := r.db.WithContext(ctx).First(&season, id).Error; err != nil {
		return nil, translate(err, "get pricing season")
	}
	return &season, nil
}

func (r *seasonRepository) Create(ctx context.Context, season *models.PricingSeason) error {
	return translate(r.db.WithContext(ctx).Create(season).Error, "create pricing season")
}

func (r *seasonRepository) Save(ctx context.Context, season *models.PricingSeason) error {
	return translate(r.db.WithContext(ctx).Save(season).Error, "save pricing season")
}

func (r *seasonRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.PricingSeason{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete pricing season")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
