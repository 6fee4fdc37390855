package services

import (
	"context"
	"strings"

	"campsite-backend/models"
	"campsite-backend/repository"
	"campsite-backend/utils"
)

type SeasonInput struct {
	Name         string
	Description  string
	StartDate    string
	EndDate      string
	PiazzolaRate float64
	TendaRate    float64
	AdultRate    float64
	ChildRate    float64
	DogRate      float64
	CarRate      float64
	Priority     int
	IsActive     *bool
	Color        string
}

type SeasonService interface {
	List(ctx context.Context, activeOnly bool) ([]models.PricingSeason, error)
	Get(ctx context.Context, id uint) (*models.PricingSeason, error)
	Create(ctx context.Context, in SeasonInput) (*models.PricingSeason, error)
	Update(ctx context.Context, id uint, in SeasonInput) (*models.PricingSeason, error)
	Delete(ctx context.Context, id uint) error
}

type seasonService struct {
	seasons repository.SeasonRepository
}

func NewSeasonService(seasons repository.SeasonRepository) SeasonService {
	return &seasonService{seasons: seasons}
}

func (s *seasonService) List(ctx context.Context, activeOnly bool) ([]models.PricingSeason, error) {
	seasons, err := s.seasons.List(ctx, activeOnly)
	if err != nil {
		return nil, storageError("failed to load pricing seasons", err)
	}
	return seasons, nil
}

func (s *seasonService) Get(ctx context.Context, id uint) (*models.PricingSeason, error) {
	season, err := s.seasons.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "pricing season not found")
	}
	return season, nil
}

func (s *seasonService) Create(ctx context.Context, in SeasonInput) (*models.PricingSeason, error) {
	season := &models.PricingSeason{IsActive: true}
	if err := applySeasonInput(season, in); err != nil {
		return nil, err
	}
	if err := s.seasons.Create(ctx, season); err != nil {
		return nil, fromRepository(err, "pricing season not found")
	}
	return season, nil
}

func (s *seasonService) Update(ctx context.Context, id uint, in SeasonInput) (*models.PricingSeason, error) {
	season, err := s.seasons.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "pricing season not found")
	}
	if err := applySeasonInput(season, in); err != nil {
		return nil, err
	}
	if err := s.seasons.Save(ctx, season); err != nil {
		return nil, fromRepository(err, "pricing season not found")
	}
	return season, nil
}

func (s *seasonService) Delete(ctx context.Context, id uint) error {
	if err := s.seasons.Delete(ctx, id); err != nil {
		return fromRepository(err, "pricing season not found")
	}
	return nil
}

func applySeasonInput(season *models.PricingSeason, in SeasonInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return validationError("name is required")
	}
	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return validationError("start_date: %v", err)
	}
	end, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return validationError("end_date: %v", err)
	}
	if end.Before(start) {
		return validationError("end_date must not be before start_date")
	}
	for field, rate := range map[string]float64{
		"piazzola_rate": in.PiazzolaRate,
		"tenda_rate":    in.TendaRate,
		"adult_rate":    in.AdultRate,
		"child_rate":    in.ChildRate,
		"dog_rate":      in.DogRate,
		"car_rate":      in.CarRate,
	} {
		if rate < 0 {
			return validationError("%s must not be negative", field)
		}
	}
	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = models.DefaultSeasonColor
	}
	if !hexColor.MatchString(color) {
		return validationError("color must be a hex value like %s", models.DefaultSeasonColor)
	}

	season.Name = name
	season.Description = strings.TrimSpace(in.Description)
	season.StartDate = start
	season.EndDate = end
	season.PiazzolaRate = round2(in.PiazzolaRate)
	season.TendaRate = round2(in.TendaRate)
	season.AdultRate = round2(in.AdultRate)
	season.ChildRate = round2(in.ChildRate)
	season.DogRate = round2(in.DogRate)
	season.CarRate = round2(in.CarRate)
	season.Priority = in.Priority
	season.Color = color
	if in.IsActive != nil {
		season.IsActive = *in.IsActive
	}
	return nil
}
