package controllers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"campsite-backend/services"
	"campsite-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type SeasonRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	StartDate    string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" binding:"required,datetime=2006-01-02"`
	PiazzolaRate float64 `json:"piazzola_rate" binding:"gte=0"`
	TendaRate    float64 `json:"tenda_rate" binding:"gte=0"`
	AdultRate    float64 `json:"adult_rate" binding:"gte=0"`
	ChildRate    float64 `json:"child_rate" binding:"gte=0"`
	DogRate      float64 `json:"dog_rate" binding:"gte=0"`
	CarRate      float64 `json:"car_rate" binding:"gte=0"`
	Priority     int     `json:"priority"`
	IsActive     *bool   `json:"is_active"`
	Color        string  `json:"color" binding:"omitempty,hexcolor"`
}

func (r SeasonRequest) input() services.SeasonInput {
	return services.SeasonInput{
		Name:         r.Name,
		Description:  r.Description,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		PiazzolaRate: r.PiazzolaRate,
		TendaRate:    r.TendaRate,
		AdultRate:    r.AdultRate,
		ChildRate:    r.ChildRate,
		DogRate:      r.DogRate,
		CarRate:      r.CarRate,
		Priority:     r.Priority,
		IsActive:     r.IsActive,
		Color:        r.Color,
	}
}

// ---------------------------
// Controller
// ---------------------------

type PricingController struct {
	PricingSvc services.PricingService
	SeasonSvc  services.SeasonService
}

func NewPricingController(pricing services.PricingService, seasons services.SeasonService) *PricingController {
	return &PricingController{PricingSvc: pricing, SeasonSvc: seasons}
}

// GET /api/pricing/calculate
func (pc *PricingController) CalculatePrice(c *gin.Context) {
	q := services.PriceQuery{
		CheckIn:   c.Query("checkIn"),
		CheckOut:  c.Query("checkOut"),
		PitchType: c.Query("pitchType"),
	}

	var err error
	ints := []struct {
		key string
		dst *int
	}{
		{"guests", &q.Adults},
		{"children", &q.Children},
		{"dogs", &q.Dogs},
		{"cars", &q.Cars},
	}
	for _, p := range ints {
		if *p.dst, err = queryInt(c, p.key); err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"guestPrice", &q.AdultRate},
		{"childPrice", &q.ChildRate},
		{"dogPrice", &q.DogRate},
		{"carPrice", &q.CarRate},
	}
	for _, p := range floats {
		if *p.dst, err = queryFloat(c, p.key); err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	calc, err := pc.PricingSvc.CalculatePrice(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// GET /api/pricing/seasons?active=true
func (pc *PricingController) GetSeasons(c *gin.Context) {
	activeOnly := false
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "active must be true or false")
			return
		}
		activeOnly = v
	}

	seasons, err := pc.SeasonSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, seasons)
}

func (pc *PricingController) GetSeason(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	season, err := pc.SeasonSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, season)
}

func (pc *PricingController) CreateSeason(c *gin.Context) {
	var req SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	season, err := pc.SeasonSvc.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, season)
}

func (pc *PricingController) UpdateSeason(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	season, err := pc.SeasonSvc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, season)
}

func (pc *PricingController) DeleteSeason(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := pc.SeasonSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Pricing season deleted"})
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func queryFloat(c *gin.Context, key string) (float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return f, nil
}
