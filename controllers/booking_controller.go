package controllers

import (
	"context"
	"net/http"
	"strconv"

	"campsite-backend/models"
	"campsite-backend/services"
	"campsite-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	PitchID     uint   `json:"pitch_id" binding:"required"`
	CustomerID  *uint  `json:"customer_id"`
	CheckIn     string `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut    string `json:"check_out" binding:"required,datetime=2006-01-02"`
	GuestsCount int    `json:"guests_count" binding:"gte=0"`
	Adults      int    `json:"adults" binding:"gte=0"`
	Children    int    `json:"children" binding:"gte=0"`
	Dogs        int    `json:"dogs" binding:"gte=0"`
	Cars        int    `json:"cars" binding:"gte=0"`

	// per-day extras used to price the stay when total_price is omitted
	AdultRate float64 `json:"adult_rate" binding:"gte=0"`
	ChildRate float64 `json:"child_rate" binding:"gte=0"`
	DogRate   float64 `json:"dog_rate" binding:"gte=0"`
	CarRate   float64 `json:"car_rate" binding:"gte=0"`

	TotalPrice *float64 `json:"total_price" binding:"omitempty,gte=0"`
	Notes      string   `json:"notes"`
}

type RescheduleBookingRequest struct {
	CheckIn  string `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" binding:"required,datetime=2006-01-02"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc services.BookingService
}

func NewBookingController(svc services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// GET /api/bookings?from=&to=&status=&pitch_id=
func (bc *BookingController) GetBookings(c *gin.Context) {
	q := services.BookingListQuery{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Status: c.Query("status"),
	}
	if raw := c.Query("pitch_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			utils.JSONError(c, http.StatusBadRequest, "pitch_id must be a positive integer")
			return
		}
		pitchID := uint(id)
		q.PitchID = &pitchID
	}

	bookings, err := bc.BookingSvc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	booking, err := bc.BookingSvc.Create(c.Request.Context(), services.BookingInput{
		PitchID:     req.PitchID,
		CustomerID:  req.CustomerID,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		GuestsCount: req.GuestsCount,
		Occupants: services.Occupants{
			Adults:   req.Adults,
			Children: req.Children,
			Dogs:     req.Dogs,
			Cars:     req.Cars,
		},
		ExtraRates: services.ExtraRates{
			AdultRate: req.AdultRate,
			ChildRate: req.ChildRate,
			DogRate:   req.DogRate,
			CarRate:   req.CarRate,
		},
		TotalPrice: req.TotalPrice,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// PUT /api/bookings/:id/dates
func (bc *BookingController) RescheduleBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	booking, err := bc.BookingSvc.Reschedule(c.Request.Context(), id, req.CheckIn, req.CheckOut)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CheckInBooking(c *gin.Context) {
	bc.transition(c, bc.BookingSvc.CheckIn)
}

func (bc *BookingController) CheckoutBooking(c *gin.Context) {
	bc.transition(c, bc.BookingSvc.CheckOut)
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	bc.transition(c, bc.BookingSvc.Cancel)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := bc.BookingSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted"})
}

func (bc *BookingController) transition(c *gin.Context, apply func(ctx context.Context, id uint) (*models.Booking, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := apply(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
