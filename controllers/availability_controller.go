package controllers

import (
	"net/http"
	"strconv"

	"campsite-backend/services"
	"campsite-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc services.AvailabilityService
}

func NewAvailabilityController(svc services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc}
}

// GET /api/availability?check_in=&check_out=&pitch_type=
func (ac *AvailabilityController) GetAvailability(c *gin.Context) {
	res, err := ac.AvailabilitySvc.ResolveAvailability(c.Request.Context(),
		c.Query("check_in"), c.Query("check_out"), c.Query("pitch_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/occupancy?pitch_id=&check_in=&check_out=
func (ac *AvailabilityController) GetOccupancy(c *gin.Context) {
	pitchID, err := strconv.ParseUint(c.Query("pitch_id"), 10, 64)
	if err != nil || pitchID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "pitch_id must be a positive integer")
		return
	}

	res, err := ac.AvailabilitySvc.CheckOccupancy(c.Request.Context(), uint(pitchID), c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
