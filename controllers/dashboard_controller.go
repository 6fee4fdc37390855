package controllers

import (
	"net/http"

	"campsite-backend/services"
	"campsite-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardSvc services.DashboardService
}

func NewDashboardController(svc services.DashboardService) *DashboardController {
	return &DashboardController{DashboardSvc: svc}
}

// GET /api/dashboard/stats?date=
func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.DashboardSvc.Stats(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
