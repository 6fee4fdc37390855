package controllers

import (
	"net/http"
	"strconv"

	"campsite-backend/services"
	"campsite-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreatePitchRequest struct {
	Number     string                 `json:"number" binding:"required"`
	Type       string                 `json:"type" binding:"required,pitchtype"`
	Status     string                 `json:"status" binding:"omitempty,oneof=available maintenance blocked"`
	Attributes map[string]interface{} `json:"attributes"`
	SectorID   *uint                  `json:"sector_id"`
}

type UpdatePitchRequest struct {
	Type        *string                `json:"type" binding:"omitempty,pitchtype"`
	Status      *string                `json:"status" binding:"omitempty,oneof=available maintenance blocked"`
	Attributes  map[string]interface{} `json:"attributes"`
	SectorID    *uint                  `json:"sector_id"`
	ClearSector bool                   `json:"clear_sector"`
}

type SplitPitchRequest struct {
	PitchID uint `json:"pitch_id" binding:"required"`
}

type MergePitchRequest struct {
	PitchAID uint `json:"pitch_a_id" binding:"required"`
	PitchBID uint `json:"pitch_b_id" binding:"required"`
}

type SectorRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

// ---------------------------
// Controller
// ---------------------------

type PitchController struct {
	PitchSvc services.PitchService
}

func NewPitchController(svc services.PitchService) *PitchController {
	return &PitchController{PitchSvc: svc}
}

// GET /api/pitches?type=&status=&sector_id=
func (pc *PitchController) GetPitches(c *gin.Context) {
	q := services.PitchListQuery{Type: c.Query("type"), Status: c.Query("status")}
	if raw := c.Query("sector_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "sector_id must be a positive integer")
			return
		}
		sectorID := uint(id)
		q.SectorID = &sectorID
	}

	pitches, err := pc.PitchSvc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pitches)
}

func (pc *PitchController) GetPitch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pitch, err := pc.PitchSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pitch)
}

func (pc *PitchController) CreatePitch(c *gin.Context) {
	var req CreatePitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pitch, err := pc.PitchSvc.Create(c.Request.Context(), services.PitchInput{
		Number:     req.Number,
		Type:       req.Type,
		Status:     req.Status,
		Attributes: req.Attributes,
		SectorID:   req.SectorID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, pitch)
}

func (pc *PitchController) UpdatePitch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdatePitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pitch, err := pc.PitchSvc.Update(c.Request.Context(), id, services.PitchUpdate{
		Type:        req.Type,
		Status:      req.Status,
		Attributes:  req.Attributes,
		SectorID:    req.SectorID,
		ClearSector: req.ClearSector,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pitch)
}

func (pc *PitchController) DeletePitch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := pc.PitchSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Pitch deleted"})
}

// POST /api/pitches/split
func (pc *PitchController) SplitPitch(c *gin.Context) {
	var req SplitPitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pitches, err := pc.PitchSvc.Split(c.Request.Context(), req.PitchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pitches": pitches})
}

// POST /api/pitches/merge
func (pc *PitchController) MergePitches(c *gin.Context) {
	var req MergePitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pitch, err := pc.PitchSvc.Merge(c.Request.Context(), req.PitchAID, req.PitchBID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pitch": pitch})
}

func (pc *PitchController) GetSectors(c *gin.Context) {
	sectors, err := pc.PitchSvc.ListSectors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, sectors)
}

func (pc *PitchController) CreateSector(c *gin.Context) {
	var req SectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sector, err := pc.PitchSvc.CreateSector(c.Request.Context(), services.SectorInput{Name: req.Name, Color: req.Color})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, sector)
}

func (pc *PitchController) DeleteSector(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := pc.PitchSvc.DeleteSector(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sector deleted"})
}
