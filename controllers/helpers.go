package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"campsite-backend/services"
	"campsite-backend/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps a service error kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes the structured error body. Causes of server errors are
// logged, never returned.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("❌ [%s] %s %s: %v", c.GetString("request_id"), c.Request.Method, c.Request.URL.Path, err)
	}
	utils.JSONError(c, status, services.Message(err))
}

// parseID reads a positive numeric path parameter, answering 400 otherwise.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// bindError answers 400 for a payload gin could not bind or validate.
func bindError(c *gin.Context, err error) {
	log.Printf("⚠️ [%s] invalid payload on %s: %v", c.GetString("request_id"), c.Request.URL.Path, err)
	utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
}
