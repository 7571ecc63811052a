package handlers

import (
	"net/http"

	"ehealth/middleware"
	"ehealth/models"
	"ehealth/services/scheduling"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	Scheduling *scheduling.Service
}

func NewAvailabilityHandler(s *scheduling.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Scheduling: s}
}

// GetAvailabilityHandler handles GET /api/availability/:doctorId.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	windows, err := h.Scheduling.Availability(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		fail(c, "Failed to fetch availability", err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

// UpdateAvailabilityHandler replaces the calling doctor's weekly windows.
func (h *AvailabilityHandler) UpdateAvailabilityHandler(c *gin.Context) {
	var req models.UpdateAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	caller := middleware.CurrentCaller(c)
	windows, err := h.Scheduling.UpdateAvailability(c.Request.Context(), caller.ID, req.Availability)
	if err != nil {
		fail(c, "Failed to update availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated successfully", "availability": windows})
}

// GetSlotsHandler handles GET /api/availability/:doctorId/slots?date=YYYY-MM-DD.
func (h *AvailabilityHandler) GetSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	slots, err := h.Scheduling.SlotsForDate(c.Request.Context(), c.Param("doctorId"), date)
	if err != nil {
		fail(c, "Failed to resolve slots", err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
