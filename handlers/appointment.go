package handlers

import (
	"net/http"

	"ehealth/middleware"
	"ehealth/models"
	"ehealth/services/appointment"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	Service appointment.AppointmentService
}

func NewAppointmentHandler(s appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: s}
}

// BookHandler handles POST /api/appointments.
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	var req models.BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Service.Book(c.Request.Context(), middleware.CurrentCaller(c), req)
	if err != nil {
		fail(c, "Failed to book appointment", err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	appts, err := h.Service.ListForUser(c.Request.Context(), middleware.CurrentCaller(c), c.Param("userId"))
	if err != nil {
		fail(c, "Failed to fetch appointments", err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Service.UpdateStatus(c.Request.Context(), middleware.CurrentCaller(c), c.Param("id"), req.Status)
	if err != nil {
		fail(c, "Failed to update appointment status", err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) UpdateNotesHandler(c *gin.Context) {
	var req models.UpdateNotesRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Service.UpdateNotes(c.Request.Context(), middleware.CurrentCaller(c), c.Param("id"), req)
	if err != nil {
		fail(c, "Failed to update appointment notes", err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
