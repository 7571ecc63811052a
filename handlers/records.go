package handlers

import (
	"net/http"

	"ehealth/middleware"
	"ehealth/models"
	"ehealth/services/records"

	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	Service records.RecordService
}

func NewRecordHandler(s records.RecordService) *RecordHandler {
	return &RecordHandler{Service: s}
}

func (h *RecordHandler) ListHandler(c *gin.Context) {
	recs, err := h.Service.ListForPatient(c.Request.Context(), middleware.CurrentCaller(c), c.Param("patientId"))
	if err != nil {
		fail(c, "Failed to fetch medical records", err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *RecordHandler) CreateHandler(c *gin.Context) {
	var req models.CreateRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	rec, err := h.Service.Create(c.Request.Context(), middleware.CurrentCaller(c), req)
	if err != nil {
		fail(c, "Failed to create medical record", err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *RecordHandler) UpdateHandler(c *gin.Context) {
	var req models.UpdateRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.Service.Update(c.Request.Context(), middleware.CurrentCaller(c), c.Param("recordId"), req); err != nil {
		fail(c, "Failed to update medical record", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medical record updated successfully"})
}
