package handlers

import (
	"net/http"

	"ehealth/middleware"
	"ehealth/services/storage"
	"ehealth/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves medical report uploads.
type ReportHandler struct {
	Service storage.ReportService
}

func NewReportHandler(s storage.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// UploadHandler handles the multipart POST /api/reports/upload with the file under "report".
func (h *ReportHandler) UploadHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("report")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read uploaded file", err.Error())
		return
	}
	defer file.Close()

	report, err := h.Service.Upload(c.Request.Context(), middleware.CurrentCaller(c), storage.UploadReportInput{
		PatientID:   c.PostForm("patientId"),
		Description: c.PostForm("description"),
		FileName:    fileHeader.Filename,
		FileType:    fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		fail(c, "Failed to upload report", err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) ListHandler(c *gin.Context) {
	reports, err := h.Service.ListForPatient(c.Request.Context(), middleware.CurrentCaller(c), c.Param("patientId"))
	if err != nil {
		fail(c, "Failed to fetch reports", err)
		return
	}
	c.JSON(http.StatusOK, reports)
}
