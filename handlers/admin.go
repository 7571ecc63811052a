package handlers

import (
	"net/http"

	"ehealth/services/admin"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates the admin dashboard endpoints.
type AdminHandler struct {
	Service admin.AdminService
}

func NewAdminHandler(s admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: s}
}

func (h *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		fail(c, "Failed to fetch admin stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ReportHandler handles GET /api/admin/reports/:type?startDate&endDate.
func (h *AdminHandler) ReportHandler(c *gin.Context) {
	report, err := h.Service.Report(c.Request.Context(), c.Param("type"), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		fail(c, "Failed to generate report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}
