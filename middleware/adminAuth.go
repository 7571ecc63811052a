package middleware

import (
	"ehealth/models"

	"github.com/gin-gonic/gin"
)

// AdminOnly rejects authenticated callers that are not admins.
func AdminOnly() gin.HandlerFunc {
	return RequireRole("Admin access required", models.RoleAdmin)
}
