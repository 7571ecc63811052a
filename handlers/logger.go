package handlers

import (
	"net/http"

	"ehealth/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or falls back to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// fail logs server-side failures and writes err as {"error": reason}.
func fail(c *gin.Context, op string, err error) {
	if utils.StatusCode(err) >= http.StatusInternalServerError {
		getLogger(c).Error(op, zap.String("path", c.FullPath()), zap.Error(err))
	}
	utils.RespondError(c, err)
}

// bindJSON decodes the body into dst and answers 400 when it is malformed.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}
