package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/pagegrab/models"
)

// EngineLister reports which engine variants hold a live browser.
type EngineLister interface {
	LiveEngines() []string
}

// Health returns a handler for GET /api/v1/health.
func Health(pool EngineLister, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status: "healthy",
			Uptime: time.Since(startTime).Round(time.Second).String(),
			Pool: models.PoolStats{
				LiveEngines: pool.LiveEngines(),
			},
			Version: "0.1.0",
		})
	}
}
