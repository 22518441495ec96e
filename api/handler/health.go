package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faqforge/faqforge/models"
)

// Health returns a handler for GET /api/v1/health.
//
// Degrades status when the document store does not answer a ping.
func Health(st Store, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		storeState := "connected"
		if err := st.Ping(c.Request.Context()); err != nil {
			status = "degraded"
			storeState = "unreachable"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Store:   storeState,
			Version: "0.1.0",
		})
	}
}
