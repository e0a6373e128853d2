package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rosca-bridge/internal/core/ports"
	"rosca-bridge/pkg/response"
)

// HealthCheck handles GET /health. The snapshot is always returned; any
// unhealthy component turns the status code into 503.
func HealthCheck(svc ports.HealthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := svc.HealthCheck(c.Request.Context())

		status := http.StatusOK
		if !snap.Healthy() {
			status = http.StatusServiceUnavailable
		}
		response.WithStatus(c, status, snap)
	}
}
