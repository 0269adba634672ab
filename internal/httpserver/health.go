package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "customer-support-agent/pkg/errors"
	"customer-support-agent/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Customer support agent is up"
	HealthVersion = "1.0.0"
	ServiceName   = "customer-support-agent"
)

var errDraining = pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "Server is shutting down")

func healthBody(status string) gin.H {
	return gin.H{
		"status":  status,
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, healthBody("healthy"))
}

// readyCheck reports ready until shutdown starts, then 503 so load
// balancers stop sending traffic while requests drain.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "Shutting down"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.draining.Load() {
		c.AbortWithStatusJSON(errDraining.StatusCode, response.Resp{
			ErrorCode: errDraining.StatusCode,
			Message:   errDraining.Message,
		})
		return
	}
	response.OK(c, healthBody("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, healthBody("alive"))
}
