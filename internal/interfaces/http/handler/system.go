package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles liveness endpoints
type SystemHandler struct {
	BaseHandler
	appName string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName string) *SystemHandler {
	return &SystemHandler{appName: appName}
}

// HealthResponse is the liveness probe payload
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health reports that the server is up
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Message:   h.appName + " funcionando correctamente",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
