package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cpe-compass/portal-backend/internal/auth"
)

// Handler handles the websocket notification endpoint
type Handler struct {
	hub    *Hub
	logger *zap.Logger
}

// NewHandler creates a new notifications handler
func NewHandler(hub *Hub, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// RegisterRoutes registers the websocket route
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/notifications", h.connect)
}

// connect handles GET /api/v1/ws/notifications
func (h *Handler) connect(c *gin.Context) {
	if err := h.hub.HandleConnection(c.Writer, c.Request, auth.UserID(c)); err != nil {
		h.logger.Error("Failed to open websocket", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
