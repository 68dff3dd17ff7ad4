package recommendations

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for activity recommendations
type Handler struct {
	engine *Engine
	logger *zap.Logger
}

// NewHandler creates a new recommendations handler
func NewHandler(engine *Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes registers recommendation routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recommendations", h.list)
}

// list handles GET /api/v1/recommendations?authority=...
func (h *Handler) list(c *gin.Context) {
	authority := c.Query("authority")

	recs := h.engine.Recommendations(c.Request.Context(), authority)

	c.JSON(http.StatusOK, gin.H{
		"authority":       authority,
		"recommendations": recs,
	})
}
