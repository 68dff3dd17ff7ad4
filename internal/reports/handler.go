package reports

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cpe-compass/portal-backend/internal/auth"
	"cpe-compass/portal-backend/internal/certifications"
)

// Handler handles HTTP requests for reports and the dashboard
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new reports handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers report routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/certifications/:id/export", h.export)
	router.GET("/dashboard/summary", h.dashboard)
}

// export handles GET /api/v1/certifications/:id/export?format=csv|pdf|xlsx
func (h *Handler) export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certification ID"})
		return
	}

	format, err := ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	filename, err := h.service.Export(c.Request.Context(), id, auth.UserID(c), format, &buf)
	if err != nil {
		if err == certifications.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to export report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// dashboard handles GET /api/v1/dashboard/summary
func (h *Handler) dashboard(c *gin.Context) {
	summary, err := h.service.Dashboard(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.logger.Error("Failed to build dashboard summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
