package certifications

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cpe-compass/portal-backend/internal/auth"
)

// Handler handles HTTP requests for certification operations
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new certifications handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers certification routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	certs := router.Group("/certifications")
	{
		certs.POST("", h.create)
		certs.GET("", h.list)
		certs.GET("/:id", h.get)
		certs.PUT("/:id", h.update)
		certs.DELETE("/:id", h.delete)
		certs.GET("/reminders", h.reminders)
	}
}

// create handles POST /api/v1/certifications
func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cert, err := h.service.Create(c.Request.Context(), auth.UserID(c), &req)
	if err != nil {
		h.logger.Error("Failed to create certification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cert)
}

// list handles GET /api/v1/certifications
func (h *Handler) list(c *gin.Context) {
	summaries, err := h.service.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.logger.Error("Failed to list certifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"certifications": summaries})
}

// get handles GET /api/v1/certifications/:id
func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certification ID"})
		return
	}

	summary, err := h.service.Get(c.Request.Context(), id, auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// update handles PUT /api/v1/certifications/:id
func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certification ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cert, err := h.service.Update(c.Request.Context(), id, auth.UserID(c), &req)
	if err != nil {
		if err == ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to update certification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cert)
}

// delete handles DELETE /api/v1/certifications/:id
func (h *Handler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certification ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.UserID(c)); err != nil {
		if err == ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to delete certification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "certification deleted"})
}

// reminders handles GET /api/v1/certifications/reminders
func (h *Handler) reminders(c *gin.Context) {
	reminders, err := h.service.Reminders(c.Request.Context(), auth.UserID(c), time.Now())
	if err != nil {
		h.logger.Error("Failed to compute reminders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}
