package activities

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cpe-compass/portal-backend/internal/auth"
	"cpe-compass/portal-backend/internal/certifications"
	"cpe-compass/portal-backend/internal/storage"
)

// Handler handles HTTP requests for activity operations
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new activities handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers activity routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	acts := router.Group("/activities")
	{
		acts.POST("", h.create)
		acts.GET("", h.list)
		acts.GET("/:id", h.get)
		acts.DELETE("/:id", h.delete)
		acts.GET("/:id/proof", h.downloadProof)
	}
}

// create handles POST /api/v1/activities as a multipart form; the proof
// document, if any, is sent as the "proof_file" part.
func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var proof *ProofUpload
	if header, err := c.FormFile("proof_file"); err == nil {
		if !storage.Allowed(header.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file type not allowed; use pdf, png or jpg"})
			return
		}
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
			return
		}
		defer file.Close()
		proof = &ProofUpload{Filename: header.Filename, Content: file}
	}

	activity, err := h.service.Create(c.Request.Context(), auth.UserID(c), &req, proof)
	if err != nil {
		if err == certifications.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// list handles GET /api/v1/activities?certification_id=&page=&per_page=
func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{}

	if raw := c.Query("certification_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certification_id"})
			return
		}
		filter.CertificationID = &id
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	filter.Limit = perPage
	filter.Offset = (page - 1) * filter.Limit

	list, total, err := h.service.List(c.Request.Context(), auth.UserID(c), filter)
	if err != nil {
		h.logger.Error("Failed to list activities", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": list,
		"total":      total,
		"page":       page,
	})
}

// get handles GET /api/v1/activities/:id
func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity ID"})
		return
	}

	activity, err := h.service.Get(c.Request.Context(), id, auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, activity)
}

// delete handles DELETE /api/v1/activities/:id
func (h *Handler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.UserID(c)); err != nil {
		if err == ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to delete activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "activity deleted"})
}

// downloadProof handles GET /api/v1/activities/:id/proof
func (h *Handler) downloadProof(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity ID"})
		return
	}

	path, originalName, err := h.service.Proof(c.Request.Context(), id, auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.FileAttachment(path, originalName)
}
