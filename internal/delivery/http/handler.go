package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/furnifind/backend/internal/domain"
	"github.com/furnifind/backend/internal/usecase"
	"github.com/furnifind/backend/pkg/logger"
)

// ServiceVersion is reported by the health endpoint
const ServiceVersion = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	sessions       *usecase.SessionService
	catalog        *usecase.CatalogService
	contact        *usecase.ContactService
	normalizer     *usecase.CriteriaNormalizer
	maxUploadBytes int64
	featuredCount  int
}

// HandlerConfig holds request-level limits
type HandlerConfig struct {
	MaxUploadBytes     int64
	FeaturedCount      int
	EnableDebugLogging bool
}

// NewHandler creates a new HTTP handler
func NewHandler(
	sessions *usecase.SessionService,
	catalog *usecase.CatalogService,
	contact *usecase.ContactService,
	config HandlerConfig,
) *Handler {
	maxUpload := config.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = usecase.MaxUploadBytes
	}

	return &Handler{
		sessions:       sessions,
		catalog:        catalog,
		contact:        contact,
		normalizer:     usecase.NewCriteriaNormalizer(domain.Stores, config.EnableDebugLogging),
		maxUploadBytes: maxUpload,
		featuredCount:  config.FeaturedCount,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "furnifind-backend",
		"version": ServiceVersion,
	})
}

// SubmitContact handles the simulated contact form
func (h *Handler) SubmitContact(c *gin.Context) {
	var msg usecase.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid contact form",
			"details": err.Error(),
		})
		return
	}

	receipt, err := h.contact.Submit(c.Request.Context(), msg)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// respondError maps domain errors onto HTTP responses
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var processingErr *domain.ProcessingError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, domain.ErrBrandNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	case errors.As(err, &processingErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.RetryPrompt})
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.Error(c.Request.Context()).Err(err).Msg("session store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		logger.Error(c.Request.Context()).Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
