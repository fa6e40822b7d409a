package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/furnifind/backend/internal/domain"
	"github.com/furnifind/backend/internal/usecase"
	"github.com/furnifind/backend/pkg/logger"
)

// multipartOverhead leaves room for form boundaries and headers around the image
const multipartOverhead = 1 << 20

// CategoryRequest is the body of PUT /filters/category
type CategoryRequest struct {
	Category domain.Category `json:"category" binding:"required"`
}

// StoresRequest is the body of PUT /filters/stores
type StoresRequest struct {
	Stores []domain.Store `json:"stores"`
}

// ToggleStoreRequest is the body of POST /filters/stores/toggle
type ToggleStoreRequest struct {
	Store domain.Store `json:"store" binding:"required"`
}

// PriceRangeRequest is the body of PUT /filters/price.
// Immediate skips the quiet period and commits right away.
type PriceRangeRequest struct {
	Min       *float64 `json:"min" binding:"required"`
	Max       *float64 `json:"max" binding:"required"`
	Immediate bool     `json:"immediate"`
}

// CreateSession handles POST /api/v1/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	state, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	state, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /api/v1/sessions/:id/uploads.
// The image is read from the multipart field "image" and analysed in the
// background; progress is available on the events stream.
func (h *Handler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": usecase.ReasonTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ReasonMissingFile})
		return
	}

	upload := &domain.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}

	// Oversized files are rejected by validation without reading them
	if header.Size <= h.maxUploadBytes {
		file, err := header.Open()
		if err != nil {
			logger.Error(c.Request.Context()).Err(err).Msg("failed to open upload")
			c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ReasonMissingFile})
			return
		}
		defer file.Close()

		upload.Data, err = io.ReadAll(file)
		if err != nil {
			logger.Error(c.Request.Context()).Err(err).Msg("failed to read upload")
			c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ReasonMissingFile})
			return
		}
	}

	analysisID, err := h.sessions.StartAnalysis(c.Request.Context(), c.Param("id"), upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"analysisId": analysisID,
		"events":     "/api/v1/sessions/" + c.Param("id") + "/analysis/events",
	})
}

// AnalysisEvents streams analysis progress as server-sent events.
// The stream ends after the terminal event of the current analysis.
func (h *Handler) AnalysisEvents(c *gin.Context) {
	ctx := c.Request.Context()

	events, unsubscribe, err := h.sessions.Subscribe(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			writeEvent(c, ev)
			c.Writer.Flush()
			if ev.Terminal() {
				return
			}
		}
	}
}

func writeEvent(c *gin.Context, ev domain.AnalysisEvent) {
	switch {
	case ev.Stage != nil:
		c.SSEvent("stage", gin.H{
			"analysisId": ev.AnalysisID,
			"index":      ev.Stage.Index,
			"message":    ev.Stage.Message,
			"progress":   ev.Stage.Progress,
		})
	case ev.Result != nil:
		c.SSEvent("result", gin.H{
			"analysisId": ev.AnalysisID,
			"result":     ev.Result,
		})
	case ev.Err != nil:
		c.SSEvent("error", gin.H{
			"analysisId": ev.AnalysisID,
			"error":      domain.RetryPrompt,
		})
	}
}

// SetCategory handles PUT /api/v1/sessions/:id/filters/category
func (h *Handler) SetCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	category, ok := h.normalizer.Category(string(req.Category))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category", "details": string(req.Category)})
		return
	}

	state, err := h.sessions.SetCategory(c.Request.Context(), c.Param("id"), category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetStores handles PUT /api/v1/sessions/:id/filters/stores
func (h *Handler) SetStores(c *gin.Context) {
	var req StoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	stores := h.normalizer.Stores(c.Request.Context(), req.Stores)
	state, err := h.sessions.SetStores(c.Request.Context(), c.Param("id"), stores)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ToggleStore handles POST /api/v1/sessions/:id/filters/stores/toggle
func (h *Handler) ToggleStore(c *gin.Context) {
	var req ToggleStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	store, _ := h.normalizer.Store(string(req.Store))
	state, err := h.sessions.ToggleStore(c.Request.Context(), c.Param("id"), store)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetPriceRange handles PUT /api/v1/sessions/:id/filters/price.
// The range is committed after the quiet period unless Immediate is set.
func (h *Handler) SetPriceRange(c *gin.Context) {
	var req PriceRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	priceRange := domain.PriceRange{*req.Min, *req.Max}

	if err := h.sessions.SetPriceRange(ctx, id, priceRange); err != nil {
		respondError(c, err)
		return
	}

	if req.Immediate {
		if err := h.sessions.FlushPriceRange(ctx, id); err != nil {
			respondError(c, err)
			return
		}
		state, err := h.sessions.Get(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":     "pending",
		"priceRange": priceRange,
	})
}

// ClearFilters handles DELETE /api/v1/sessions/:id/filters
func (h *Handler) ClearFilters(c *gin.Context) {
	state, err := h.sessions.ClearFilters(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SessionProducts handles GET /api/v1/sessions/:id/products
func (h *Handler) SessionProducts(c *gin.Context) {
	products, state, err := h.sessions.VisibleProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"criteria": state.Criteria,
		"analysis": state.Analysis,
	})
}
