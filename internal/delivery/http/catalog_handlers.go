package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/furnifind/backend/internal/domain"
)

// ListProducts filters the catalog without a session (GET /api/v1/catalog/products).
// Query: category, minPrice, maxPrice, store (repeatable).
func (h *Handler) ListProducts(c *gin.Context) {
	criteria, err := h.parseCriteria(c)
	if err != nil {
		respondError(c, err)
		return
	}

	products := h.catalog.Search(c.Request.Context(), criteria)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"criteria": criteria,
	})
}

// FeaturedProducts returns a shuffled selection for the carousel
func (h *Handler) FeaturedProducts(c *gin.Context) {
	count := h.featuredCount
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
		count = n
	}

	products := h.catalog.Featured(count)
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProduct returns one catalog entry (GET /api/v1/catalog/products/:productId)
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.Product(c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListBrands returns the affiliate partners.
// Query: network (AWIN or CJ), tier (major or specialty).
func (h *Handler) ListBrands(c *gin.Context) {
	network := domain.Network(c.Query("network"))
	if network != "" && network != domain.NetworkAWIN && network != domain.NetworkCJ {
		c.JSON(http.StatusBadRequest, gin.H{"error": "network must be AWIN or CJ"})
		return
	}

	tier := domain.BrandTier(strings.ToLower(c.Query("tier")))
	if tier != "" && tier != domain.TierMajor && tier != domain.TierSpecialty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tier must be major or specialty"})
		return
	}

	brands := h.catalog.Brands(network, tier)
	c.JSON(http.StatusOK, gin.H{"brands": brands, "count": len(brands)})
}

// GetBrand returns one partner; the name is matched leniently ("joss and main")
func (h *Handler) GetBrand(c *gin.Context) {
	name, _ := h.normalizer.Store(c.Param("name"))
	brand, err := h.catalog.Brand(name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

// parseCriteria reads filter criteria from the query string, starting from defaults
func (h *Handler) parseCriteria(c *gin.Context) (domain.FilterCriteria, error) {
	criteria := domain.DefaultCriteria()

	if raw := c.Query("category"); raw != "" {
		category, ok := h.normalizer.Category(raw)
		if !ok {
			return criteria, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidRequest, raw)
		}
		criteria.Category = category
	}

	for i, key := range []string{"minPrice", "maxPrice"} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidRequest, key)
		}
		criteria.PriceRange[i] = v
	}

	stores := make([]domain.Store, 0, len(c.QueryArray("store")))
	for _, st := range c.QueryArray("store") {
		stores = append(stores, domain.Store(st))
	}
	criteria.Stores = h.normalizer.Stores(c.Request.Context(), stores)

	return criteria, nil
}
