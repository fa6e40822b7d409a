package usecase

import (
	"context"
	"slices"

	"github.com/furnifind/backend/internal/domain"
	"github.com/furnifind/backend/pkg/logger"
)

// Scoring bonuses
const (
	categoryMatchBonus = 40 // Product category equals detected category
	styleMatchBonus    = 30 // Product style equals detected style
	colorMatchBonus    = 20 // Product color equals detected color
	jitterSpan         = 10 // Jitter is drawn from [0, jitterSpan)
	maxMatchScore      = 99
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	Jitter             domain.RandomSource
	EnableDebugLogging bool
}

// MatchingService scores catalog products against an analysis and applies filters
type MatchingService struct {
	jitter             domain.RandomSource
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	jitter := config.Jitter
	if jitter == nil {
		jitter = NewRandom()
	}

	return &MatchingService{
		jitter:             jitter,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ComputeVisibleProducts runs the full pipeline: score and sort (only when an
// analysis is present), then category, price and store filters, each stage
// consuming the previous stage's output. The catalog slice is never modified.
func (s *MatchingService) ComputeVisibleProducts(
	ctx context.Context,
	catalog []domain.Product,
	analysis *domain.AnalysisResult,
	criteria domain.FilterCriteria,
) []domain.Product {
	visible := make([]domain.Product, len(catalog))
	copy(visible, catalog)

	if analysis != nil {
		visible = s.ScoreAndSort(visible, analysis)
	} else {
		for i := range visible {
			visible[i].MatchPercentage = nil
		}
	}

	before := len(visible)
	visible = FilterByCategory(visible, criteria.Category)
	afterCategory := len(visible)
	visible = FilterByPrice(visible, criteria.PriceRange)
	afterPrice := len(visible)
	visible = FilterByStores(visible, criteria.Stores)

	if s.enableDebugLogging {
		logger.Debug(ctx).
			Str("category", string(criteria.Category)).
			Floats64("price_range", criteria.PriceRange[:]).
			Int("stores", len(criteria.Stores)).
			Int("total", before).
			Int("after_category", afterCategory).
			Int("after_price", afterPrice).
			Int("final", len(visible)).
			Bool("scored", analysis != nil).
			Msg("filter pipeline")
	}

	return visible
}

// ScoreAndSort attaches a fresh match percentage to every product and stably
// sorts by descending score, so ties keep catalog order.
func (s *MatchingService) ScoreAndSort(products []domain.Product, analysis *domain.AnalysisResult) []domain.Product {
	for i := range products {
		score := s.ScoreProduct(products[i], analysis)
		products[i].MatchPercentage = &score
	}

	slices.SortStableFunc(products, func(a, b domain.Product) int {
		return *b.MatchPercentage - *a.MatchPercentage
	})

	return products
}

// ScoreProduct computes the clamped match score of one product
func (s *MatchingService) ScoreProduct(product domain.Product, analysis *domain.AnalysisResult) int {
	score := baseScore(product, analysis) + s.jitter.IntN(jitterSpan)
	return min(score, maxMatchScore)
}

// baseScore is the deterministic part of the score
func baseScore(product domain.Product, analysis *domain.AnalysisResult) int {
	score := 0
	if product.Category == analysis.Category {
		score += categoryMatchBonus
	}
	if product.Style == analysis.Style {
		score += styleMatchBonus
	}
	if product.Color == analysis.Color {
		score += colorMatchBonus
	}
	return score
}

// FilterByCategory keeps products of exactly the given category; the wildcard keeps all
func FilterByCategory(products []domain.Product, category domain.Category) []domain.Product {
	if category == domain.CategoryAll || category == "" {
		return products
	}
	return filterProducts(products, func(p domain.Product) bool {
		return p.Category == category
	})
}

// FilterByPrice keeps products whose price lies in the inclusive range.
// An inverted range (min > max) keeps nothing.
func FilterByPrice(products []domain.Product, priceRange domain.PriceRange) []domain.Product {
	return filterProducts(products, func(p domain.Product) bool {
		return priceRange.Contains(p.Price)
	})
}

// FilterByStores keeps products sold by one of the stores; an empty set keeps all
func FilterByStores(products []domain.Product, stores []domain.Store) []domain.Product {
	if len(stores) == 0 {
		return products
	}
	allowed := make(map[domain.Store]bool, len(stores))
	for _, st := range stores {
		allowed[st] = true
	}
	return filterProducts(products, func(p domain.Product) bool {
		return allowed[p.Store]
	})
}

func filterProducts(products []domain.Product, keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
