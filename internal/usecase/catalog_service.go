package usecase

import (
	"context"
	"fmt"

	"github.com/furnifind/backend/internal/domain"
)

// DefaultFeaturedCount is the size of the featured carousel
const DefaultFeaturedCount = 12

// CatalogService answers session-less catalog queries
type CatalogService struct {
	catalog domain.CatalogRepository
	matcher *MatchingService
	random  domain.RandomSource
}

// NewCatalogService creates a catalog service
func NewCatalogService(catalog domain.CatalogRepository, matcher *MatchingService, random domain.RandomSource) *CatalogService {
	if random == nil {
		random = NewRandom()
	}
	return &CatalogService{catalog: catalog, matcher: matcher, random: random}
}

// Search filters the catalog without any analysis, in catalog order
func (s *CatalogService) Search(ctx context.Context, criteria domain.FilterCriteria) []domain.Product {
	return s.matcher.ComputeVisibleProducts(ctx, s.catalog.Products(), nil, criteria)
}

// Featured returns up to count products in shuffled order
func (s *CatalogService) Featured(count int) []domain.Product {
	if count <= 0 {
		count = DefaultFeaturedCount
	}

	products := s.catalog.Products()
	// Fisher-Yates
	for i := len(products) - 1; i > 0; i-- {
		j := s.random.IntN(i + 1)
		products[i], products[j] = products[j], products[i]
	}

	if count < len(products) {
		products = products[:count]
	}
	return products
}

// Product looks up one catalog entry by id
func (s *CatalogService) Product(id string) (domain.Product, error) {
	p, ok := s.catalog.ProductByID(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return p, nil
}

// Brands returns the partner directory, optionally narrowed to one network
// and one tier
func (s *CatalogService) Brands(network domain.Network, tier domain.BrandTier) []domain.Brand {
	brands := s.catalog.Brands()
	if network != "" {
		brands = domain.BrandsByNetwork(brands, network)
	}
	if tier != "" {
		brands = domain.BrandsByTier(brands, tier)
	}
	return brands
}

// Brand looks up one partner by store name
func (s *CatalogService) Brand(name domain.Store) (domain.Brand, error) {
	b, ok := domain.BrandByName(s.catalog.Brands(), name)
	if !ok {
		return domain.Brand{}, fmt.Errorf("%w: %s", domain.ErrBrandNotFound, name)
	}
	return b, nil
}
