package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furnifind/backend/internal/domain"
)

var chairAnalysis = &domain.AnalysisResult{
	Detected:   "Mid-Century Leather Chair",
	Category:   domain.CategoryChair,
	Style:      domain.StyleMidCentury,
	Color:      domain.ColorBrown,
	Confidence: 0.92,
}

func TestComputeVisibleProducts_NoAnalysisDefaultCriteria(t *testing.T) {
	svc := NewMatchingService(MatchConfig{Jitter: fixedRandom(0)})
	catalog := testProducts()

	got := svc.ComputeVisibleProducts(context.Background(), catalog, nil, domain.DefaultCriteria())

	assert.Equal(t, productIDs(catalog), productIDs(got), "catalog order is kept")
	for _, p := range got {
		assert.Nil(t, p.MatchPercentage)
	}
}

func TestComputeVisibleProducts_FiltersAreSound(t *testing.T) {
	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		wantIDs  []string
	}{
		{
			name:     "category only",
			criteria: domain.FilterCriteria{Category: domain.CategoryChair, PriceRange: domain.PriceRange{0, 3000}},
			wantIDs:  []string{"p3", "p4", "p8"},
		},
		{
			name:     "price bounds are inclusive",
			criteria: domain.FilterCriteria{Category: domain.CategoryAll, PriceRange: domain.PriceRange{450, 899}},
			wantIDs:  []string{"p1", "p5", "p6"},
		},
		{
			name:     "upper bound equal to price is kept",
			criteria: domain.FilterCriteria{Category: domain.CategoryBed, PriceRange: domain.PriceRange{0, 3000}},
			wantIDs:  []string{"p7"},
		},
		{
			name:     "free product passes a zero lower bound",
			criteria: domain.FilterCriteria{Category: domain.CategoryAll, PriceRange: domain.PriceRange{0, 0}},
			wantIDs:  []string{"p8"},
		},
		{
			name:     "stores",
			criteria: domain.FilterCriteria{Category: domain.CategoryAll, PriceRange: domain.PriceRange{0, 3000}, Stores: []domain.Store{domain.StoreWayfair, domain.StoreEtsy}},
			wantIDs:  []string{"p1", "p4", "p8"},
		},
		{
			name:     "all filters combined",
			criteria: domain.FilterCriteria{Category: domain.CategoryChair, PriceRange: domain.PriceRange{100, 2000}, Stores: []domain.Store{domain.StoreAllModern}},
			wantIDs:  []string{"p3"},
		},
		{
			name:     "inverted range yields nothing",
			criteria: domain.FilterCriteria{Category: domain.CategoryAll, PriceRange: domain.PriceRange{2000, 100}},
			wantIDs:  []string{},
		},
		{
			name:     "store with no products",
			criteria: domain.FilterCriteria{Category: domain.CategoryAll, PriceRange: domain.PriceRange{0, 3000}, Stores: []domain.Store{domain.StoreHappyLamps}},
			wantIDs:  []string{},
		},
	}

	svc := NewMatchingService(MatchConfig{Jitter: fixedRandom(0)})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.ComputeVisibleProducts(context.Background(), testProducts(), nil, tt.criteria)
			assert.Equal(t, tt.wantIDs, productIDs(got))

			for _, p := range got {
				if tt.criteria.Category != domain.CategoryAll {
					assert.Equal(t, tt.criteria.Category, p.Category)
				}
				assert.True(t, tt.criteria.PriceRange.Contains(p.Price))
				if len(tt.criteria.Stores) > 0 {
					assert.Contains(t, tt.criteria.Stores, p.Store)
				}
			}
		})
	}
}

func TestScoreProduct(t *testing.T) {
	product := domain.Product{Category: domain.CategoryChair, Style: domain.StyleMidCentury, Color: domain.ColorBrown}

	tests := []struct {
		name     string
		jitter   int
		analysis *domain.AnalysisResult
		want     int
	}{
		{name: "full match no jitter", jitter: 0, analysis: chairAnalysis, want: 90},
		{name: "full match max jitter", jitter: 9, analysis: chairAnalysis, want: 99},
		{name: "category only", jitter: 3, analysis: &domain.AnalysisResult{Category: domain.CategoryChair, Style: domain.StyleRustic, Color: domain.ColorGray}, want: 43},
		{name: "style and color", jitter: 0, analysis: &domain.AnalysisResult{Category: domain.CategoryBed, Style: domain.StyleMidCentury, Color: domain.ColorBrown}, want: 50},
		{name: "nothing matches", jitter: 5, analysis: &domain.AnalysisResult{Category: domain.CategorySofa, Style: domain.StyleModern, Color: domain.ColorGray}, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMatchingService(MatchConfig{Jitter: fixedRandom(tt.jitter)})
			assert.Equal(t, tt.want, svc.ScoreProduct(product, tt.analysis))
		})
	}
}

func TestScoreProduct_NeverExceedsMax(t *testing.T) {
	svc := NewMatchingService(MatchConfig{Jitter: NewSeededRandom(7, 11)})
	product := domain.Product{Category: domain.CategoryChair, Style: domain.StyleMidCentury, Color: domain.ColorBrown}

	for range 1000 {
		score := svc.ScoreProduct(product, chairAnalysis)
		assert.GreaterOrEqual(t, score, 90)
		assert.LessOrEqual(t, score, maxMatchScore)
	}
}

func TestComputeVisibleProducts_SortedByScore(t *testing.T) {
	svc := NewMatchingService(MatchConfig{Jitter: NewSeededRandom(1, 2)})
	catalog := testProducts()

	got := svc.ComputeVisibleProducts(context.Background(), catalog, chairAnalysis, domain.DefaultCriteria())
	require.Len(t, got, len(catalog))

	for i, p := range got {
		require.NotNil(t, p.MatchPercentage)
		assert.GreaterOrEqual(t, *p.MatchPercentage, 0)
		assert.LessOrEqual(t, *p.MatchPercentage, maxMatchScore)
		if i > 0 {
			assert.GreaterOrEqual(t, *got[i-1].MatchPercentage, *p.MatchPercentage)
		}
	}
	assert.Equal(t, "p3", got[0].ID, "the only full match ranks first")
}

func TestComputeVisibleProducts_TiesKeepCatalogOrder(t *testing.T) {
	svc := NewMatchingService(MatchConfig{Jitter: fixedRandom(0)})
	analysis := &domain.AnalysisResult{Category: domain.CategoryDesk, Style: domain.StyleRustic, Color: domain.ColorWhite}

	got := svc.ComputeVisibleProducts(context.Background(), testProducts(), analysis, domain.DefaultCriteria())

	// p6 is the only desk; p7 matches style; the rest score zero
	assert.Equal(t, []string{"p6", "p7", "p1", "p2", "p3", "p4", "p5", "p8"}, productIDs(got))
}

func TestComputeVisibleProducts_DoesNotMutateCatalog(t *testing.T) {
	svc := NewMatchingService(MatchConfig{Jitter: fixedRandom(4)})
	catalog := testProducts()
	before := testProducts()

	_ = svc.ComputeVisibleProducts(context.Background(), catalog, chairAnalysis, domain.FilterCriteria{
		Category:   domain.CategoryChair,
		PriceRange: domain.PriceRange{100, 2000},
	})

	assert.Equal(t, before, catalog)
}

func TestComputeVisibleProducts_ScoresRecomputed(t *testing.T) {
	svc := NewMatchingService(MatchConfig{Jitter: fixedRandom(0)})

	stale := 7
	catalog := testProducts()
	catalog[2].MatchPercentage = &stale

	scored := svc.ComputeVisibleProducts(context.Background(), catalog, chairAnalysis, domain.DefaultCriteria())
	require.NotNil(t, scored[0].MatchPercentage)
	assert.Equal(t, 90, *scored[0].MatchPercentage)

	unscored := svc.ComputeVisibleProducts(context.Background(), catalog, nil, domain.DefaultCriteria())
	for _, p := range unscored {
		assert.Nil(t, p.MatchPercentage)
	}
	assert.Equal(t, 7, *catalog[2].MatchPercentage, "input is untouched")
}

func TestFilters_OrderIndependent(t *testing.T) {
	criteria := domain.FilterCriteria{
		Category:   domain.CategoryChair,
		PriceRange: domain.PriceRange{0, 1300},
		Stores:     []domain.Store{domain.StoreAllModern, domain.StoreWayfair},
	}

	byCategory := func(p []domain.Product) []domain.Product { return FilterByCategory(p, criteria.Category) }
	byPrice := func(p []domain.Product) []domain.Product { return FilterByPrice(p, criteria.PriceRange) }
	byStores := func(p []domain.Product) []domain.Product { return FilterByStores(p, criteria.Stores) }

	orders := [][]func([]domain.Product) []domain.Product{
		{byCategory, byPrice, byStores},
		{byCategory, byStores, byPrice},
		{byPrice, byCategory, byStores},
		{byPrice, byStores, byCategory},
		{byStores, byCategory, byPrice},
		{byStores, byPrice, byCategory},
	}

	want := []string{"p3", "p8"}
	for _, order := range orders {
		got := testProducts()
		for _, f := range order {
			got = f(got)
		}
		assert.Equal(t, want, productIDs(got))
	}
}

func TestFilterByCategory_Wildcard(t *testing.T) {
	products := testProducts()

	assert.Len(t, FilterByCategory(products, domain.CategoryAll), len(products))
	assert.Len(t, FilterByCategory(products, ""), len(products))
	assert.Empty(t, FilterByCategory(products, domain.Category("Lamp")))
}
