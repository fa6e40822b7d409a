package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/furnifind/backend/internal/domain"
)

// MockSessionRepository is a mock implementation of domain.SessionRepository
type MockSessionRepository struct {
	mu        sync.Mutex
	data      map[string][]byte
	saveError error
	saves     int
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{data: make(map[string][]byte)}
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.data[id]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	var state domain.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *MockSessionRepository) Save(ctx context.Context, state *domain.SessionState, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	if m.saveError != nil {
		return m.saveError
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.data[state.ID] = raw
	return nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *MockSessionRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[id]
	return ok, nil
}

func (m *MockSessionRepository) setSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// MockCatalog is a mock implementation of domain.CatalogRepository
type MockCatalog struct {
	products []domain.Product
	brands   []domain.Brand
}

func (m *MockCatalog) Products() []domain.Product {
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out
}

func (m *MockCatalog) ProductByID(id string) (domain.Product, bool) {
	for _, p := range m.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (m *MockCatalog) Brands() []domain.Brand {
	out := make([]domain.Brand, len(m.brands))
	copy(out, m.brands)
	return out
}

// fixedRandom always returns the same index (modulo n)
type fixedRandom int

func (f fixedRandom) IntN(n int) int { return int(f) % n }

// sequenceRandom replays values in order, repeating the last one
type sequenceRandom struct {
	mu     sync.Mutex
	values []int
	calls  int
}

func (s *sequenceRandom) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := min(s.calls, len(s.values)-1)
	s.calls++
	return s.values[idx] % n
}

// recordingObserver collects analysis outcomes
type recordingObserver struct {
	mu       sync.Mutex
	started  int
	outcomes []string
}

func (r *recordingObserver) AnalysisStarted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *recordingObserver) AnalysisFinished(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recordingObserver) snapshot() (int, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started, append([]string(nil), r.outcomes...)
}

// testProducts is a small catalog covering every category
func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Gray Sofa", Price: 899, Store: domain.StoreWayfair, Category: domain.CategorySofa, Style: domain.StyleModern, Color: domain.ColorGray, Material: domain.MaterialFabric},
		{ID: "p2", Name: "Blue Sofa", Price: 1499, Store: domain.StoreAllModern, Category: domain.CategorySofa, Style: domain.StyleScandinavian, Color: domain.ColorBlue, Material: domain.MaterialVelvet},
		{ID: "p3", Name: "Leather Chair", Price: 1299, Store: domain.StoreAllModern, Category: domain.CategoryChair, Style: domain.StyleMidCentury, Color: domain.ColorBrown, Material: domain.MaterialLeather},
		{ID: "p4", Name: "Metal Chair", Price: 149, Store: domain.StoreEtsy, Category: domain.CategoryChair, Style: domain.StyleIndustrial, Color: domain.ColorBlack, Material: domain.MaterialMetal},
		{ID: "p5", Name: "Oak Table", Price: 650, Store: domain.StoreMaisonsDuMonde, Category: domain.CategoryTable, Style: domain.StyleScandinavian, Color: domain.ColorBeige, Material: domain.MaterialWood},
		{ID: "p6", Name: "Steel Desk", Price: 450, Store: domain.StoreOttoOffice, Category: domain.CategoryDesk, Style: domain.StyleIndustrial, Color: domain.ColorBlack, Material: domain.MaterialMetal},
		{ID: "p7", Name: "Pine Bed", Price: 3000, Store: domain.StoreBusyB, Category: domain.CategoryBed, Style: domain.StyleRustic, Color: domain.ColorBrown, Material: domain.MaterialWood},
		{ID: "p8", Name: "Gray Modern Chair", Price: 0, Store: domain.StoreWayfair, Category: domain.CategoryChair, Style: domain.StyleModern, Color: domain.ColorGray, Material: domain.MaterialFabric},
	}
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
