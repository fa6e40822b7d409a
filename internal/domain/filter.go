package domain

import "time"

// Default price bounds of the range control
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 3000
)

// PriceRange is an inclusive [min, max] pair
type PriceRange [2]float64

// Min returns the lower bound
func (r PriceRange) Min() float64 { return r[0] }

// Max returns the upper bound
func (r PriceRange) Max() float64 { return r[1] }

// Contains reports whether price lies within the range, both ends inclusive
func (r PriceRange) Contains(price float64) bool {
	return price >= r[0] && price <= r[1]
}

// FilterCriteria is the user-controlled product query
type FilterCriteria struct {
	Category   Category   `json:"category"`
	PriceRange PriceRange `json:"priceRange"`
	Stores     []Store    `json:"stores"`
}

// DefaultCriteria returns the criteria a new session starts with
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Category:   CategoryAll,
		PriceRange: PriceRange{DefaultMinPrice, DefaultMaxPrice},
		Stores:     []Store{},
	}
}

// IsDefault reports whether no filter deviates from the defaults
func (f FilterCriteria) IsDefault() bool {
	return f.Category == CategoryAll &&
		f.PriceRange == PriceRange{DefaultMinPrice, DefaultMaxPrice} &&
		len(f.Stores) == 0
}

// SessionState is the persisted view of one visitor session
type SessionState struct {
	ID         string          `json:"id"`
	Criteria   FilterCriteria  `json:"criteria"`
	Analysis   *AnalysisResult `json:"analysis,omitempty"`
	AnalysisID string          `json:"analysisId,omitempty"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
