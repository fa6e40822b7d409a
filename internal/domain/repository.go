package domain

import (
	"context"
	"time"
)

// SessionRepository persists session state between requests
type SessionRepository interface {
	Get(ctx context.Context, id string) (*SessionState, error)
	Save(ctx context.Context, state *SessionState, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// CatalogRepository provides read-only access to the product catalog
type CatalogRepository interface {
	Products() []Product
	ProductByID(id string) (Product, bool)
	Brands() []Brand
}

// RandomSource is the injectable randomness used for jitter and mock results.
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}
