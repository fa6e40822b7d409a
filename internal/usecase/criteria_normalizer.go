package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/furnifind/backend/internal/domain"
	"github.com/furnifind/backend/pkg/logger"
)

// CriteriaNormalizer maps loosely typed filter input ("chairs", "joss and main")
// onto catalog values
type CriteriaNormalizer struct {
	stores             map[string]domain.Store
	categories         map[string]domain.Category
	enableDebugLogging bool
}

// Matches everything that is not a letter or digit
var nonAlphanumericPattern = regexp.MustCompile(`[^a-z0-9]+`)

// NewCriteriaNormalizer creates a normalizer over the given retailers
func NewCriteriaNormalizer(stores []domain.Store, enableDebugLogging bool) *CriteriaNormalizer {
	n := &CriteriaNormalizer{
		stores:             make(map[string]domain.Store, len(stores)),
		categories:         make(map[string]domain.Category, len(domain.Categories)+1),
		enableDebugLogging: enableDebugLogging,
	}

	for _, st := range stores {
		n.stores[normalizeKey(string(st))] = st
	}

	n.categories[normalizeKey(string(domain.CategoryAll))] = domain.CategoryAll
	for _, c := range domain.Categories {
		n.categories[normalizeKey(string(c))] = c
	}

	return n
}

// Category resolves a category name case-insensitively; plurals are accepted.
// An empty input means the wildcard.
func (n *CriteriaNormalizer) Category(raw string) (domain.Category, bool) {
	key := normalizeKey(raw)
	if key == "" {
		return domain.CategoryAll, true
	}

	if c, ok := n.categories[key]; ok {
		return c, true
	}
	if c, ok := n.categories[singular(key)]; ok {
		return c, true
	}
	return domain.Category(raw), false
}

// Store resolves a retailer name ignoring case, spacing and punctuation.
// Unknown names are returned trimmed, with ok false.
func (n *CriteriaNormalizer) Store(raw string) (domain.Store, bool) {
	if st, ok := n.stores[normalizeKey(raw)]; ok {
		return st, true
	}
	return domain.Store(strings.TrimSpace(raw)), false
}

// Stores resolves every name and drops empty entries
func (n *CriteriaNormalizer) Stores(ctx context.Context, raw []domain.Store) []domain.Store {
	out := make([]domain.Store, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(string(r)) == "" {
			continue
		}
		st, ok := n.Store(string(r))
		if !ok && n.enableDebugLogging {
			logger.Debug(ctx).Str("store", string(r)).Msg("unknown retailer in filter")
		}
		out = append(out, st)
	}
	return out
}

// normalizeKey lowercases, spells out "&" and strips everything but letters and digits
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", " and ")
	return nonAlphanumericPattern.ReplaceAllString(s, "")
}

func singular(key string) string {
	return strings.TrimSuffix(key, "s")
}
