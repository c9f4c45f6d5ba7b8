package catalog

import (
	"errors"
	"fmt"

	"github.com/antzucaro/matchr"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/keys"
)

// DefaultThreshold is the minimum Jaro-Winkler similarity for a fuzzy match.
const DefaultThreshold = 0.80

// ErrCatalogEmpty is returned when resolving against an empty catalog.
var ErrCatalogEmpty = errors.New("no pokemon data available")

// Resolver maps free-form user input onto catalog entities. An exact
// normalized hit always wins; otherwise the most similar name at or above
// the threshold is chosen, earliest loaded first on ties.
type Resolver struct {
	catalog   *Catalog
	threshold float64
}

// NewResolver returns a resolver over c. A threshold outside (0,1] falls back
// to DefaultThreshold.
func NewResolver(c *Catalog, threshold float64) *Resolver {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Resolver{catalog: c, threshold: threshold}
}

// Resolve returns the catalog entity best matching query.
func (r *Resolver) Resolve(query string) (game.Entity, error) {
	if r.catalog.Count() == 0 {
		return game.Entity{}, ErrCatalogEmpty
	}
	q := keys.NormalizeName(query)
	if q == "" {
		return game.Entity{}, fmt.Errorf("empty pokemon name: %w", game.ErrNotFound)
	}
	if e, err := r.catalog.Lookup(q); err == nil {
		return e, nil
	}

	best, bestScore := "", 0.0
	for _, name := range r.catalog.current().order {
		if s := matchr.JaroWinkler(q, name, false); s > bestScore {
			best, bestScore = name, s
		}
	}
	if best == "" || bestScore < r.threshold {
		return game.Entity{}, fmt.Errorf("pokemon %q unrecognized: %w", query, game.ErrNotFound)
	}
	return r.catalog.Lookup(best)
}
