// Package dedupe provides shared singleflight groups used to collapse
// concurrent identical work. Only one computation runs for a given key while
// other callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

// PageGroup deduplicates catalog page builds keyed by the page cache key
// (e.g. "pokemons:1:10").
var PageGroup singleflight.Group
