package keys

import (
	"strconv"
	"strings"
)

// NormalizeName produces the catalog lookup key for a creature name:
// trimmed, lower-cased, inner whitespace collapsed to single spaces.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// PageKey produces the cache key for a catalog listing page.
func PageKey(page, perPage int) string {
	return "pokemons:" + strconv.Itoa(page) + ":" + strconv.Itoa(perPage)
}
