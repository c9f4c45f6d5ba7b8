package api

import (
	"strings"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/ids"
)

// normalizeBattleID trims the raw query value and returns the canonical
// token form. ok is false for empty or malformed ids.
func normalizeBattleID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return ids.ParseToken(s)
}
