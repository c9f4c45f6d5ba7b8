package engine

import (
	"errors"
	"fmt"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
)

// ErrResolution signals that a round could not be scored. It never leaves
// the runner; a battle that hits it ends up failed.
var ErrResolution = errors.New("battle round cannot be resolved")

// --- Scoring -------------------------------------------------------------

// Score computes the round score for attacker hitting defender:
//
//	(attack/200)*100 - ((res[type1]/4)*100 + (res[type2]/4)*100)
//
// where res is the defender's resistance table. An attacker without a
// secondary type contributes nothing for it.
func Score(attacker, defender game.Entity) (float64, error) {
	primary, ok := defender.Resistances[attacker.PrimaryType]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no resistance entry for %q", ErrResolution, defender.Name, attacker.PrimaryType)
	}
	var secondary float64
	if attacker.SecondaryType != game.TypeNone {
		secondary, ok = defender.Resistances[attacker.SecondaryType]
		if !ok {
			return 0, fmt.Errorf("%w: %s has no resistance entry for %q", ErrResolution, defender.Name, attacker.SecondaryType)
		}
	}
	return (attacker.AttackPower/200)*100 - ((primary/4)*100 + (secondary/4)*100), nil
}
