package storage

import (
	"errors"
	"fmt"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/keys"
)

var (
	// ErrAlreadyResolved is returned when a battle has already left pending.
	ErrAlreadyResolved = errors.New("battle already resolved")
	// ErrInvalidResolution is returned for updates that would break the
	// winner/damage invariant.
	ErrInvalidResolution = errors.New("invalid battle resolution")
)

// Repository stores battles for the lifetime of the process. Implementations
// are safe for concurrent use and never expose their internal records:
// GetBattle returns a snapshot.
type Repository interface {
	// CreateBattle stores a pending battle between two distinct entities and
	// returns its id without waiting for resolution.
	CreateBattle(entityA, entityB string) (string, error)
	// GetBattle returns the current state of a battle.
	GetBattle(id string) (game.Battle, error)
	// ApplyResolution moves a pending battle to its terminal state. It
	// succeeds at most once per battle.
	ApplyResolution(id string, res game.Resolution) error
	// CountBattles returns how many battles have been created.
	CountBattles() (int64, error)
}

func validatePair(entityA, entityB string) error {
	a, b := keys.NormalizeName(entityA), keys.NormalizeName(entityB)
	if a == "" || b == "" {
		return fmt.Errorf("battle needs two pokemon: %w", game.ErrInvalidRequest)
	}
	if a == b {
		return fmt.Errorf("a pokemon cannot battle itself: %w", game.ErrInvalidRequest)
	}
	return nil
}

// validateResolution checks res against the battle it is applied to.
func validateResolution(b game.Battle, res game.Resolution) error {
	if b.Status.Terminal() {
		return ErrAlreadyResolved
	}
	switch res.Status {
	case game.StatusResolved:
		if res.Winner != b.EntityA && res.Winner != b.EntityB {
			return fmt.Errorf("%w: winner %q is not part of the battle", ErrInvalidResolution, res.Winner)
		}
	case game.StatusFailed:
		if res.Winner != "" || res.Damage != 0 {
			return fmt.Errorf("%w: failed battles carry no result", ErrInvalidResolution)
		}
	default:
		return fmt.Errorf("%w: status %q is not terminal", ErrInvalidResolution, res.Status)
	}
	return nil
}
