package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/ids"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/keys"
)

type memoryRepository struct {
	mu      sync.RWMutex
	battles map[string]game.Battle
	now     func() time.Time
}

// NewMemoryRepository returns a map-backed Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		battles: make(map[string]game.Battle),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryRepository) CreateBattle(entityA, entityB string) (string, error) {
	if err := validatePair(entityA, entityB); err != nil {
		return "", err
	}
	b := game.Battle{
		ID:        ids.NewToken(),
		EntityA:   keys.NormalizeName(entityA),
		EntityB:   keys.NormalizeName(entityB),
		Status:    game.StatusPending,
		CreatedAt: r.now(),
	}
	r.mu.Lock()
	r.battles[b.ID] = b
	r.mu.Unlock()
	return b.ID, nil
}

func (r *memoryRepository) GetBattle(id string) (game.Battle, error) {
	key, ok := ids.ParseToken(id)
	if !ok {
		return game.Battle{}, fmt.Errorf("battle id %q: %w", id, game.ErrNotFound)
	}
	r.mu.RLock()
	b, found := r.battles[key]
	r.mu.RUnlock()
	if !found {
		return game.Battle{}, fmt.Errorf("battle %s: %w", key, game.ErrNotFound)
	}
	return snapshotOf(b), nil
}

func (r *memoryRepository) ApplyResolution(id string, res game.Resolution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, found := r.battles[id]
	if !found {
		return fmt.Errorf("battle %s: %w", id, game.ErrNotFound)
	}
	if err := validateResolution(b, res); err != nil {
		return err
	}
	at := r.now()
	b.Status = res.Status
	b.Winner = res.Winner
	b.Damage = res.Damage
	b.ResolvedAt = &at
	r.battles[id] = b
	return nil
}

func (r *memoryRepository) CountBattles() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.battles)), nil
}

// snapshotOf detaches the record from any pointer it shares with the store.
func snapshotOf(b game.Battle) game.Battle {
	if b.ResolvedAt != nil {
		at := *b.ResolvedAt
		b.ResolvedAt = &at
	}
	return b
}
