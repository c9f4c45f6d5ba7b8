package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/ids"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/keys"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository returns a Repository backed by db. The schema must
// already be migrated (see OpenDB).
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(entityA, entityB string) (string, error) {
	if err := validatePair(entityA, entityB); err != nil {
		return "", err
	}
	b := game.Battle{
		ID:        ids.NewToken(),
		EntityA:   keys.NormalizeName(entityA),
		EntityB:   keys.NormalizeName(entityB),
		Status:    game.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.Create(&b).Error; err != nil {
		return "", err
	}
	return b.ID, nil
}

func (r *sqliteRepository) GetBattle(id string) (game.Battle, error) {
	key, ok := ids.ParseToken(id)
	if !ok {
		return game.Battle{}, fmt.Errorf("battle id %q: %w", id, game.ErrNotFound)
	}
	var b game.Battle
	if err := r.db.Where("id = ?", key).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return game.Battle{}, fmt.Errorf("battle %s: %w", key, game.ErrNotFound)
		}
		return game.Battle{}, err
	}
	return b, nil
}

func (r *sqliteRepository) ApplyResolution(id string, res game.Resolution) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var b game.Battle
		if err := tx.Where("id = ?", id).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("battle %s: %w", id, game.ErrNotFound)
			}
			return err
		}
		if err := validateResolution(b, res); err != nil {
			return err
		}
		at := time.Now().UTC()
		out := tx.Model(&game.Battle{}).
			Where("id = ? AND status = ?", id, game.StatusPending).
			Updates(map[string]interface{}{
				"status":      res.Status,
				"winner":      res.Winner,
				"damage":      res.Damage,
				"resolved_at": &at,
			})
		if out.Error != nil {
			return out.Error
		}
		if out.RowsAffected == 0 {
			return ErrAlreadyResolved
		}
		return nil
	})
}

func (r *sqliteRepository) CountBattles() (int64, error) {
	var n int64
	if err := r.db.Model(&game.Battle{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
