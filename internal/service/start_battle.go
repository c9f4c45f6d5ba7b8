package service

import (
	"context"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/constants"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/logging"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/observe"
)

// NameResolver maps user input onto catalog entities.
type NameResolver interface {
	Resolve(query string) (game.Entity, error)
}

// BattleRepo is the minimal store interface required by BattleService.
// Using a small interface simplifies testing.
type BattleRepo interface {
	CreateBattle(entityA, entityB string) (string, error)
	GetBattle(id string) (game.Battle, error)
}

// BattleService creates battles and reports their state.
type BattleService struct {
	names   NameResolver
	repo    BattleRepo
	runner  *Runner
	metrics *observe.Metrics
}

// NewBattleService wires the service. A nil metrics uses
// observe.DefaultMetrics.
func NewBattleService(names NameResolver, repo BattleRepo, runner *Runner, metrics *observe.Metrics) *BattleService {
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	return &BattleService{names: names, repo: repo, runner: runner, metrics: metrics}
}

// StartBattle resolves both names, stores a pending battle and hands it to
// the runner. It returns the battle id before resolution starts.
//
// Unrecognized names yield game.ErrNotFound; two names resolving to the same
// pokemon yield game.ErrInvalidRequest.
func (s *BattleService) StartBattle(nameA, nameB string) (string, error) {
	a, err := s.names.Resolve(nameA)
	if err != nil {
		return "", err
	}
	b, err := s.names.Resolve(nameB)
	if err != nil {
		return "", err
	}
	id, err := s.repo.CreateBattle(a.Name, b.Name)
	if err != nil {
		return "", err
	}
	s.metrics.BattlesCreated.Add(context.Background(), 1)
	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID: id,
		constants.LogFieldPokemon1: a.Name,
		constants.LogFieldPokemon2: b.Name,
	})
	s.runner.Start(id, a, b)
	return id, nil
}

// BattleStatus returns a snapshot of the battle.
func (s *BattleService) BattleStatus(id string) (game.Battle, error) {
	return s.repo.GetBattle(id)
}
