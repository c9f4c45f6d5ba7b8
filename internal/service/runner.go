package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/constants"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/engine"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/logging"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/observe"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/storage"
)

// commitAttempts bounds how often a resolution write is tried before the
// runner falls back to marking the battle failed.
const (
	commitAttempts = 3
	commitBackoff  = 100 * time.Millisecond
)

// ResolutionWriter is the part of the battle store the runner writes to.
type ResolutionWriter interface {
	ApplyResolution(id string, res game.Resolution) error
}

// BattleResolver plays out a battle between two entities.
type BattleResolver interface {
	Resolve(a, b game.Entity) engine.Outcome
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMaxConcurrent caps how many battles resolve at once. Zero or less
// means no cap. Start never blocks either way; capped battles wait inside
// their own goroutine.
func WithMaxConcurrent(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithMetrics sets the metrics sink. The default is observe.DefaultMetrics.
func WithMetrics(m *observe.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// Runner resolves battles in the background. Each battle runs in its own
// goroutine and commits its terminal state exactly once.
type Runner struct {
	store   ResolutionWriter
	engine  BattleResolver
	metrics *observe.Metrics
	sem     *semaphore.Weighted
	wg      sync.WaitGroup
	backoff time.Duration
}

// NewRunner returns a runner that resolves with eng and commits to store.
func NewRunner(store ResolutionWriter, eng BattleResolver, opts ...RunnerOption) *Runner {
	r := &Runner{store: store, engine: eng, backoff: commitBackoff}
	for _, o := range opts {
		o(r)
	}
	if r.metrics == nil {
		r.metrics = observe.DefaultMetrics()
	}
	return r
}

// Start resolves the pending battle id between a and b in the background
// and returns immediately.
func (r *Runner) Start(id string, a, b game.Entity) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(id, a, b)
	}()
}

// Wait blocks until every started battle has committed.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) run(id string, a, b game.Entity) {
	ctx := context.Background()
	if r.sem != nil {
		// Background context: acquisition cannot fail.
		_ = r.sem.Acquire(ctx, 1)
		defer r.sem.Release(1)
	}
	started := time.Now()
	r.metrics.ActiveBattles.Add(ctx, 1)
	defer r.metrics.ActiveBattles.Add(ctx, -1)

	out := r.resolve(a, b)
	res := out.Resolution()
	fields := logging.Fields{
		constants.LogFieldBattleID: id,
		constants.LogFieldPokemon1: a.Name,
		constants.LogFieldPokemon2: b.Name,
		constants.LogFieldStatus:   string(res.Status),
	}
	for i, rnd := range out.Rounds {
		fields[fmt.Sprintf("round%d_score", i+1)] = rnd.Score
		logging.Debug("round scored", logging.Fields{
			constants.LogFieldBattleID: id,
			constants.LogFieldRound:    i + 1,
			constants.LogFieldAttacker: rnd.Attacker,
			constants.LogFieldDefender: rnd.Defender,
			constants.LogFieldScore:    rnd.Score,
		})
	}
	if out.Err != nil {
		fields[constants.LogFieldReason] = out.Err.Error()
	}

	res, err := r.commit(id, res)
	if err != nil {
		logging.Error("battle left pending", err, fields)
		return
	}
	fields[constants.LogFieldStatus] = string(res.Status)
	r.metrics.RecordBattleFinished(ctx, string(res.Status), time.Since(started))
	if res.Status == game.StatusResolved {
		fields[constants.LogFieldWinner] = res.Winner
		fields[constants.LogFieldDamage] = res.Damage
	}
	logging.Info("battle finished", fields)
}

// resolve turns an engine panic into a failed outcome so the battle still
// reaches a terminal state.
func (r *Runner) resolve(a, b game.Entity) (out engine.Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = engine.Outcome{Status: game.StatusFailed, Err: fmt.Errorf("%w: panic: %v", engine.ErrResolution, p)}
		}
	}()
	return r.engine.Resolve(a, b)
}

// commit writes res, retrying transient store errors. If res still cannot be
// written, the battle is marked failed so it does not stay pending. It
// returns the resolution actually stored.
func (r *Runner) commit(id string, res game.Resolution) (game.Resolution, error) {
	err := r.apply(id, res)
	if err == nil || res.Status == game.StatusFailed || settled(err) {
		return res, err
	}
	fallback := game.Resolution{Status: game.StatusFailed}
	if ferr := r.apply(id, fallback); ferr != nil {
		return res, errors.Join(err, ferr)
	}
	logging.Error("battle resolution not stored; marked failed", err, logging.Fields{constants.LogFieldBattleID: id})
	return fallback, nil
}

func (r *Runner) apply(id string, res game.Resolution) error {
	var err error
	for attempt := 1; attempt <= commitAttempts; attempt++ {
		if err = r.store.ApplyResolution(id, res); err == nil || !retryable(err) {
			return err
		}
		logging.Debug("resolution write failed", logging.Fields{
			constants.LogFieldBattleID: id,
			constants.LogFieldAttempt:  attempt,
			"error":                    err.Error(),
		})
		if attempt < commitAttempts {
			time.Sleep(r.backoff)
		}
	}
	return err
}

// settled reports errors meaning the battle cannot be written at all.
func settled(err error) bool {
	return errors.Is(err, storage.ErrAlreadyResolved) || errors.Is(err, game.ErrNotFound)
}

// retryable reports whether a store error may go away on another attempt.
func retryable(err error) bool {
	return !settled(err) && !errors.Is(err, storage.ErrInvalidResolution)
}
