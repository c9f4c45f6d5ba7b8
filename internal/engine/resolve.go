package engine

import (
	"time"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
)

// DefaultRoundDelay is how long each round takes to play out.
const DefaultRoundDelay = 3 * time.Second

// RoundResult records one scored round.
type RoundResult struct {
	Attacker string
	Defender string
	Score    float64
}

// Outcome is the result of resolving a battle.
type Outcome struct {
	Status game.BattleStatus
	Winner string
	Damage float64
	// Rounds holds the rounds that were scored; a failed first round leaves
	// it empty.
	Rounds []RoundResult
	Err    error
}

// Resolution converts the outcome into the store update for the battle.
func (o Outcome) Resolution() game.Resolution {
	if o.Status != game.StatusResolved {
		return game.Resolution{Status: game.StatusFailed}
	}
	return game.Resolution{Status: game.StatusResolved, Winner: o.Winner, Damage: o.Damage}
}

// Option configures an Engine.
type Option func(*Engine)

// WithSleep replaces the function used to wait out each round.
func WithSleep(sleep func(time.Duration)) Option {
	return func(e *Engine) { e.sleep = sleep }
}

// Engine resolves battles. It holds no per-battle state and is safe for
// concurrent use.
type Engine struct {
	roundDelay time.Duration
	sleep      func(time.Duration)
}

// New returns an engine whose rounds each take roundDelay. A non-positive
// delay uses DefaultRoundDelay.
func New(roundDelay time.Duration, opts ...Option) *Engine {
	if roundDelay <= 0 {
		roundDelay = DefaultRoundDelay
	}
	e := &Engine{roundDelay: roundDelay, sleep: time.Sleep}
	for _, o := range opts {
		o(e)
	}
	return e
}

// RoundDelay returns the configured per-round latency.
func (e *Engine) RoundDelay() time.Duration { return e.roundDelay }

// Resolve plays two rounds: a attacks b, then b attacks a. Every round that
// is played takes the round delay, whether or not it could be scored. A
// round that cannot be scored fails the battle and the remaining round is
// skipped.
//
// The winner is a only when its round strictly beats b's round, so a tie
// goes to b. Damage is the higher of the two scores.
func (e *Engine) Resolve(a, b game.Entity) Outcome {
	rounds := make([]RoundResult, 0, 2)
	for _, pair := range [2][2]game.Entity{{a, b}, {b, a}} {
		attacker, defender := pair[0], pair[1]
		score, err := Score(attacker, defender)
		e.sleep(e.roundDelay)
		if err != nil {
			return Outcome{Status: game.StatusFailed, Rounds: rounds, Err: err}
		}
		rounds = append(rounds, RoundResult{Attacker: attacker.Name, Defender: defender.Name, Score: score})
	}

	round1, round2 := rounds[0].Score, rounds[1].Score
	winner := b.Name
	if round1 > round2 {
		winner = a.Name
	}
	damage := round1
	if round2 > damage {
		damage = round2
	}
	return Outcome{Status: game.StatusResolved, Winner: winner, Damage: damage, Rounds: rounds}
}
