package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
)

func entity(name string, t1, t2 game.Type, attack float64, res map[game.Type]float64) game.Entity {
	table := make(game.ResistanceTable, len(game.Types))
	for _, t := range game.Types {
		table[t] = 1
	}
	for t, v := range res {
		table[t] = v
	}
	return game.Entity{Name: name, PrimaryType: t1, SecondaryType: t2, AttackPower: attack, Resistances: table}
}

// countingSleep records how many rounds waited out their delay.
type countingSleep struct {
	calls int
	total time.Duration
}

func (c *countingSleep) sleep(d time.Duration) {
	c.calls++
	c.total += d
}

func TestScore(t *testing.T) {
	a := entity("a", game.TypeFire, game.TypeFlying, 100, nil)
	b := entity("b", game.TypeWater, game.TypeNone, 50, map[game.Type]float64{game.TypeFire: 0.5, game.TypeFlying: 2})
	got, err := Score(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 50 - (12.5 + 50)
	if got != -12.5 {
		t.Fatalf("expected -12.5, got %v", got)
	}
	// b has no secondary type, so only its primary counts.
	got, _ = Score(b, a)
	if got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestScore_MissingResistance(t *testing.T) {
	a := entity("a", game.TypeFire, game.TypeNone, 100, nil)
	b := entity("b", game.TypeWater, game.TypeNone, 50, nil)
	delete(b.Resistances, game.TypeFire)
	if _, err := Score(a, b); !errors.Is(err, ErrResolution) {
		t.Fatalf("expected ErrResolution, got %v", err)
	}
}

func TestResolve_SecondEntityWins(t *testing.T) {
	a := entity("a", game.TypeFire, game.TypeNone, 100, map[game.Type]float64{game.TypeWater: 0.4})
	b := entity("b", game.TypeWater, game.TypeNone, 60, map[game.Type]float64{game.TypeFire: 1.6})
	cs := &countingSleep{}
	e := New(2*time.Second, WithSleep(cs.sleep))

	out := e.Resolve(a, b)

	if out.Status != game.StatusResolved {
		t.Fatalf("expected resolved, got %s (%v)", out.Status, out.Err)
	}
	if len(out.Rounds) != 2 || out.Rounds[0].Score != 10 || out.Rounds[1].Score != 20 {
		t.Fatalf("unexpected rounds: %+v", out.Rounds)
	}
	if out.Winner != "b" || out.Damage != 20 {
		t.Fatalf("expected winner b with 20 damage, got %s/%v", out.Winner, out.Damage)
	}
	if cs.calls != 2 || cs.total != 4*time.Second {
		t.Fatalf("expected two round delays, got %d (%v)", cs.calls, cs.total)
	}
}

func TestResolve_FirstEntityWins(t *testing.T) {
	a := entity("a", game.TypeFire, game.TypeNone, 120, map[game.Type]float64{game.TypeWater: 1})
	b := entity("b", game.TypeWater, game.TypeNone, 40, map[game.Type]float64{game.TypeFire: 0})
	out := New(time.Millisecond, WithSleep(func(time.Duration) {})).Resolve(a, b)
	if out.Winner != "a" || out.Damage != 60 {
		t.Fatalf("expected winner a with 60 damage, got %s/%v", out.Winner, out.Damage)
	}
	res := out.Resolution()
	if res.Status != game.StatusResolved || res.Winner != "a" || res.Damage != 60 {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolve_TieGoesToSecondEntity(t *testing.T) {
	a := entity("a", game.TypeNormal, game.TypeNone, 80, nil)
	b := entity("b", game.TypeNormal, game.TypeNone, 80, nil)
	out := New(time.Millisecond, WithSleep(func(time.Duration) {})).Resolve(a, b)
	if out.Rounds[0].Score != out.Rounds[1].Score {
		t.Fatalf("expected equal round scores, got %+v", out.Rounds)
	}
	if out.Winner != "b" {
		t.Fatalf("expected tie to go to b, got %s", out.Winner)
	}
}

func TestResolve_FirstRoundFailureSkipsSecond(t *testing.T) {
	a := entity("a", game.TypeFire, game.TypeNone, 100, nil)
	b := entity("b", game.TypeWater, game.TypeNone, 60, nil)
	delete(b.Resistances, game.TypeFire)
	cs := &countingSleep{}

	out := New(time.Second, WithSleep(cs.sleep)).Resolve(a, b)

	if out.Status != game.StatusFailed || !errors.Is(out.Err, ErrResolution) {
		t.Fatalf("expected failed outcome, got %s (%v)", out.Status, out.Err)
	}
	// The failed round still takes its delay; the second round never runs.
	if len(out.Rounds) != 0 || cs.calls != 1 || cs.total != time.Second {
		t.Fatalf("expected one delayed round only: rounds=%d sleeps=%d (%v)", len(out.Rounds), cs.calls, cs.total)
	}
	res := out.Resolution()
	if res.Status != game.StatusFailed || res.Winner != "" || res.Damage != 0 {
		t.Fatalf("failed resolution must not carry a result: %+v", res)
	}
}

func TestResolve_SecondRoundFailure(t *testing.T) {
	a := entity("a", game.TypeFire, game.TypeNone, 100, nil)
	b := entity("b", game.TypeWater, game.TypeIce, 60, nil)
	delete(a.Resistances, game.TypeIce)
	cs := &countingSleep{}

	out := New(time.Second, WithSleep(cs.sleep)).Resolve(a, b)

	if out.Status != game.StatusFailed {
		t.Fatalf("expected failed, got %s", out.Status)
	}
	if len(out.Rounds) != 1 || cs.calls != 2 {
		t.Fatalf("expected round one scored and both rounds delayed: rounds=%d sleeps=%d", len(out.Rounds), cs.calls)
	}
}

func TestNew_DefaultDelay(t *testing.T) {
	if d := New(0).RoundDelay(); d != DefaultRoundDelay {
		t.Fatalf("expected default delay, got %v", d)
	}
}
