package service

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/engine"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/logging"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/storage"
)

var errLocked = errors.New("database is locked")

// flakyStore fails resolution writes according to fail before passing them
// to the wrapped repository.
type flakyStore struct {
	storage.Repository
	mu    sync.Mutex
	calls []game.BattleStatus
	fail  func(call int, res game.Resolution) error
}

func (f *flakyStore) ApplyResolution(id string, res game.Resolution) error {
	f.mu.Lock()
	f.calls = append(f.calls, res.Status)
	n := len(f.calls)
	f.mu.Unlock()
	if err := f.fail(n, res); err != nil {
		return err
	}
	return f.Repository.ApplyResolution(id, res)
}

func scoringPair() (game.Entity, game.Entity) {
	table := func() game.ResistanceTable {
		t := make(game.ResistanceTable, len(game.Types))
		for _, ty := range game.Types {
			t[ty] = 1
		}
		return t
	}
	a := game.Entity{Name: "a", PrimaryType: game.TypeFire, AttackPower: 100, Resistances: table()}
	b := game.Entity{Name: "b", PrimaryType: game.TypeWater, AttackPower: 60, Resistances: table()}
	return a, b
}

func runOne(t *testing.T, store *flakyStore) game.Battle {
	t.Helper()
	a, b := scoringPair()
	id, err := store.CreateBattle(a.Name, b.Name)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	runner := NewRunner(store, engine.New(time.Millisecond, engine.WithSleep(noSleep)))
	runner.backoff = 0
	runner.Start(id, a, b)
	runner.Wait()
	got, err := store.GetBattle(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	return got
}

func TestRunner_RetriesTransientCommitError(t *testing.T) {
	store := &flakyStore{Repository: storage.NewMemoryRepository(), fail: func(call int, _ game.Resolution) error {
		if call == 1 {
			return errLocked
		}
		return nil
	}}
	got := runOne(t, store)
	// a scores 25 against b's 5
	if got.Status != game.StatusResolved || got.Winner != "a" || got.Damage != 25 {
		t.Fatalf("expected resolved battle after retry, got %+v", got)
	}
	if len(store.calls) != 2 {
		t.Fatalf("expected 2 writes, got %v", store.calls)
	}
}

func TestRunner_FallsBackToFailedWhenResultCannotBeStored(t *testing.T) {
	store := &flakyStore{Repository: storage.NewMemoryRepository(), fail: func(_ int, res game.Resolution) error {
		if res.Status == game.StatusResolved {
			return errLocked
		}
		return nil
	}}
	got := runOne(t, store)
	if got.Status != game.StatusFailed || got.Winner != "" || got.Damage != 0 {
		t.Fatalf("expected failed battle, got %+v", got)
	}
	want := []game.BattleStatus{game.StatusResolved, game.StatusResolved, game.StatusResolved, game.StatusFailed}
	if len(store.calls) != len(want) {
		t.Fatalf("expected writes %v, got %v", want, store.calls)
	}
	for i := range want {
		if store.calls[i] != want[i] {
			t.Fatalf("expected writes %v, got %v", want, store.calls)
		}
	}
}

func TestRunner_DoesNotRetrySettledBattle(t *testing.T) {
	store := &flakyStore{Repository: storage.NewMemoryRepository(), fail: func(int, game.Resolution) error {
		return storage.ErrAlreadyResolved
	}}
	got := runOne(t, store)
	if len(store.calls) != 1 {
		t.Fatalf("expected a single write, got %v", store.calls)
	}
	if got.Status != game.StatusPending {
		t.Fatalf("store should be untouched, got %+v", got)
	}
}

func TestRunner_LogsRoundScoresAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	logging.SetDebug(true)
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
		logging.SetDebug(false)
	})

	store := &flakyStore{Repository: storage.NewMemoryRepository(), fail: func(int, game.Resolution) error { return nil }}
	runOne(t, store)

	out := buf.String()
	if strings.Count(out, `"msg":"round scored"`) != 2 {
		t.Fatalf("expected two round debug lines, got %q", out)
	}
	if !strings.Contains(out, `"attacker":"a"`) || !strings.Contains(out, `"attacker":"b"`) {
		t.Fatalf("expected both attackers logged, got %q", out)
	}
}
