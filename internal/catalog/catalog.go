// Package catalog holds the creature catalog: a write-once, read-many
// mapping from normalized name to entity record.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/game"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/ids"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/keys"
)

// ErrAlreadyLoaded is wrapped in the ValidationError returned by a second Load.
var ErrAlreadyLoaded = errors.New("catalog already loaded")

// Record is an unvalidated entity definition handed to Load.
type Record struct {
	Name        string
	Type1       string
	Type2       string
	Attack      float64
	Resistances map[string]float64
}

type snapshot struct {
	byName map[string]game.Entity
	order  []string
}

// Catalog is safe for concurrent use. Reads never lock: Load publishes a
// fully built snapshot atomically.
type Catalog struct {
	seq    *ids.Sequence
	loadMu sync.Mutex
	snap   atomic.Pointer[snapshot]
}

// New returns an empty catalog that draws entity ids from seq.
func New(seq *ids.Sequence) *Catalog {
	if seq == nil {
		seq = ids.NewSequence(0)
	}
	return &Catalog{seq: seq}
}

// Load validates every record and populates the catalog. Nothing is
// published unless all records are valid. Load may succeed only once.
func (c *Catalog) Load(records []Record) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	if c.snap.Load() != nil {
		return &game.ValidationError{Record: -1, Reason: ErrAlreadyLoaded.Error()}
	}

	s := &snapshot{
		byName: make(map[string]game.Entity, len(records)),
		order:  make([]string, 0, len(records)),
	}
	for i, r := range records {
		e, err := buildEntity(i, r)
		if err != nil {
			return err
		}
		key := keys.NormalizeName(e.Name)
		if _, dup := s.byName[key]; dup {
			return &game.ValidationError{Record: i, Name: r.Name, Field: "name", Reason: "duplicate name"}
		}
		id, err := c.seq.Next()
		if err != nil {
			return fmt.Errorf("allocate entity id: %w", err)
		}
		e.ID = id
		e.Name = key
		s.byName[key] = e
		s.order = append(s.order, key)
	}
	c.snap.Store(s)
	return nil
}

func buildEntity(i int, r Record) (game.Entity, error) {
	invalid := func(field, reason string) error {
		return &game.ValidationError{Record: i, Name: r.Name, Field: field, Reason: reason}
	}
	if keys.NormalizeName(r.Name) == "" {
		return game.Entity{}, invalid("name", "missing")
	}
	t1, err := game.ParseType(r.Type1)
	if err != nil {
		return game.Entity{}, invalid("type1", err.Error())
	}
	if t1 == game.TypeNone {
		return game.Entity{}, invalid("type1", "missing")
	}
	t2, err := game.ParseType(r.Type2)
	if err != nil {
		return game.Entity{}, invalid("type2", err.Error())
	}
	if r.Attack < 0 || math.IsNaN(r.Attack) || math.IsInf(r.Attack, 0) {
		return game.Entity{}, invalid("attack", "must be a non-negative number")
	}

	table := make(game.ResistanceTable, len(game.Types))
	for name, v := range r.Resistances {
		t, err := game.ParseType(name)
		if err != nil || t == game.TypeNone {
			return game.Entity{}, invalid("against_"+name, "unknown type")
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return game.Entity{}, invalid("against_"+name, "must be a non-negative number")
		}
		table[t] = v
	}
	if missing := table.Missing(); len(missing) > 0 {
		return game.Entity{}, invalid("against_"+string(missing[0]), "missing resistance entry")
	}

	return game.Entity{
		Name:          r.Name,
		PrimaryType:   t1,
		SecondaryType: t2,
		AttackPower:   r.Attack,
		Resistances:   table,
	}, nil
}

func (c *Catalog) current() *snapshot {
	if s := c.snap.Load(); s != nil {
		return s
	}
	return &snapshot{}
}

// Lookup returns the entity stored under the normalized form of name. The
// returned record owns its own resistance table.
func (c *Catalog) Lookup(name string) (game.Entity, error) {
	e, ok := c.current().byName[keys.NormalizeName(name)]
	if !ok {
		return game.Entity{}, fmt.Errorf("pokemon %q: %w", name, game.ErrNotFound)
	}
	e.Resistances = e.Resistances.Clone()
	return e, nil
}

// Count returns the number of loaded entities.
func (c *Catalog) Count() int {
	return len(c.current().order)
}

// ListNames returns every name in load order.
func (c *Catalog) ListNames() []string {
	order := c.current().order
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Page returns the names on a one-based page along with the catalog size.
// Pages past the end are empty.
func (c *Catalog) Page(page, perPage int) ([]string, int) {
	order := c.current().order
	total := len(order)
	if page < 1 || perPage < 1 || page-1 > total/perPage {
		return []string{}, total
	}
	start := (page - 1) * perPage
	if start >= total {
		return []string{}, total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	out := make([]string, end-start)
	copy(out, order[start:end])
	return out, total
}
