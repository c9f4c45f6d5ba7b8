// Package ids hands out record identifiers. Each record kind owns its own
// Sequence; battle ids are random tokens.
package ids

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrExhausted is returned once a Sequence has handed out all of its values.
var ErrExhausted = errors.New("id sequence exhausted")

// DefaultMax matches the largest catalog the service expects to hold.
const DefaultMax uint64 = 1_000_000

// Sequence produces strictly increasing integers starting at 0. A value is
// consumed on every successful call and never handed out again.
type Sequence struct {
	mu   sync.Mutex
	next uint64
	max  uint64
}

// NewSequence returns a sequence that yields 0..max-1. A zero max uses
// DefaultMax.
func NewSequence(max uint64) *Sequence {
	if max == 0 {
		max = DefaultMax
	}
	return &Sequence{max: max}
}

// Next returns the next unused value.
func (s *Sequence) Next() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= s.max {
		return 0, fmt.Errorf("%w (max %d)", ErrExhausted, s.max)
	}
	v := s.next
	s.next++
	return v, nil
}

// Issued returns how many values have been handed out.
func (s *Sequence) Issued() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// NewToken returns a random 128-bit token in canonical UUID text form.
func NewToken() string {
	return uuid.NewString()
}

// ParseToken validates s and returns its canonical form.
func ParseToken(s string) (string, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
