package storeapi

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a request that a newer request with the same
// key replaced before it completed.
var ErrSuperseded = errors.New("storeapi: request superseded")

// Sequencer orders requests that refresh the same view. Starting a request
// for a key cancels the one already in flight for that key, and only the
// newest request for a key may deliver its result.
type Sequencer struct {
	mu    sync.Mutex
	next  uint64
	slots map[string]*slot
}

type slot struct {
	gen    uint64
	cancel context.CancelFunc
}

// Ticket identifies one request generation. Generations are unique across
// keys and never reused.
type Ticket struct {
	s      *Sequencer
	key    string
	gen    uint64
	cancel context.CancelFunc
}

func NewSequencer() *Sequencer {
	return &Sequencer{slots: make(map[string]*slot)}
}

// Begin starts a new generation for key and returns a context that is
// cancelled when a later Begin for the same key supersedes it.
func (s *Sequencer) Begin(ctx context.Context, key string) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[key]
	if !ok {
		sl = &slot{}
		s.slots[key] = sl
	} else if sl.cancel != nil {
		sl.cancel()
	}
	s.next++
	sl.gen = s.next
	sl.cancel = cancel

	return ctx, &Ticket{s: s, key: key, gen: sl.gen, cancel: cancel}
}

// Current reports whether no newer generation has started for the key.
func (t *Ticket) Current() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	sl, ok := t.s.slots[t.key]
	return ok && sl.gen == t.gen
}

// Done releases the ticket's context and forgets the key if this ticket is
// still the newest.
func (t *Ticket) Done() {
	t.cancel()

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if sl, ok := t.s.slots[t.key]; ok && sl.gen == t.gen {
		delete(t.s.slots, t.key)
	}
}

// Latest runs fn under a new generation of key. If a newer call for the same
// key started meanwhile, the result is discarded and ErrSuperseded returned.
func Latest[T any](ctx context.Context, s *Sequencer, key string, fn func(context.Context) (T, error)) (T, error) {
	ctx, ticket := s.Begin(ctx, key)
	defer ticket.Done()

	v, err := fn(ctx)
	if !ticket.Current() {
		var zero T
		return zero, ErrSuperseded
	}
	return v, err
}
