// Package memory is an in-memory storage.TruthStore for tests and the
// daemon's storage-less mode.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nugen/evgb/internal/storage"
)

// Store is an in-memory implementation of TruthStore. Events are copied on
// save and on read.
type Store struct {
	mu     sync.RWMutex
	events map[string]*storage.EventTruth
}

var _ storage.TruthStore = (*Store)(nil)

// New creates a new in-memory store
func New() *Store {
	return &Store{
		events: make(map[string]*storage.EventTruth),
	}
}

func clone(e *storage.EventTruth) *storage.EventTruth {
	c := *e
	c.MCTruth = e.MCTruth.Clone()
	gt := *e.GTruth
	c.GTruth = &gt
	if e.MCFlux != nil {
		flux := *e.MCFlux
		c.MCFlux = &flux
	}
	return &c
}

func (s *Store) SaveEvent(ctx context.Context, e *storage.EventTruth) error {
	if err := e.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.events[e.ID]; ok {
		e.CreatedAt = prev.CreatedAt
	} else if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.events[e.ID] = clone(e)
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*storage.EventTruth, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return clone(e), nil
}

func (s *Store) ListEvents(ctx context.Context, opts storage.ListOptions) ([]*storage.EventSummary, error) {
	s.mu.RLock()
	result := make([]*storage.EventSummary, 0, len(s.events))
	for _, e := range s.events {
		if opts.Run != nil && e.Run != *opts.Run {
			continue
		}
		result = append(result, e.Summary())
	}
	s.mu.RUnlock()

	slices.SortFunc(result, func(a, b *storage.EventSummary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	start := opts.Offset
	if start >= len(result) {
		return []*storage.EventSummary{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = storage.DefaultListLimit
	}
	end := min(start+limit, len(result))
	return result[start:end], nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	delete(s.events, id)
	return nil
}

func (s *Store) Close() error {
	return nil
}
