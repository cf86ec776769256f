package memory

import (
	"context"
	"sort"
	"sync"

	"ledger/internal/core"
)

// Store is an in-memory record store, used for local development and tests.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Record
}

func New() *Store {
	return &Store{nextID: 1}
}

// Append stores the record and assigns a synthetic id.
func (s *Store) Append(_ context.Context, in core.Input) (core.Record, error) {
	if err := in.Validate(); err != nil {
		return core.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := core.Record{
		ID:       s.nextID,
		Amount:   in.Amount,
		Category: in.Category,
		Note:     in.Note,
		Date:     in.Date,
	}
	s.nextID++
	s.items = append(s.items, rec)
	return rec, nil
}

// List returns records newest first.
func (s *Store) List(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.items))
	for i, rec := range s.items {
		out[len(s.items)-1-i] = rec
	}
	return out, nil
}

func (s *Store) Update(_ context.Context, id int64, in core.Input) (core.Record, error) {
	if err := in.Validate(); err != nil {
		return core.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.items {
		if rec.ID == id {
			rec.Amount = in.Amount
			rec.Category = in.Category
			rec.Note = in.Note
			rec.Date = in.Date
			s.items[i] = rec
			return rec, nil
		}
	}
	return core.Record{}, core.ErrRecordNotFound
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.items {
		if rec.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return core.ErrRecordNotFound
}

func (s *Store) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]struct{}{}
	var out []string
	for _, rec := range s.items {
		if _, ok := seen[rec.Category]; ok {
			continue
		}
		seen[rec.Category] = struct{}{}
		out = append(out, rec.Category)
	}
	sort.Strings(out)
	return out, nil
}
