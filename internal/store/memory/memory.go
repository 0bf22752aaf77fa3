// internal/store/memory/memory.go

// Package memory is a process-local document store.
// It backs dry runs (STORE_BACKEND=memory) and tests.
package memory

import (
	"context"
	"sync"

	"github.com/yug2601/plc/internal/store"
)

// Store keeps one document in memory and counts writes.
type Store struct {
	mu      sync.Mutex
	doc     map[string]interface{}
	sets    int
	updates int
}

func New() *Store {
	return &Store{}
}

func (s *Store) Set(_ context.Context, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = copyFields(fields)
	s.sets++
	return nil
}

func (s *Store) Update(_ context.Context, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return store.ErrNotFound
	}
	for k, v := range fields {
		s.doc[k] = v
	}
	s.updates++
	return nil
}

func (s *Store) Close() error { return nil }

// Document returns a copy of the stored document, nil if never set.
func (s *Store) Document() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil
	}
	return copyFields(s.doc)
}

// Writes returns how many Set and Update calls succeeded.
func (s *Store) Writes() (sets, updates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets, s.updates
}

func copyFields(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
