// Package memory provides an in-memory SlotStore.
// It backs tests and serves as the degraded fallback when the sqlite
// store cannot open, so the journey still works for the session.
package memory

import (
	"sync"

	"github.com/quietpath/ripple/internal/core/ports/driven"
)

var _ driven.SlotStore = (*SlotStore)(nil)

// SlotStore holds slots in a map. Contents vanish with the process.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string]string

	// FailWrites makes Set and Remove report failure. Tests use this to
	// exercise storage-failure containment.
	FailWrites bool
}

// New creates an empty in-memory store.
func New() *SlotStore {
	return &SlotStore{slots: make(map[string]string)}
}

// Get returns the payload for the slot.
func (s *SlotStore) Get(slot string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.slots[slot]
	return payload, ok
}

// Set stores the payload.
func (s *SlotStore) Set(slot, payload string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return false
	}
	s.slots[slot] = payload
	return true
}

// Remove deletes the slot. Removing an absent slot succeeds.
func (s *SlotStore) Remove(slot string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return false
	}
	delete(s.slots, slot)
	return true
}

// Close is a no-op.
func (s *SlotStore) Close() error {
	return nil
}
