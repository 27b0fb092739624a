package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"clubfin/internal/events"
)

// Store is an in-memory audit log for tests and sheet-less deployments.
type Store struct {
	mu    sync.Mutex
	items []events.RosterEvent
}

func New() *Store {
	return &Store{}
}

// Append stores the event and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, ev *events.RosterEvent) (string, error) {
	if ev == nil {
		return "", errors.New("nil event")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, *ev)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Events returns a copy of everything appended so far.
func (s *Store) Events() []events.RosterEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]events.RosterEvent(nil), s.items...)
}
