// Package roster holds the in-memory player store. All mutations are
// synchronous and return the updated snapshot; persistence is a separate,
// explicit step taken by the caller.
package roster

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"clubfin/internal/core"
)

// Snapshot is an immutable copy of the full roster, in display order.
type Snapshot struct {
	Players []core.Player `json:"players"`
}

// Store owns the player records. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	players []core.Player
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// NewFromSnapshot creates a store seeded with a previously saved snapshot.
func NewFromSnapshot(snap Snapshot) *Store {
	s := &Store{}
	s.players = clonePlayers(snap.Players)
	return s
}

// Snapshot returns a deep copy of the current roster.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Players: clonePlayers(s.players)}
}

// AddPlayers creates one player per name, in input order, each with a fresh
// id, joinDate = now, and a full unpaid payment sequence. Returns the new
// snapshot and the names actually added.
func (s *Store) AddPlayers(names []string, now time.Time) (Snapshot, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s.players = append(s.players, core.Player{
			ID:       uuid.NewString(),
			Name:     name,
			JoinDate: core.DateOf(now),
			Payments: core.SeedPayments(now.Year()),
		})
		added = append(added, name)
	}
	return Snapshot{Players: clonePlayers(s.players)}, added
}

// RegisterPayments marks the month's record paid with the given method for
// every player whose name matches case-insensitively. Names that match no
// player and months that match no record are silently skipped. Returns the
// new snapshot and how many records changed.
func (s *Store) RegisterPayments(names []string, month string, method core.PaymentMethod) (Snapshot, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for i := range s.players {
		if !matchesAny(s.players[i], names) {
			continue
		}
		if pay := s.players[i].PaymentFor(month); pay != nil {
			pay.Paid = true
			pay.Method = method
			updated++
		}
	}
	return Snapshot{Players: clonePlayers(s.players)}, updated
}

// RemovePlayer deletes the first player whose name matches
// case-insensitively. The removal is permanent; there is no undo.
func (s *Store) RemovePlayer(name string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.players {
		if s.players[i].NameEquals(name) {
			s.players = append(s.players[:i], s.players[i+1:]...)
			return Snapshot{Players: clonePlayers(s.players)}, true
		}
	}
	return Snapshot{Players: clonePlayers(s.players)}, false
}

func matchesAny(p core.Player, names []string) bool {
	for _, name := range names {
		if p.NameEquals(name) {
			return true
		}
	}
	return false
}

func clonePlayers(in []core.Player) []core.Player {
	out := make([]core.Player, len(in))
	for i, p := range in {
		out[i] = p
		out[i].Payments = append([]core.Payment(nil), p.Payments...)
	}
	return out
}
