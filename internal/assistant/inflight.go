package assistant

import (
	"context"
	"sync/atomic"

	"clubfin/internal/roster"
)

// SingleFlight wraps an Assistant and rejects overlapping requests with
// ErrRequestInFlight instead of queueing them. The roster has a single
// operator; a second concurrent prompt is almost always a double submit.
type SingleFlight struct {
	inner Assistant
	busy  atomic.Bool
}

func NewSingleFlight(inner Assistant) *SingleFlight {
	return &SingleFlight{inner: inner}
}

func (s *SingleFlight) Chat(ctx context.Context, prompt string, snap roster.Snapshot) (Reply, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Reply{}, ErrRequestInFlight
	}
	defer s.busy.Store(false)
	return s.inner.Chat(ctx, prompt, snap)
}
