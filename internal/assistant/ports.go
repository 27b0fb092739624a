package assistant

import (
	"context"
	"errors"

	"clubfin/internal/actions"
	"clubfin/internal/roster"
)

// ErrRequestInFlight is returned when a chat request arrives while a
// previous one is still being answered.
var ErrRequestInFlight = errors.New("assistant: a request is already in flight")

// Reply is the assistant's answer to a prompt. Exactly one of Text or
// Intent is set: conversational answers carry Text, tool calls carry a
// parsed Intent for the dispatcher.
type Reply struct {
	Text   string
	Intent *actions.Intent
}

// IsAction reports whether the reply requests a roster operation.
func (r Reply) IsAction() bool {
	return r.Intent != nil
}

// Assistant translates a natural language prompt into a Reply given the
// current roster state.
type Assistant interface {
	Chat(ctx context.Context, prompt string, snap roster.Snapshot) (Reply, error)
}
