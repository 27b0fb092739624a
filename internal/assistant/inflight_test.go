package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"

	"clubfin/internal/roster"
)

type blockingAssistant struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingAssistant) Chat(ctx context.Context, prompt string, snap roster.Snapshot) (Reply, error) {
	close(b.entered)
	<-b.release
	return Reply{Text: "listo"}, nil
}

func TestSingleFlightRejectsOverlap(t *testing.T) {
	inner := &blockingAssistant{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	guard := NewSingleFlight(inner)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		reply, err := guard.Chat(context.Background(), "hola", roster.Snapshot{})
		if err != nil {
			t.Errorf("First request failed: %v", err)
		}
		if reply.Text != "listo" {
			t.Errorf("Unexpected reply %q", reply.Text)
		}
	}()

	<-inner.entered
	_, err := guard.Chat(context.Background(), "hola de nuevo", roster.Snapshot{})
	if !errors.Is(err, ErrRequestInFlight) {
		t.Errorf("Expected ErrRequestInFlight, got %v", err)
	}

	close(inner.release)
	wg.Wait()
}

type cannedAssistant struct{ reply Reply }

func (c *cannedAssistant) Chat(ctx context.Context, prompt string, snap roster.Snapshot) (Reply, error) {
	return c.reply, nil
}

func TestSingleFlightReleasesSlot(t *testing.T) {
	guard := NewSingleFlight(&cannedAssistant{reply: Reply{Text: "ok"}})

	for i := 0; i < 3; i++ {
		if _, err := guard.Chat(context.Background(), "hola", roster.Snapshot{}); err != nil {
			t.Fatalf("Sequential request %d failed: %v", i, err)
		}
	}
}
