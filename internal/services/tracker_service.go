package services

import (
	"context"
	"log/slog"

	"clubfin/internal/actions"
	"clubfin/internal/events"
	"clubfin/internal/roster"
)

// EventPublisher is the slice of the events client the tracker needs.
type EventPublisher interface {
	PublishRosterEvent(ctx context.Context, ev *events.RosterEvent) error
}

// TrackerService ties a dispatched intent to its side effects: persist the
// new snapshot, then publish the mutation event. Mutations stay in memory
// even when either side effect fails; durability is best effort.
type TrackerService struct {
	dispatcher *actions.Dispatcher
	repo       roster.SnapshotRepository
	publisher  EventPublisher
}

// NewTrackerService creates the service. repo and publisher may be nil;
// the corresponding side effect is then skipped.
func NewTrackerService(dispatcher *actions.Dispatcher, repo roster.SnapshotRepository, publisher EventPublisher) *TrackerService {
	return &TrackerService{
		dispatcher: dispatcher,
		repo:       repo,
		publisher:  publisher,
	}
}

// Handle dispatches the intent and runs the persistence and publishing
// steps for accepted mutations. The returned confirmation is always valid,
// whatever happens at the I/O boundaries.
func (s *TrackerService) Handle(ctx context.Context, intent actions.Intent) actions.Result {
	res := s.dispatcher.Dispatch(intent)
	if !res.Mutated {
		return res
	}

	s.persist(ctx, res.Snapshot)
	s.publish(ctx, intent, res)
	return res
}

func (s *TrackerService) persist(ctx context.Context, snap roster.Snapshot) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		// Logged and dropped: the in-memory roster stays authoritative.
		slog.ErrorContext(ctx, "Failed to persist roster snapshot",
			"error", err,
			"players", len(snap.Players))
	}
}

func (s *TrackerService) publish(ctx context.Context, intent actions.Intent, res actions.Result) {
	if s.publisher == nil {
		return
	}

	var ev *events.RosterEvent
	switch intent.Kind {
	case actions.KindAddPlayers:
		ev = events.NewRosterEvent(events.TypePlayerAdded, intent.AddPlayers.PlayerNames, "", "")
	case actions.KindRegisterPayments:
		args := intent.RegisterPayments
		ev = events.NewRosterEvent(events.TypePaymentRegistered, args.PlayerNames, args.Month, string(args.Method))
	case actions.KindDeletePlayer:
		ev = events.NewRosterEvent(events.TypePlayerDeleted, []string{intent.DeletePlayer.PlayerName}, "", "")
	default:
		return
	}

	if err := s.publisher.PublishRosterEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish roster event",
			"error", err,
			"type", ev.Type)
	}
}
