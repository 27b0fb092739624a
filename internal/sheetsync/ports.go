package sheetsync

import (
	"context"

	"clubfin/internal/events"
)

// Ports for outbound adapters.
type (
	// AuditWriter appends a roster mutation to the treasurer's audit log.
	AuditWriter interface {
		Append(ctx context.Context, ev *events.RosterEvent) (rowRef string, err error)
	}
)
