package events

import (
	"encoding/json"
	"time"
)

// Event types published after roster mutations.
const (
	TypePlayerAdded       = "player_added"
	TypePaymentRegistered = "payment_registered"
	TypePlayerDeleted     = "player_deleted"
)

// RosterEvent is the message mirrored to the treasurer's sheet: which
// mutation happened and to whom. The worker formats it into an audit row.
type RosterEvent struct {
	Type      string    `json:"type"`
	Names     []string  `json:"names"`
	Month     string    `json:"month,omitempty"`
	Method    string    `json:"method,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRosterEvent creates an event stamped with the current time.
func NewRosterEvent(eventType string, names []string, month, method string) *RosterEvent {
	return &RosterEvent{
		Type:      eventType,
		Names:     names,
		Month:     month,
		Method:    method,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes for publishing.
func (e *RosterEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RosterEventFromJSON decodes an event from a consumed delivery body.
func RosterEventFromJSON(data []byte) (*RosterEvent, error) {
	var ev RosterEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
