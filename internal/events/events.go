package events

import "encoding/json"

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types published on the lifecycle channel.
const (
	TypeSessionStarted   = "session_started"
	TypeSessionFinished  = "session_finished"
	TypeSessionRestarted = "session_restarted"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// SessionStartedPayload is the payload for the "session_started" event.
type SessionStartedPayload struct {
	SessionID string `json:"session_id"`
}

// SessionFinishedPayload is the payload for the "session_finished" event.
type SessionFinishedPayload struct {
	SessionID  string `json:"session_id"`
	Status     string `json:"status"`
	WinnerName string `json:"winner_name,omitempty"`
	Moves      int    `json:"moves"`
}

// SessionRestartedPayload is the payload for the "session_restarted" event.
type SessionRestartedPayload struct {
	SessionID string `json:"session_id"`
}

// Marshal wraps a payload into a serialized Event.
func Marshal(eventType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: eventType, Payload: raw})
}
