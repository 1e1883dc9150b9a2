package storage

import "time"

// Outcome classifies how a turn ended.
const (
	KindChat     = "chat"
	KindCrisis   = "crisis"
	KindRejected = "rejected"
	KindFailed   = "failed"
)

// Event is one turn of the transcript: the user's message and, when one
// was produced, the assistant's reply. Events are appended in
// chronological order.
type Event struct {
	Timestamp         time.Time `json:"timestamp"`
	UserID            int64     `json:"user_id"`
	Kind              string    `json:"kind"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response,omitempty"`
}

// Recorder abstracts persistence of transcript events. Implementations
// must be safe for concurrent use; LoadInteractions returns events in
// chronological order.
type Recorder interface {
	AppendInteraction(event Event) error
	LoadInteractions() ([]Event, error)
}
