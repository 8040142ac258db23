package dto

import "time"

// NoteEventMessage is the payload carried on the event bus and pushed to
// change feed subscribers.
type NoteEventMessage struct {
	EventId    string        `json:"event_id"`
	Type       string        `json:"type"`
	NoteId     int64         `json:"note_id,omitempty"`
	Note       *NoteResponse `json:"note,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
