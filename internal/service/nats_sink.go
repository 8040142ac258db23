package service

import (
	"context"

	"notes-app/internal/dto"
	"notes-app/pkg/events"
)

// EventPublisher is satisfied by the NATS JetStream publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type natsSink struct {
	publisher EventPublisher
}

// NewNatsSink forwards note events to an external event bus.
func NewNatsSink(publisher EventPublisher) NoteEventSink {
	return &natsSink{publisher: publisher}
}

func (s *natsSink) HandleNoteEvent(ctx context.Context, evt *dto.NoteEventMessage) error {
	data := map[string]interface{}{
		"event_id": evt.EventId,
	}
	if evt.NoteId != 0 {
		data["note_id"] = evt.NoteId
	}
	if evt.Note != nil {
		data["note"] = evt.Note
	}

	return s.publisher.Publish(ctx, events.BaseEvent{
		Type:       evt.Type,
		Data:       data,
		OccurredAt: evt.OccurredAt,
	})
}
