package service

import (
	"context"
	"testing"
	"time"

	"notes-app/internal/dto"
	"notes-app/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEventPublisher struct {
	published []events.Event
}

func (p *recordingEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func TestNatsSinkMapsEvent(t *testing.T) {
	pub := &recordingEventPublisher{}
	sink := NewNatsSink(pub)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err := sink.HandleNoteEvent(context.Background(), &dto.NoteEventMessage{
		EventId:    "evt-1",
		Type:       events.NoteUpdated,
		NoteId:     5,
		Note:       &dto.NoteResponse{Id: 5, Title: "t2", Body: "b"},
		OccurredAt: at,
	})
	require.NoError(t, err)
	require.Len(t, pub.published, 1)

	evt := pub.published[0]
	assert.Equal(t, events.NoteUpdated, evt.EventType())
	assert.Equal(t, at, evt.Timestamp())
	assert.Equal(t, "evt-1", evt.Payload()["event_id"])
	assert.Equal(t, int64(5), evt.Payload()["note_id"])
	assert.NotNil(t, evt.Payload()["note"])
}

func TestNatsSinkResetHasNoNote(t *testing.T) {
	pub := &recordingEventPublisher{}
	require.NoError(t, NewNatsSink(pub).HandleNoteEvent(context.Background(), &dto.NoteEventMessage{
		EventId: "evt-2",
		Type:    events.NotesReset,
	}))

	payload := pub.published[0].Payload()
	_, hasNote := payload["note"]
	_, hasId := payload["note_id"]
	assert.False(t, hasNote)
	assert.False(t, hasId)
}
