package nats

import (
	"context"
	"os"
	"testing"
	"time"

	"notes-app/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "notes.NOTE_CREATED", Subject(events.NoteCreated))
	assert.Equal(t, "notes.NOTES_RESET", Subject(events.NotesReset))
}

func TestPublisherIntegration(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("Skipping integration test: NATS_URL not set")
	}

	pub, err := NewPublisher(url)
	require.NoError(t, err)
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = pub.Publish(ctx, events.BaseEvent{
		Type:       events.NoteCreated,
		Data:       map[string]interface{}{"note_id": 1},
		OccurredAt: time.Now(),
	})
	assert.NoError(t, err)
}
