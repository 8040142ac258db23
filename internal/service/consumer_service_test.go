package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"notes-app/internal/dto"
	"notes-app/internal/pkg/logger"
	"notes-app/internal/repository/memory"
	"notes-app/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []dto.NoteEventMessage
	err    error
}

func (s *recordingSink) HandleNoteEvent(ctx context.Context, evt *dto.NoteEventMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *evt)
	return s.err
}

func (s *recordingSink) snapshot() []dto.NoteEventMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dto.NoteEventMessage(nil), s.events...)
}

func TestConsumerDeliversServiceEventsToSinks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := NewNoteEventBus(watermill.NopLogger{})
	defer pubSub.Close()

	const topic = "note_events_test"
	first := &recordingSink{}
	failing := &recordingSink{err: errors.New("sink down")}

	consumer := NewConsumerService(pubSub, topic, logger.NewNopLogger(), failing, first)
	require.NoError(t, consumer.Consume(ctx))

	svc := NewNoteService(memory.NewNoteRepository(), NewPublisherService(topic, pubSub), logger.NewNopLogger())
	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "A", Body: "B"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.Id))

	require.Eventually(t, func() bool { return len(first.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	got := first.snapshot()
	assert.Equal(t, events.NoteCreated, got[0].Type)
	assert.Equal(t, created.Id, got[0].NoteId)
	require.NotNil(t, got[0].Note)
	assert.Equal(t, "A", got[0].Note.Title)
	assert.NotEmpty(t, got[0].EventId)

	assert.Equal(t, events.NoteDeleted, got[1].Type)
	assert.Nil(t, got[1].Note)

	// A failing sink still sees every event and does not block the others.
	assert.Len(t, failing.snapshot(), 2)
}

func TestConsumerSkipsUndecodableMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := NewNoteEventBus(watermill.NopLogger{})
	defer pubSub.Close()

	const topic = "note_events_garbage"
	sink := &recordingSink{}
	require.NoError(t, NewConsumerService(pubSub, topic, logger.NewNopLogger(), sink).Consume(ctx))

	require.NoError(t, pubSub.Publish(topic, message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	require.NoError(t, NewPublisherService(topic, pubSub).Publish(ctx, []byte(`{"type":"NOTE_DELETED","note_id":4}`)))

	require.Eventually(t, func() bool { return len(sink.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(4), sink.snapshot()[0].NoteId)
}

func TestConsumerPreservesMutationOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := NewNoteEventBus(watermill.NopLogger{})
	defer pubSub.Close()

	const topic = "note_events_order"
	sink := &recordingSink{}
	require.NoError(t, NewConsumerService(pubSub, topic, logger.NewNopLogger(), sink).Consume(ctx))

	svc := NewNoteService(memory.NewNoteRepository(), NewPublisherService(topic, pubSub), logger.NewNopLogger())

	const pairs = 300
	for i := 0; i < pairs; i++ {
		created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "T", Body: "B"})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, created.Id))
	}

	require.Eventually(t, func() bool { return len(sink.snapshot()) == 2*pairs }, 5*time.Second, 5*time.Millisecond)

	got := sink.snapshot()
	for i := 0; i < pairs; i++ {
		id := int64(i + 1)
		create, remove := got[2*i], got[2*i+1]
		require.Equal(t, events.NoteCreated, create.Type, "event %d", 2*i)
		require.Equal(t, id, create.NoteId)
		require.Equal(t, events.NoteDeleted, remove.Type, "event %d", 2*i+1)
		require.Equal(t, id, remove.NoteId)
	}
}
