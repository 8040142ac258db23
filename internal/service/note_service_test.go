package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"notes-app/internal/dto"
	"notes-app/internal/pkg/apperror"
	"notes-app/internal/pkg/logger"
	"notes-app/internal/repository/memory"
	"notes-app/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []dto.NoteEventMessage
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	var msg dto.NoteEventMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.messages))
	for i, m := range p.messages {
		out[i] = m.Type
	}
	return out
}

func newTestNoteService(pub IPublisherService) INoteService {
	return NewNoteService(memory.NewNoteRepository(), pub, logger.NewNopLogger())
}

func strPtr(s string) *string { return &s }

func TestNoteServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := newTestNoteService(pub)

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "A", Body: "B"})
	require.NoError(t, err)
	assert.NotZero(t, created.Id)

	shown, err := svc.Show(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "A", shown.Title)
	assert.Equal(t, "B", shown.Body)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := svc.Update(ctx, &dto.UpdateNoteRequest{Id: created.Id, Title: strPtr("t2")})
	require.NoError(t, err)
	assert.Equal(t, "t2", updated.Title)
	assert.Equal(t, "B", updated.Body)

	require.NoError(t, svc.Delete(ctx, created.Id))

	_, err = svc.Show(ctx, created.Id)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	assert.Equal(t, []string{events.NoteCreated, events.NoteUpdated, events.NoteDeleted}, pub.types())
}

func TestNoteServiceNotFoundPublishesNothing(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := newTestNoteService(pub)

	_, err := svc.Update(ctx, &dto.UpdateNoteRequest{Id: 999, Title: strPtr("x")})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	err = svc.Delete(ctx, 999)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	assert.Empty(t, pub.types())
}

func TestNoteServiceReset(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := newTestNoteService(pub)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "x", Body: "y"})
		require.NoError(t, err)
	}
	require.NoError(t, svc.Reset(ctx))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "x", Body: "y"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Id)
}

func TestNoteServicePublishFailureDoesNotFailRequest(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("bus down")}
	svc := newTestNoteService(pub)

	created, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Title: "A", Body: "B"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Id)
}

func TestNoteServiceWithoutPublisher(t *testing.T) {
	svc := NewNoteService(memory.NewNoteRepository(), nil, logger.NewNopLogger())

	_, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Title: "A", Body: "B"})
	assert.NoError(t, err)
}
