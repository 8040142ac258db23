package service

import (
	"context"
	"encoding/json"
	"time"

	"notes-app/internal/dto"
	"notes-app/internal/entity"
	"notes-app/internal/mapper"
	"notes-app/internal/pkg/logger"
	"notes-app/internal/repository/contract"
	"notes-app/pkg/events"

	"github.com/google/uuid"
)

const noteServiceModule = "NoteService"

type INoteService interface {
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, id int64) (*dto.NoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id int64) error
	// Reset empties the store. Test isolation only; no route exposes it.
	Reset(ctx context.Context) error
}

type noteService struct {
	noteRepository   contract.NoteRepository
	publisherService IPublisherService
	mapper           *mapper.NoteMapper
	logger           logger.ILogger
}

func NewNoteService(
	noteRepository contract.NoteRepository,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		noteRepository:   noteRepository,
		publisherService: publisherService,
		mapper:           mapper.NewNoteMapper(),
		logger:           log,
	}
}

func (s *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	note := entity.Note{
		Title: req.Title,
		Body:  req.Body,
	}

	if err := s.noteRepository.Create(ctx, &note); err != nil {
		return nil, err
	}

	res := s.mapper.ToResponse(&note)
	s.publish(ctx, events.NoteCreated, note.Id, res)

	return res, nil
}

func (s *noteService) List(ctx context.Context) ([]*dto.NoteResponse, error) {
	notes, err := s.noteRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResponses(notes), nil
}

func (s *noteService) Show(ctx context.Context, id int64) (*dto.NoteResponse, error) {
	note, err := s.noteRepository.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	note, err := s.noteRepository.Update(ctx, req.Id, s.mapper.ToPatch(req))
	if err != nil {
		return nil, err
	}

	res := s.mapper.ToResponse(note)
	s.publish(ctx, events.NoteUpdated, note.Id, res)

	return res, nil
}

func (s *noteService) Delete(ctx context.Context, id int64) error {
	if err := s.noteRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.NoteDeleted, id, nil)
	return nil
}

func (s *noteService) Reset(ctx context.Context) error {
	if err := s.noteRepository.Reset(ctx); err != nil {
		return err
	}

	s.publish(ctx, events.NotesReset, 0, nil)
	return nil
}

// publish emits a change event. Failures are logged and never fail the
// request.
func (s *noteService) publish(ctx context.Context, eventType string, noteId int64, note *dto.NoteResponse) {
	if s.publisherService == nil {
		return
	}

	payload, err := json.Marshal(dto.NoteEventMessage{
		EventId:    uuid.NewString(),
		Type:       eventType,
		NoteId:     noteId,
		Note:       note,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error(noteServiceModule, "Failed to encode note event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
		return
	}

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn(noteServiceModule, "Failed to publish note event", map[string]interface{}{
			"type":    eventType,
			"note_id": noteId,
			"error":   err.Error(),
		})
	}
}
