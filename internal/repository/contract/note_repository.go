package contract

import (
	"context"

	"notes-app/internal/entity"
	"notes-app/internal/pkg/apperror"
)

// ErrNoteNotFound is returned (possibly wrapped) for operations on an id the
// store does not hold.
var ErrNoteNotFound = apperror.ErrNotFound

// NoteRepository is the authoritative id -> Note mapping. Implementations
// hand out copies and never reuse an id until Reset.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindAll(ctx context.Context) ([]*entity.Note, error)
	FindById(ctx context.Context, id int64) (*entity.Note, error)
	Update(ctx context.Context, id int64, patch entity.NotePatch) (*entity.Note, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	Reset(ctx context.Context) error
}
