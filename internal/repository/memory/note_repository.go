package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"notes-app/internal/entity"
	"notes-app/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// NoteRepository keeps notes in a non-expiring go-cache. The mutex makes
// id assignment and read-modify-write updates atomic across handlers.
type NoteRepository struct {
	mu     sync.Mutex
	cache  *cache.Cache
	nextId int64
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

var _ contract.NoteRepository = (*NoteRepository)(nil)

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	if note == nil {
		return fmt.Errorf("create note: nil note")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextId++
	note.Id = r.nextId
	r.cache.Set(key(note.Id), note.Clone(), cache.NoExpiration)
	return nil
}

func (r *NoteRepository) FindAll(ctx context.Context) ([]*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.cache.Items()
	notes := make([]*entity.Note, 0, len(items))
	for _, item := range items {
		notes = append(notes, item.Object.(*entity.Note).Clone())
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Id < notes[j].Id })
	return notes, nil
}

func (r *NoteRepository) FindById(ctx context.Context, id int64) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.get(id)
	if !ok {
		return nil, fmt.Errorf("note %d: %w", id, contract.ErrNoteNotFound)
	}
	return note.Clone(), nil
}

func (r *NoteRepository) Update(ctx context.Context, id int64, patch entity.NotePatch) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.get(id)
	if !ok {
		return nil, fmt.Errorf("note %d: %w", id, contract.ErrNoteNotFound)
	}

	updated := note.Clone()
	updated.Apply(patch)
	r.cache.Set(key(id), updated, cache.NoExpiration)
	return updated.Clone(), nil
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.get(id); !ok {
		return fmt.Errorf("note %d: %w", id, contract.ErrNoteNotFound)
	}
	r.cache.Delete(key(id))
	return nil
}

func (r *NoteRepository) Count(ctx context.Context) (int64, error) {
	return int64(r.cache.ItemCount()), nil
}

func (r *NoteRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Flush()
	r.nextId = 0
	return nil
}

func (r *NoteRepository) get(id int64) (*entity.Note, bool) {
	x, found := r.cache.Get(key(id))
	if !found {
		return nil, false
	}
	return x.(*entity.Note), true
}
