package implementation

import (
	"context"
	"errors"
	"fmt"

	"notes-app/internal/entity"
	"notes-app/internal/mapper"
	"notes-app/internal/model"
	"notes-app/internal/repository/contract"
	"notes-app/internal/repository/specification"

	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	if note == nil {
		return fmt.Errorf("create note: nil note")
	}

	m := r.mapper.ToModel(note)
	m.Id = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	note.Id = m.Id
	return nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specification.InsertionOrder{})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) FindById(ctx context.Context, id int64) (*entity.Note, error) {
	m, err := r.findOne(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("note %d: %w", id, contract.ErrNoteNotFound)
	}
	return r.mapper.ToEntity(m), nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, id int64, patch entity.NotePatch) (*entity.Note, error) {
	var updated *entity.Note
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := r.findOne(tx, specification.ByID{ID: id})
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("note %d: %w", id, contract.ErrNoteNotFound)
		}

		note := r.mapper.ToEntity(m)
		note.Apply(patch)

		next := r.mapper.ToModel(note)
		next.CreatedAt = m.CreatedAt
		if err := tx.Save(next).Error; err != nil {
			return err
		}
		updated = note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Note{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("note %d: %w", id, contract.ErrNoteNotFound)
	}
	return nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Note{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Reset empties the table and restarts the AUTOINCREMENT sequence.
func (r *NoteRepositoryImpl) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", model.Note{}.TableName()).Error
	})
}

func (r *NoteRepositoryImpl) findOne(db *gorm.DB, specs ...specification.Specification) (*model.Note, error) {
	var m model.Note
	if err := r.applySpecifications(db, specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
