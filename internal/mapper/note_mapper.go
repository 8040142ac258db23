package mapper

import (
	"notes-app/internal/dto"
	"notes-app/internal/entity"
	"notes-app/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var extra map[string]interface{}
	if len(n.Extra) > 0 {
		extra = map[string]interface{}(n.Extra)
	}

	return &entity.Note{
		Id:    n.Id,
		Title: n.Title,
		Body:  n.Body,
		Extra: extra,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var extra datatypes.JSONMap
	if len(n.Extra) > 0 {
		extra = datatypes.JSONMap(n.Extra)
	}

	return &model.Note{
		Id:    n.Id,
		Title: n.Title,
		Body:  n.Body,
		Extra: extra,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) ToResponse(n *entity.Note) *dto.NoteResponse {
	if n == nil {
		return nil
	}
	return &dto.NoteResponse{
		Id:    n.Id,
		Title: n.Title,
		Body:  n.Body,
		Extra: n.Extra,
	}
}

func (m *NoteMapper) ToResponses(notes []*entity.Note) []*dto.NoteResponse {
	responses := make([]*dto.NoteResponse, len(notes))
	for i, n := range notes {
		responses[i] = m.ToResponse(n)
	}
	return responses
}

// ToPatch converts an update request into the store's merge instruction.
func (m *NoteMapper) ToPatch(req *dto.UpdateNoteRequest) entity.NotePatch {
	return entity.NotePatch{
		Title: req.Title,
		Body:  req.Body,
		Extra: req.Extra,
	}
}
