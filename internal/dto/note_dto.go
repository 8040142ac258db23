package dto

import (
	"encoding/json"
	"fmt"
)

type CreateNoteRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// UpdateNoteRequest accepts any subset of fields. Title and Body are typed,
// every other key except id lands in Extra.
type UpdateNoteRequest struct {
	Id    int64                  `json:"-"`
	Title *string                `json:"title,omitempty"`
	Body  *string                `json:"body,omitempty"`
	Extra map[string]interface{} `json:"-"`
}

func (r *UpdateNoteRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		if string(value) == "null" {
			continue
		}
		switch key {
		case "id":
			// id is immutable
		case "title":
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("title must be a string: %w", err)
			}
			r.Title = &s
		case "body":
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("body must be a string: %w", err)
			}
			r.Body = &s
		default:
			var v interface{}
			if err := json.Unmarshal(value, &v); err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
			if r.Extra == nil {
				r.Extra = make(map[string]interface{})
			}
			r.Extra[key] = v
		}
	}
	return nil
}

// NoteResponse serializes flat: extra fields sit next to id, title and body.
type NoteResponse struct {
	Id    int64                  `json:"id"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Extra map[string]interface{} `json:"-"`
}

func (r NoteResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Extra)+3)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["id"] = r.Id
	out["title"] = r.Title
	out["body"] = r.Body
	return json.Marshal(out)
}

func (r *NoteResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = NoteResponse{}
	for key, value := range raw {
		var err error
		switch key {
		case "id":
			err = json.Unmarshal(value, &r.Id)
		case "title":
			err = json.Unmarshal(value, &r.Title)
		case "body":
			err = json.Unmarshal(value, &r.Body)
		default:
			var v interface{}
			if err = json.Unmarshal(value, &v); err == nil {
				if r.Extra == nil {
					r.Extra = make(map[string]interface{})
				}
				r.Extra[key] = v
			}
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}
