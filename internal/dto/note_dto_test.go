package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateNoteRequestUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle *string
		wantBody  *string
		wantExtra map[string]interface{}
		wantErr   bool
	}{
		{
			name:      "title only",
			input:     `{"title":"t2"}`,
			wantTitle: strPtr("t2"),
		},
		{
			name:     "id is ignored",
			input:    `{"id":42,"body":"b2"}`,
			wantBody: strPtr("b2"),
		},
		{
			name:      "extra fields collected",
			input:     `{"title":"t","pinned":true,"tags":["a"]}`,
			wantTitle: strPtr("t"),
			wantExtra: map[string]interface{}{"pinned": true, "tags": []interface{}{"a"}},
		},
		{
			name:  "null leaves field unset",
			input: `{"title":null}`,
		},
		{
			name:    "non string title",
			input:   `{"title":5}`,
			wantErr: true,
		},
		{
			name:    "not an object",
			input:   `["title"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateNoteRequest
			err := json.Unmarshal([]byte(tt.input), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, req.Title)
			assert.Equal(t, tt.wantBody, req.Body)
			assert.Equal(t, tt.wantExtra, req.Extra)
		})
	}
}

func TestNoteResponseFlattensExtra(t *testing.T) {
	res := NoteResponse{
		Id:    3,
		Title: "t",
		Body:  "b",
		// Core fields win over extras with the same name.
		Extra: map[string]interface{}{"pinned": true, "title": "shadow"},
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"title":"t","body":"b","pinned":true}`, string(raw))

	var back NoteResponse
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, int64(3), back.Id)
	assert.Equal(t, "t", back.Title)
	assert.Equal(t, map[string]interface{}{"pinned": true}, back.Extra)
}

func strPtr(s string) *string { return &s }
