package dtos

import (
	"time"

	"github.com/applytrack/applytrack/internal/models"
)

type NoteCreateRequest struct {
	ApplicationID uint   `json:"application_id" binding:"required"`
	Text          string `json:"text" binding:"required"`
}

type NoteUpdateRequest struct {
	Text *string `json:"text"`
}

// NoteInput is one element of the notes list on an application update. A
// nil ID means a new note.
type NoteInput struct {
	ID   *uint  `json:"id"`
	Text string `json:"text"`
}

type NoteResponse struct {
	ID            uint      `json:"id"`
	ApplicationID uint      `json:"application_id"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewNoteResponse(n models.Note) NoteResponse {
	return NoteResponse{
		ID:            n.ID,
		ApplicationID: n.ApplicationID,
		Text:          n.Text,
		CreatedAt:     n.CreatedAt,
	}
}

func NewNoteResponses(notes []models.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}
	return out
}
