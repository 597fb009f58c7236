package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/dtos"
	"github.com/applytrack/applytrack/internal/services"
)

type NoteHandler struct {
	Notes *services.NoteService
}

func NewNoteHandler(s *services.NoteService) *NoteHandler {
	return &NoteHandler{Notes: s}
}

func (h *NoteHandler) List(c *gin.Context) {
	user := auth.CurrentUser(c)
	notes, err := h.Notes.List(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewNoteResponses(notes))
}

func (h *NoteHandler) Get(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	note, err := h.Notes.Get(user.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewNoteResponse(*note))
}

func (h *NoteHandler) Create(c *gin.Context) {
	user := auth.CurrentUser(c)
	var req dtos.NoteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	note, err := h.Notes.Create(user.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewNoteResponse(*note))
}

func (h *NoteHandler) Update(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dtos.NoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	note, err := h.Notes.Update(user.ID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewNoteResponse(*note))
}

func (h *NoteHandler) Delete(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Notes.Delete(user.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
