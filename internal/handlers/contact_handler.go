package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/dtos"
	"github.com/applytrack/applytrack/internal/services"
)

type ContactHandler struct {
	Contacts *services.ContactService
}

func NewContactHandler(s *services.ContactService) *ContactHandler {
	return &ContactHandler{Contacts: s}
}

func (h *ContactHandler) List(c *gin.Context) {
	user := auth.CurrentUser(c)
	contacts, err := h.Contacts.List(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewContactResponses(contacts))
}

func (h *ContactHandler) Get(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := h.Contacts.Get(user.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewContactResponse(*contact))
}

func (h *ContactHandler) Create(c *gin.Context) {
	user := auth.CurrentUser(c)
	var req dtos.ContactCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	contact, err := h.Contacts.Create(user.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewContactResponse(*contact))
}

func (h *ContactHandler) Update(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dtos.ContactUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	contact, err := h.Contacts.Update(user.ID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewContactResponse(*contact))
}

func (h *ContactHandler) Delete(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Contacts.Delete(user.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
