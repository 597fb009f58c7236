package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/dtos"
	"github.com/applytrack/applytrack/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
}

func NewApplicationHandler(s *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: s}
}

func (h *ApplicationHandler) List(c *gin.Context) {
	user := auth.CurrentUser(c)
	apps, err := h.Applications.List(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewApplicationResponses(apps))
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	app, err := h.Applications.Get(user.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewApplicationResponse(*app))
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	user := auth.CurrentUser(c)
	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.Applications.Create(user.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewApplicationResponse(*app))
}

// Update handles PUT and PATCH. A notes list in the body replaces the
// application's note set wholesale.
func (h *ApplicationHandler) Update(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dtos.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.Applications.Update(user.ID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewApplicationResponse(*app))
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Applications.Delete(user.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
