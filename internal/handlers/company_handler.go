package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/dtos"
	"github.com/applytrack/applytrack/internal/services"
)

type CompanyHandler struct {
	Companies *services.CompanyService
}

func NewCompanyHandler(s *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{Companies: s}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return 0, false
	}
	return uint(id), true
}

func (h *CompanyHandler) List(c *gin.Context) {
	user := auth.CurrentUser(c)
	companies, err := h.Companies.List(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewCompanyResponses(companies))
}

func (h *CompanyHandler) Get(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	company, err := h.Companies.Get(user.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewCompanyResponse(*company))
}

func (h *CompanyHandler) Create(c *gin.Context) {
	user := auth.CurrentUser(c)
	var req dtos.CompanyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	company, err := h.Companies.Create(user.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewCompanyResponse(*company))
}

func (h *CompanyHandler) Update(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dtos.CompanyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	company, err := h.Companies.Update(user.ID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewCompanyResponse(*company))
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Companies.Delete(user.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
