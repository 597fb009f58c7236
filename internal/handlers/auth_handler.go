package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/dtos"
)

type AuthHandler struct {
	Auth *auth.Service
}

func NewAuthHandler(a *auth.Service) *AuthHandler {
	return &AuthHandler{Auth: a}
}

// Register is the POST /registration endpoint. On success it returns the
// fresh account's API token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	creds, err := h.Auth.Register(req.Username, req.Email, req.Password, req.RepeatedPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch),
			errors.Is(err, auth.ErrEmailTaken),
			errors.Is(err, auth.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).Error("registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		}
		return
	}
	c.JSON(http.StatusCreated, creds)
}

// Login is the POST /login endpoint.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	creds, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, creds)
}
