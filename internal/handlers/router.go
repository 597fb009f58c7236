package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/services"
)

// RegisterRoutes wires all endpoints onto the router. Registration and
// login stay open; everything under /api/v1 requires a token.
func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	authService := auth.NewService(db)

	authHandler := NewAuthHandler(authService)
	companyHandler := NewCompanyHandler(services.NewCompanyService(db))
	contactHandler := NewContactHandler(services.NewContactService(db))
	applicationHandler := NewApplicationHandler(services.NewApplicationService(db))
	noteHandler := NewNoteHandler(services.NewNoteService(db))

	r.GET("/health", HealthCheck)
	r.POST("/api/registration", authHandler.Register)
	r.POST("/api/login", authHandler.Login)

	api := r.Group("/api/v1")
	api.Use(authService.RequireToken())
	{
		api.GET("/companies", companyHandler.List)
		api.POST("/companies", companyHandler.Create)
		api.GET("/companies/:id", companyHandler.Get)
		api.PUT("/companies/:id", companyHandler.Update)
		api.PATCH("/companies/:id", companyHandler.Update)
		api.DELETE("/companies/:id", companyHandler.Delete)

		api.GET("/contacts", contactHandler.List)
		api.POST("/contacts", contactHandler.Create)
		api.GET("/contacts/:id", contactHandler.Get)
		api.PUT("/contacts/:id", contactHandler.Update)
		api.PATCH("/contacts/:id", contactHandler.Update)
		api.DELETE("/contacts/:id", contactHandler.Delete)

		api.GET("/applications", applicationHandler.List)
		api.POST("/applications", applicationHandler.Create)
		api.GET("/applications/:id", applicationHandler.Get)
		api.PUT("/applications/:id", applicationHandler.Update)
		api.PATCH("/applications/:id", applicationHandler.Update)
		api.DELETE("/applications/:id", applicationHandler.Delete)

		api.GET("/notes", noteHandler.List)
		api.POST("/notes", noteHandler.Create)
		api.GET("/notes/:id", noteHandler.Get)
		api.PUT("/notes/:id", noteHandler.Update)
		api.PATCH("/notes/:id", noteHandler.Update)
		api.DELETE("/notes/:id", noteHandler.Delete)
	}
}
