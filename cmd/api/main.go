package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/applytrack/applytrack/internal/config"
	"github.com/applytrack/applytrack/internal/database"
	"github.com/applytrack/applytrack/internal/handlers"
	"github.com/applytrack/applytrack/internal/logging"
)

func main() {
	// 1. Configuration
	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	// 2. Database connection and migrations
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	logrus.Info("database connection established")

	// 3. Router, CORS and request logging
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 4. Routes
	handlers.RegisterRoutes(r, db)

	logrus.Infof("server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server failed to start")
	}
}
