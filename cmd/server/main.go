package main

import (
	"fleet-management-api/internal/auth"
	"fleet-management-api/internal/config"
	"fleet-management-api/internal/database"
	"fleet-management-api/internal/handlers"
	"fleet-management-api/internal/notify"
	"fleet-management-api/internal/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)
	auth.Configure(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	// Init database
	database.InitDB(cfg.DBPath)

	// Assignment emails only when SMTP is configured; otherwise stay noop
	if cfg.SMTPHost != "" {
		handlers.FleetNotifier = notify.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, logger)
	}
	handlers.DriverAppURL = cfg.DriverAppURL

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes(logger)

	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr))
	if err := ginRoutes.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
