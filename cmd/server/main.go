package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/handlers"
	"storefront/internal/uploads"
)

func main() {
	// load .env from the working dir and its parents, so running from
	// cmd/server during development still picks it up
	_ = godotenv.Overload(".env", "../.env", "../../.env")

	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gdb, err := db.Open(cfg.DSN)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Fatal("could not run migrations", zap.Error(err))
	}
	if err := db.SeedCategories(gdb); err != nil {
		logger.Fatal("could not seed categories", zap.Error(err))
	}
	if err := db.SeedAdminUser(gdb, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Fatal("could not seed admin user", zap.Error(err))
	}

	files, err := uploads.New(cfg.UploadDir)
	if err != nil {
		logger.Fatal("could not prepare upload dir", zap.Error(err))
	}

	srv := handlers.New(cfg, logger, gdb, files)
	r := srv.Router()

	logger.Info("server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
