// main.go
package main

import (
	"context"
	"log"

	"library-catalog/cmd"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/wire"
	"library-catalog/pkg/database"
	"library-catalog/pkg/storage"
	"library-catalog/pkg/utils"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	if config.App.AutoMigrate {
		if err := database.Migrate(database.DSN(config.Database), 0, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	covers, err := storage.NewFromConfig(context.Background(), config.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to initialize cover storage", zap.Error(err))
	}
	defer covers.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, covers, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
