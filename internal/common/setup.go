package common

import (
	"context"
	"log"
	"strings"

	"kiwoomy-context-go/internal/assist"
	"kiwoomy-context-go/internal/auth"
	"kiwoomy-context-go/internal/database"
	"kiwoomy-context-go/internal/models"
	"kiwoomy-context-go/internal/portfolio"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	DbService *database.Service
	AuthGate  *auth.Gate
	Assistant *assist.Service
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	gate := auth.NewGate(dbService, auth.NewBcryptHasher())

	// Sector registry is optional; the compiled-in rules are the contract.
	rules, err := portfolio.LoadSectorRules(cfg.Assist.SectorsFile)
	if err != nil {
		zap.L().Info("Using built-in sector rules",
			zap.String("sectors_file", cfg.Assist.SectorsFile),
			zap.Error(err))
		rules = nil
	}

	assistant := assist.NewService(assist.ServiceConfig{
		Store:     dbService,
		Gate:      gate,
		Analyzer:  portfolio.NewAnalyzer(rules),
		ChatModel: cfg.Assist.ChatModel,
	})

	return &Services{
		DbService: dbService,
		AuthGate:  gate,
		Assistant: assistant,
	}, nil
}

// InitializeDatabaseOnly initializes just the record store without the
// assistant layer. Useful for read-only reporting commands.
func InitializeDatabaseOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return dbService, nil
}

func (cs *Services) Close() {
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
