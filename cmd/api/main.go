package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jlane/prodesc/internal/airtable"
	"github.com/jlane/prodesc/internal/api"
	"github.com/jlane/prodesc/internal/config"
	"github.com/jlane/prodesc/internal/gemini"
	"github.com/jlane/prodesc/internal/logger"
	"github.com/jlane/prodesc/internal/service"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.SetDefaultLogger(logger.New(&logger.Config{
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
		File:        os.Getenv("LOG_FILE"),
		ServiceName: "prodesc",
	}))
	defer logger.Sync()

	if cfg.Gemini.APIKey == "" {
		logger.GetDefault().Warn("GEMINI_API_KEY is not set; /generate will return configuration errors")
	}
	if cfg.Airtable.APIToken == "" || cfg.Airtable.BaseID == "" {
		logger.GetDefault().Warn("Airtable credentials are not set; /save-description will return configuration errors")
	}

	geminiClient := gemini.New(&gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	})

	airtableClient := airtable.New(&airtable.Config{
		APIToken: cfg.Airtable.APIToken,
		BaseID:   cfg.Airtable.BaseID,
		BaseURL:  cfg.Airtable.BaseURL,
		Timeout:  cfg.Airtable.Timeout,
	})

	generationService := service.NewGenerationService(geminiClient)
	resolver := service.NewProductResolver(airtableClient, cfg.Airtable.ProductsTable)
	descriptionService := service.NewDescriptionService(airtableClient, resolver, cfg.Airtable.DescriptionsTable)

	router := api.SetupRouter(generationService, descriptionService, resolver, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.GetDefault().WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetDefault().WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.GetDefault().Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetDefault().WithError(err).Fatal("Server forced to shutdown")
	}

	logger.GetDefault().Info("Server exited")
}
