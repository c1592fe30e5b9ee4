package main

import (
	"fmt"
	"log"

	"github.com/nutriswap/backend/config"
	httpDelivery "github.com/nutriswap/backend/internal/delivery/http"
	"github.com/nutriswap/backend/internal/infrastructure/cache"
	"github.com/nutriswap/backend/internal/infrastructure/off"
	"github.com/nutriswap/backend/internal/infrastructure/store"
	"github.com/nutriswap/backend/internal/logging"
	"github.com/nutriswap/backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.Setup(cfg.Server.Environment, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting NutriSwap backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Path))

	// Initialize infrastructure dependencies
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}

	productStore := store.NewProductStore(db)
	favoriteStore := store.NewFavoriteStore(db)
	searchCache := cache.NewMemoryCache()

	catalogClient := off.NewClient(off.ClientConfig{
		SearchBaseURL:  cfg.Catalog.SearchBaseURL,
		APIBaseURL:     cfg.Catalog.APIBaseURL,
		Timeout:        cfg.Catalog.Timeout,
		RequestsPerSec: cfg.Catalog.RequestsPerSec,
		Burst:          cfg.Catalog.Burst,
	}, logger)

	// Initialize usecase layer
	productService := usecase.NewProductService(productStore, catalogClient, logger)
	substituteService := usecase.NewSubstituteService(
		productService,
		catalogClient,
		searchCache,
		usecase.SubstituteServiceConfig{
			SearchCacheTTL: cfg.Cache.SearchTTL,
		},
		logger,
	)
	favoriteService := usecase.NewFavoriteService(productStore, favoriteStore, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(productService, substituteService, favoriteService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
