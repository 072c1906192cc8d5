package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/roomly/backend/config"
	httpDelivery "github.com/roomly/backend/internal/delivery/http"
	"github.com/roomly/backend/internal/domain"
	"github.com/roomly/backend/internal/infrastructure/catalog"
	"github.com/roomly/backend/internal/infrastructure/productdb"
	"github.com/roomly/backend/internal/infrastructure/storage"
	"github.com/roomly/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Roomly Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Storage Type: %s", cfg.Storage.Type)

	// Initialize infrastructure dependencies
	blobStore, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.ProductDB), 0o755); err != nil {
		log.Fatalf("Failed to create product DB directory: %v", err)
	}
	productStore, err := productdb.NewStore(cfg.Storage.ProductDB)
	if err != nil {
		log.Fatalf("Failed to open product DB: %v", err)
	}

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.CacheTTL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}
	log.Printf("Catalog API configured: %s (cache TTL: %s)", cfg.Catalog.BaseURL, cfg.Catalog.CacheTTL)

	// Initialize usecase layer
	activityService := usecase.NewActivityService(blobStore)
	roomService := usecase.NewRoomService(blobStore)
	cartService := usecase.NewCartService(blobStore)
	authService := usecase.NewAuthService(blobStore, usecase.AuthConfig{
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	})
	catalogService := usecase.NewCatalogService(catalogClient, productStore, activityService)
	scorer := usecase.NewMatchScorer(usecase.ScorerConfig{
		MinScore:     cfg.Recommend.MinScore,
		DefaultLimit: cfg.Recommend.DefaultLimit,
	})
	recommendationService := usecase.NewRecommendationService(roomService, catalogService, scorer)

	log.Printf("Recommendations: min_score=%d, default_limit=%d",
		cfg.Recommend.MinScore, cfg.Recommend.DefaultLimit)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(
		catalogService,
		recommendationService,
		activityService,
		roomService,
		cartService,
		authService,
	)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, authService)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newBlobStore selects the blob store implementation from configuration
func newBlobStore(cfg *config.Config) (domain.BlobStore, error) {
	switch cfg.Storage.Type {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "redis":
		return storage.NewRedisStore(cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB)
	default:
		return storage.NewFileStore(cfg.Storage.Path)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
