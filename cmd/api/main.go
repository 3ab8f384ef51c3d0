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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-minutes/pkg/validator"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/handler"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/extraction"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/transcription"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// @title           Meeting Minutes API
// @version         1.0
// @description     API for AI-assisted meeting minutes: transcript processing, action item tracking and analytics

// @host      localhost:8080
// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	log.Println("🔧 Initializing dependencies...")

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Schema migrations run only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("DB_AUTO_MIGRATE is enabled in production. Disable it and manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Quick-summary cache: Redis when enabled, in-process fallback otherwise
	var summaryCache cache.SummaryCache
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisCache, err := cache.NewRedisCache(&cfg.Redis, logger)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		summaryCache = redisCache
	} else {
		log.Println("📦 Redis disabled, using in-memory summary cache")
		summaryCache = cache.NewMemoryCache()
	}

	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	actionItemRepo := repository.NewActionItemRepository(db)

	log.Println("🤖 Initializing AI components...")
	geminiClient := ai.NewGeminiClient(&cfg.Gemini)
	extractor := extraction.NewExtractor(geminiClient, logger, cfg.Extraction)

	meetingService := meetingUsecase.NewService(meetingRepo, actionItemRepo, extractor, summaryCache, logger, cfg.Extraction)

	meetingHandler := handler.NewMeetingHandler(meetingService, logger, cfg.Extraction.MaxTranscriptChars)
	actionItemHandler := handler.NewActionItemHandler(meetingService, logger)
	analyticsHandler := handler.NewAnalyticsHandler(meetingService, logger)

	// Recording intake is optional: it needs a transcription provider key
	// and reachable object storage
	var transcriptionHandler *handler.Transcription
	if cfg.Assembly.APIKey != "" {
		log.Println("🎙️  Initializing recording intake...")
		recordingStore, err := storage.NewRecordingStore(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize recording store: %v", err)
		}
		transcriptionService := transcription.NewService(recordingStore, meetingService, cfg, logger)
		transcriptionHandler = handler.NewTranscriptionHandler(transcriptionService, logger)
	} else {
		log.Println("⚠️  ASSEMBLYAI_API_KEY not set, recording intake disabled")
	}

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler, actionItemHandler, analyticsHandler, transcriptionHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
