package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"core/internal/catalog"
	"core/internal/config"
	"core/internal/handler"
	"core/internal/logger"
	"core/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	logg.Info("Commercial Real Estate Voice AI",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Load the property catalog: Postgres when configured, else CSV,
	// falling back to the built-in sample listings.
	src, closeSource := catalogSource(cfg, logg)
	result := catalog.Load(context.Background(), src)
	if closeSource != nil {
		closeSource()
	}
	if result.Status == catalog.FellBackToDefault {
		logg.Warn("Catalog source unavailable, using built-in sample listings",
			zap.String("source", result.Source),
			zap.String("reason", result.Reason),
		)
	} else {
		logg.Info("Catalog loaded",
			zap.String("source", result.Source),
			zap.Int("properties", result.Catalog.Len()),
		)
	}

	if cfg.OpenAI.Enabled {
		logg.Info("OpenAI client enabled",
			zap.String("chat_model", cfg.OpenAI.ChatModel),
			zap.String("whisper_model", cfg.OpenAI.WhisperModel),
		)
	} else {
		logg.Warn("OpenAI disabled - chat and transcription will run in mock mode")
	}

	// Initialize services
	emotionAnalyzer := service.NewEmotionAnalyzer(service.ParseEmotionFormula(cfg.Matching.EmotionFormula))
	extractor := service.NewRequirementExtractor(service.ParsePeopleRatio(cfg.Matching.PeopleRatio))
	matcher := service.NewPropertyMatcher()
	composer := service.NewResponseComposer(&cfg.OpenAI, logg)
	transcriber := service.NewTranscriber(&cfg.OpenAI, logg)
	conversation := service.NewConversationService(
		result.Catalog,
		emotionAnalyzer,
		extractor,
		matcher,
		composer,
		transcriber,
		cfg.Matching.TopN,
		logg,
	)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(conversation)
	voiceHandler := handler.NewVoiceHandler(conversation)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = strings.Split(cfg.Server.AllowedMethods, ",")
	corsConfig.AllowHeaders = strings.Split(cfg.Server.AllowedHeaders, ",")
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":           "healthy",
			"service":          "real-estate-voice-ai",
			"version":          Version,
			"properties_count": result.Catalog.Len(),
			"openai_enabled":   cfg.OpenAI.Enabled,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/chat", chatHandler.Chat)
		apiV1.POST("/transcribe", voiceHandler.Transcribe)
		apiV1.POST("/speak", voiceHandler.Speak)
		apiV1.POST("/converse", voiceHandler.Converse)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logg.Info("Starting server", zap.String("addr", addr))

	go func() {
		if err := router.Run(addr); err != nil {
			logg.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down server")
}

// catalogSource picks the configured source. Postgres wins when a DSN is
// set; a failed connection degrades to the CSV path rather than aborting
// startup. The returned close function releases the Postgres connection
// once the one-shot load is done.
func catalogSource(cfg *config.Config, logg *zap.Logger) (catalog.Source, func()) {
	if cfg.Catalog.PostgresDSN != "" {
		pg, err := catalog.NewPostgresSource(
			cfg.Catalog.PostgresDSN,
			cfg.Catalog.MaxConnections,
			cfg.Catalog.MaxIdleConnections,
		)
		if err == nil {
			return pg, func() { pg.Close() }
		}
		logg.Warn("Postgres catalog source unavailable, trying CSV", zap.Error(err))
	}
	if cfg.Catalog.CSVPath != "" {
		return catalog.NewCSVSource(cfg.Catalog.CSVPath), nil
	}
	return nil, nil
}
