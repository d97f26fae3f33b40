package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/carnivalxperience/internal/config"
	"github.com/joshua-takyi/carnivalxperience/internal/connect"
	"github.com/joshua-takyi/carnivalxperience/internal/container"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/queue"
	"github.com/joshua-takyi/carnivalxperience/internal/routes"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("Starting CarnivalXperience API server", "environment", cfg.Environment, "backend", cfg.DataBackend, "payments", cfg.Payments.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backends := container.Backends{}
	var mongoClient *mongo.Client

	if cfg.InMemory() {
		mem := models.NewMemoryRepo()
		container.SeedDemo(mem, time.Now().UTC())
		backends.Memory = mem
		logger.Warn("Using in-memory data backend, data is lost on restart",
			"attendee_token", container.DemoAttendeeToken, "admin_token", container.DemoAdminToken)
	} else {
		supaClient, err := connect.InitSupabase(cfg)
		if err != nil {
			logger.Error("Failed to connect to Supabase", "error", err)
			os.Exit(1)
		}
		backends.Supabase = supaClient
		logger.Info("Connected to Supabase successfully")

		mongoClient, err = connect.MongoDBConnect(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		if mongoClient == nil {
			logger.Warn("MONGODB_URI not set, concierge and favourites are unavailable")
		} else {
			backends.Mongo = mongoClient
			logger.Info("Connected to MongoDB successfully")

			idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := models.MongodbNewRepo(mongoClient, cfg.MongoDBDatabase).EnsureConciergeIndexes(idxCtx); err != nil {
				logger.Warn("Failed to create MongoDB indexes", "error", err)
			}
			cancel()
		}
	}

	cld, err := connect.CloudinaryCredentials()
	if err != nil {
		logger.Error("Failed to connect to Cloudinary", "error", err)
		os.Exit(1)
	}
	backends.Cloudinary = cld
	if cld == nil {
		logger.Info("Cloudinary not configured, image sources are stored as given")
	}

	rdb, err := connect.RedisConnect(ctx, cfg.Redis)
	if err != nil {
		// the limiter and geocode cache degrade to pass-through
		logger.Warn("Redis unavailable, rate limiting and geocode cache disabled", "error", err)
	}
	backends.Redis = rdb

	if cfg.RabbitURL != "" {
		publisher, err := queue.NewAMQPPublisher(cfg.RabbitURL, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, events will be dropped", "error", err)
		} else {
			backends.Publisher = publisher
			go queue.NewConsumer(cfg.RabbitURL, logger).Run(ctx)
		}
	}

	// Initialize dependency container
	appContainer := container.NewContainer(ctx, cfg, logger, backends)

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	appContainer.Close()
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("Error closing Redis", "error", err)
		}
	}
	if err := connect.MongoDBDisconnect(mongoClient); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
