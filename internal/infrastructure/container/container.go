package container

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/savelxev/biteplan-backend/internal/config"
	delivery "github.com/savelxev/biteplan-backend/internal/delivery/http"
	"github.com/savelxev/biteplan-backend/internal/delivery/http/handler"
	"github.com/savelxev/biteplan-backend/internal/delivery/http/middleware"
	"github.com/savelxev/biteplan-backend/internal/infrastructure/database"
	"github.com/savelxev/biteplan-backend/internal/infrastructure/gemini"
	"github.com/savelxev/biteplan-backend/internal/infrastructure/server"
	"github.com/savelxev/biteplan-backend/internal/repository/postgres"
	"github.com/savelxev/biteplan-backend/internal/repository/redis"
	"github.com/savelxev/biteplan-backend/internal/usecase/auth"
	"github.com/savelxev/biteplan-backend/internal/usecase/goals"
	"github.com/savelxev/biteplan-backend/internal/usecase/profile"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *slog.Logger
	DB     *sqlx.DB
	Redis  *goredis.Client
	Gemini *gemini.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log := newLogger(cfg.Logging.Level)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini client; goal recalculation is unavailable without it
	// but the rest of the app still works
	geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey)
	if err != nil {
		log.Warn("failed to initialize gemini client, recalculation disabled", "error", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	targetsCache := redis.NewTargetsCache(redisClient)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		cfg.JWT.AccessSecret,
		cfg.JWT.AccessExpiryMin,
	)
	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		targetsCache,
		log,
	)
	goalsUseCase := goals.NewGoalsUseCase(
		profileRepo,
		targetsCache,
		geminiClient,
		log,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	goalsHandler := handler.NewGoalsHandler(goalsUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := delivery.NewRouter(
		authHandler,
		profileHandler,
		goalsHandler,
		authMiddleware,
	)
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Gemini: geminiClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
