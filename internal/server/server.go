package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/recipify/backend/config"
	"github.com/pageza/recipify/backend/internal/api"
	"github.com/pageza/recipify/backend/internal/cache"
	"github.com/pageza/recipify/backend/internal/database"
	"github.com/pageza/recipify/backend/internal/router"
	"github.com/pageza/recipify/backend/internal/service"
)

// Server represents the HTTP server and the resources it owns
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	logger zerolog.Logger
}

// New wires every component described by cfg. Optional dependencies that
// are unset or unreachable are logged and left out: a missing Gemini key
// makes generation fail with a client-unavailable error, a missing database
// makes profile lookups fail with 503, and without Redis the in-process
// cache is used.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{logger: logger}
	checks := map[string]api.HealthCheckFunc{}

	if cfg.DatabaseEnabled() {
		db, err := database.New(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(db, logger); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		s.db = db
		checks["database"] = func(ctx context.Context) error { return database.HealthCheck(ctx, db) }
	} else {
		logger.Warn().Msg("no database configured, profile lookups are disabled")
	}

	var responseCache cache.ResponseCache = cache.NewMemoryCache(cfg.GeminiCacheMaxSize, cfg.GeminiCacheTTL)
	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, using in-process response cache")
		} else {
			s.redis = client
			responseCache = cache.NewRedisCache(client, cfg.GeminiCacheTTL, logger)
			checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}

	var llm service.LLMClient
	gemini, err := service.NewGeminiClient(ctx, service.GeminiConfig{
		APIKey:         cfg.GeminiAPIKey,
		Model:          cfg.GeminiModelName,
		AttemptTimeout: cfg.GeminiAttemptTimeout,
		BaseURL:        cfg.GeminiBaseURL,
	}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Gemini client unavailable, generation requests will fail")
	} else {
		llm = gemini
	}

	generator := service.NewRecipeGenerator(llm, responseCache, service.GeneratorConfig{
		Temperature:         cfg.GeminiTemperature,
		SimilarityThreshold: cfg.SimilarityThreshold,
	}, logger)

	var verifier service.IdentityVerifier
	if cfg.SupabaseJWTSecret != "" {
		verifier = service.NewJWTVerifier(cfg.SupabaseJWTSecret)
	} else {
		verifier = service.NewSupabaseVerifier(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	}

	s.router = router.SetupRouter(cfg.CORSOrigins, logger, api.Dependencies{
		Generator: generator,
		Profiles:  service.NewProfileService(s.db),
		Verifier:  verifier,
		Checks:    checks,
	})
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until the server is shut down
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.http.Addr).Msg("starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases its resources
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		err = errors.Join(err, s.redis.Close())
	}
	if s.db != nil {
		err = errors.Join(err, database.Close(s.db))
	}
	return err
}
