package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipify/backend/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:          config.Test,
		ServerHost:           "127.0.0.1",
		ServerPort:           "0",
		LogLevel:             "debug",
		CORSOrigins:          []string{"http://localhost:5173"},
		GeminiModelName:      config.DefaultGeminiModel,
		GeminiTemperature:    config.DefaultGeminiTemperature,
		GeminiCacheMaxSize:   config.DefaultGeminiCacheMaxSize,
		GeminiCacheTTL:       config.DefaultGeminiCacheTTL,
		GeminiAttemptTimeout: config.DefaultGeminiAttemptTimeout,
		SimilarityThreshold:  config.DefaultSimilarityThreshold,
	}
}

func TestNew_MinimalConfig(t *testing.T) {
	var logs bytes.Buffer
	srv, err := New(context.Background(), testConfig(), zerolog.New(&logs))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	assert.Contains(t, logs.String(), "no database configured")
	assert.Contains(t, logs.String(), "Gemini client unavailable")

	t.Run("health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("auth without supabase is unavailable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/recipes/", bytes.NewBufferString(`{"ingredients":["rice"]}`))
		req.Header.Set("Authorization", "Bearer token")
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestNew_JWTSecretSelectsLocalVerification(t *testing.T) {
	cfg := testConfig()
	cfg.SupabaseJWTSecret = "test-secret"

	srv, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	// an unsigned token is rejected locally as invalid rather than unavailable
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv, err := New(context.Background(), testConfig(), zerolog.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-done)
}

func TestNewLogger(t *testing.T) {
	cfg := testConfig()
	cfg.LogLevel = "warn"
	assert.Equal(t, zerolog.WarnLevel, NewLogger(cfg).GetLevel())

	cfg.LogLevel = "nonsense"
	assert.Equal(t, zerolog.InfoLevel, NewLogger(cfg).GetLevel())
}
