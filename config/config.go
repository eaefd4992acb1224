package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string
	LogLevel   string
	// CORSOrigins lists the browser origins allowed to call the API
	CORSOrigins []string

	// Gemini configuration
	GeminiAPIKey         string
	GeminiModelName      string
	GeminiTemperature    float64
	GeminiCacheMaxSize   int
	GeminiCacheTTL       time.Duration
	GeminiAttemptTimeout time.Duration
	GeminiBaseURL        string
	SimilarityThreshold  float64

	// Supabase configuration
	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	// Database configuration
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// Defaults
const (
	DefaultGeminiModel          = "gemini-1.5-flash-latest"
	DefaultGeminiTemperature    = 0.6
	DefaultGeminiCacheMaxSize   = 128
	DefaultGeminiCacheTTL       = time.Hour
	DefaultGeminiAttemptTimeout = 45 * time.Second
	DefaultSimilarityThreshold  = 0.62
)

var defaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// LoadConfig creates a new Config from the environment, Docker secrets and,
// outside CI and production, an optional .env file.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development || env == Test {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg, err := load(env, lookupFor(env))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loader reads typed values and collects parse errors
type loader struct {
	get  lookupFunc
	errs []error
}

func (l *loader) str(key, def string) string {
	if v := strings.TrimSpace(l.get(key)); v != "" {
		return v
	}
	return def
}

func (l *loader) float(key string, def float64) float64 {
	raw := l.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: key, Message: fmt.Sprintf("not a number: %q", raw)})
		return def
	}
	return v
}

func (l *loader) int(key string, def int) int {
	raw := l.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: key, Message: fmt.Sprintf("not an integer: %q", raw)})
		return def
	}
	return v
}

// seconds parses a whole or fractional number of seconds
func (l *loader) seconds(key string, def time.Duration) time.Duration {
	raw := l.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: key, Message: fmt.Sprintf("not a number of seconds: %q", raw)})
		return def
	}
	return time.Duration(v * float64(time.Second))
}

func (l *loader) list(key string, def []string) []string {
	raw := l.str(key, "")
	if raw == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func load(env Environment, get lookupFunc) (*Config, error) {
	l := &loader{get: get}

	cfg := &Config{
		Environment: env,

		ServerHost:  l.str("SERVER_HOST", "0.0.0.0"),
		ServerPort:  l.str("SERVER_PORT", "8000"),
		LogLevel:    l.str("LOG_LEVEL", "info"),
		CORSOrigins: l.list("CORS_ORIGINS", defaultCORSOrigins),

		GeminiAPIKey:         l.str("GEMINI_API_KEY", ""),
		GeminiModelName:      l.str("GEMINI_MODEL_NAME", DefaultGeminiModel),
		GeminiTemperature:    l.float("GEMINI_TEMP", DefaultGeminiTemperature),
		GeminiCacheMaxSize:   l.int("GEMINI_CACHE_MAXSIZE", DefaultGeminiCacheMaxSize),
		GeminiCacheTTL:       l.seconds("GEMINI_CACHE_TTL", DefaultGeminiCacheTTL),
		GeminiAttemptTimeout: l.seconds("GEMINI_ATTEMPT_TIMEOUT", DefaultGeminiAttemptTimeout),
		GeminiBaseURL:        l.str("GEMINI_BASE_URL", ""),
		SimilarityThreshold:  l.float("SIMILARITY_THRESHOLD", DefaultSimilarityThreshold),

		SupabaseURL:       l.str("SUPABASE_URL", ""),
		SupabaseAnonKey:   l.str("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: l.str("SUPABASE_JWT_SECRET", ""),

		DatabaseURL: l.str("DATABASE_URL", ""),
		DBHost:      l.str("DB_HOST", ""),
		DBPort:      l.str("DB_PORT", "5432"),
		DBUser:      l.str("DB_USER", ""),
		DBPassword:  l.str("DB_PASSWORD", ""),
		DBName:      l.str("DB_NAME", ""),
		DBSSLMode:   l.str("DB_SSL_MODE", "disable"),

		RedisURL:      l.str("REDIS_URL", ""),
		RedisHost:     l.str("REDIS_HOST", ""),
		RedisPort:     l.str("REDIS_PORT", "6379"),
		RedisPassword: l.str("REDIS_PASSWORD", ""),
		RedisDB:       l.int("REDIS_DB", 0),
	}

	if len(l.errs) > 0 {
		return nil, errors.Join(l.errs...)
	}
	return cfg, nil
}

// DatabaseEnabled reports whether a profile store is configured
func (c *Config) DatabaseEnabled() bool {
	return c.DatabaseURL != "" || c.DBHost != ""
}

// DatabaseDSN returns DATABASE_URL or a key/value DSN built from DB_*
func (c *Config) DatabaseDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether the shared response cache is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("expected an http(s) URL")
	}
	return nil
}
