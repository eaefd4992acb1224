package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredInProduction lists keys a production deployment cannot run without
var requiredInProduction = []string{
	"GEMINI_API_KEY",
	"SUPABASE_URL",
	"SUPABASE_ANON_KEY",
}

func (c *Config) value(key string) string {
	switch key {
	case "GEMINI_API_KEY":
		return c.GeminiAPIKey
	case "SUPABASE_URL":
		return c.SupabaseURL
	case "SUPABASE_ANON_KEY":
		return c.SupabaseAnonKey
	}
	return ""
}

// ValidateConfig checks ranges and the requirements of the configured
// environment. All problems are reported together.
func ValidateConfig(cfg *Config) error {
	var errs []error
	fail := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.ServerPort == "" {
		fail("SERVER_PORT", "must be set")
	}
	if cfg.GeminiModelName == "" {
		fail("GEMINI_MODEL_NAME", "must be set")
	}
	if cfg.GeminiTemperature <= 0 || cfg.GeminiTemperature > 2 {
		fail("GEMINI_TEMP", "must be in (0, 2], got %v", cfg.GeminiTemperature)
	}
	if cfg.GeminiCacheMaxSize <= 0 {
		fail("GEMINI_CACHE_MAXSIZE", "must be positive, got %d", cfg.GeminiCacheMaxSize)
	}
	if cfg.GeminiCacheTTL <= 0 {
		fail("GEMINI_CACHE_TTL", "must be positive, got %s", cfg.GeminiCacheTTL)
	}
	if cfg.GeminiAttemptTimeout <= 0 {
		fail("GEMINI_ATTEMPT_TIMEOUT", "must be positive, got %s", cfg.GeminiAttemptTimeout)
	}
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		fail("SIMILARITY_THRESHOLD", "must be in (0, 1], got %v", cfg.SimilarityThreshold)
	}
	if len(cfg.CORSOrigins) == 0 {
		fail("CORS_ORIGINS", "must list at least one origin")
	}
	if cfg.SupabaseURL != "" {
		if err := checkHTTPURL(cfg.SupabaseURL); err != nil {
			fail("SUPABASE_URL", "invalid URL: %v", err)
		}
	}
	if cfg.GeminiBaseURL != "" {
		if err := checkHTTPURL(cfg.GeminiBaseURL); err != nil {
			fail("GEMINI_BASE_URL", "invalid URL: %v", err)
		}
	}
	if cfg.DBHost != "" && cfg.DatabaseURL == "" {
		if cfg.DBUser == "" {
			fail("DB_USER", "required when DB_HOST is set")
		}
		if cfg.DBName == "" {
			fail("DB_NAME", "required when DB_HOST is set")
		}
	}

	if cfg.Environment == Production {
		for _, key := range requiredInProduction {
			if cfg.value(key) == "" {
				fail(key, "required in production")
			}
		}
	}

	return errors.Join(errs...)
}
