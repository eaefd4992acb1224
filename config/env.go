package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch env := os.Getenv("ENV"); env {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsDevelopment returns true if the current environment is development
func IsDevelopment() bool {
	return GetEnvironment() == Development
}

// IsProduction returns true if the current environment is production
func IsProduction() bool {
	return GetEnvironment() == Production
}

// secretsDir is where Docker secrets are mounted
func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return "/run/secrets"
}

// readSecret reads a Docker secret named after the lowercased key
func readSecret(key string) string {
	data, err := os.ReadFile(filepath.Join(secretsDir(), strings.ToLower(key)))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// lookupFunc resolves a configuration key to its raw value
type lookupFunc func(key string) string

// lookupFor returns the key resolution order of env. CI reads only the
// environment, production prefers Docker secrets, and development and test
// prefer the environment and fall back to secrets.
func lookupFor(env Environment) lookupFunc {
	switch env {
	case CI:
		return os.Getenv
	case Production:
		return func(key string) string {
			if v := readSecret(key); v != "" {
				return v
			}
			return os.Getenv(key)
		}
	default:
		return func(key string) string {
			if v := os.Getenv(key); v != "" {
				return v
			}
			return readSecret(key)
		}
	}
}
