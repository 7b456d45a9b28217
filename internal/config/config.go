package config

import (
	"fmt"
	"os"
	"strconv"
)

// Identity source modes. "token" reads the acting user from a verified JWT,
// "path" trusts a {userid} path segment (the legacy unauthenticated variant).
const (
	IdentityToken = "token"
	IdentityPath  = "path"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	IdentitySource string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	identitySource := getEnv("IDENTITY_SOURCE", IdentityToken)
	if identitySource != IdentityToken && identitySource != IdentityPath {
		return nil, fmt.Errorf("invalid IDENTITY_SOURCE %q: must be %q or %q", identitySource, IdentityToken, IdentityPath)
	}

	// The token variant signs and verifies JWTs with this key; an unset
	// variable would mean silently signing with an empty key.
	if identitySource == IdentityToken && os.Getenv("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set when IDENTITY_SOURCE is %q", IdentityToken)
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./taskboard.db"),
		IdentitySource: identitySource,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
