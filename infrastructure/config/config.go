package config

import (
	"os"
	"strconv"
	"time"

	domainconfig "topicgraph-backend/domain/config"
)

// Config holds the configuration an embedding application needs to stand up
// the graph service.
type Config struct {
	Environment string

	// Logging
	LogLevel string

	// Graph search configuration
	CacheEnabled        bool
	CacheMaxSize        int
	CacheTTLMs          int
	MaxSearchDepth      int
	BidirectionalSearch bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		CacheEnabled:        getEnvBool("GRAPH_CACHE_ENABLED", true),
		CacheMaxSize:        getEnvInt("GRAPH_CACHE_MAX_SIZE", domainconfig.DefaultCacheMaxSize),
		CacheTTLMs:          getEnvInt("GRAPH_CACHE_TTL_MS", int(domainconfig.DefaultCacheTTL/time.Millisecond)),
		MaxSearchDepth:      getEnvInt("GRAPH_MAX_SEARCH_DEPTH", domainconfig.DefaultMaxSearchDepth),
		BidirectionalSearch: getEnvBool("GRAPH_BIDIRECTIONAL_SEARCH", true),
	}

	if err := cfg.SearchConfig().Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchConfig converts the loaded values into the domain search options.
func (c *Config) SearchConfig() *domainconfig.SearchConfig {
	return &domainconfig.SearchConfig{
		CacheEnabled:        c.CacheEnabled,
		CacheMaxSize:        c.CacheMaxSize,
		CacheTTL:            time.Duration(c.CacheTTLMs) * time.Millisecond,
		MaxSearchDepth:      c.MaxSearchDepth,
		BidirectionalSearch: c.BidirectionalSearch,
	}
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
