package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Cache   CacheConfig
	Store   StoreConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds Open Food Facts client configuration
type CatalogConfig struct {
	SearchBaseURL  string        `mapstructure:"search_base_url"`
	APIBaseURL     string        `mapstructure:"api_base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
	Burst          int           `mapstructure:"burst"`
}

// CacheConfig holds search-result cache configuration
type CacheConfig struct {
	SearchTTL time.Duration `mapstructure:"search_ttl"`
}

// StoreConfig holds the sqlite database location
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutriswap/")

	// Environment variable settings
	v.SetEnvPrefix("NUTRISWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Catalog defaults
	v.SetDefault("catalog.search_base_url", "https://fr.openfoodfacts.org")
	v.SetDefault("catalog.api_base_url", "https://world.openfoodfacts.org")
	v.SetDefault("catalog.timeout", "5s")
	v.SetDefault("catalog.requests_per_sec", 10)
	v.SetDefault("catalog.burst", 20)

	// Cache defaults
	v.SetDefault("cache.search_ttl", "1h")

	// Store defaults
	v.SetDefault("store.path", "nutriswap.db")

	// Log defaults
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.SearchBaseURL == "" {
		return fmt.Errorf("catalog search base URL is required (set NUTRISWAP_CATALOG_SEARCH_BASE_URL)")
	}

	if config.Catalog.APIBaseURL == "" {
		return fmt.Errorf("catalog API base URL is required (set NUTRISWAP_CATALOG_API_BASE_URL)")
	}

	if config.Store.Path == "" {
		return fmt.Errorf("store path is required (set NUTRISWAP_STORE_PATH)")
	}

	if config.Catalog.Timeout < 0 {
		return fmt.Errorf("catalog timeout must not be negative, got: %s", config.Catalog.Timeout)
	}

	return nil
}
