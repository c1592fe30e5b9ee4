package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("NUTRISWAP_SERVER_PORT")
		os.Unsetenv("NUTRISWAP_SERVER_ENVIRONMENT")
		os.Unsetenv("NUTRISWAP_CATALOG_SEARCH_BASE_URL")
		os.Unsetenv("NUTRISWAP_CATALOG_API_BASE_URL")
		os.Unsetenv("NUTRISWAP_CATALOG_TIMEOUT")
		os.Unsetenv("NUTRISWAP_CATALOG_REQUESTS_PER_SEC")
		os.Unsetenv("NUTRISWAP_CACHE_SEARCH_TTL")
		os.Unsetenv("NUTRISWAP_STORE_PATH")
		os.Unsetenv("NUTRISWAP_LOG_LEVEL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.SearchBaseURL != "https://fr.openfoodfacts.org" {
			t.Errorf("Catalog.SearchBaseURL = %s, want https://fr.openfoodfacts.org", cfg.Catalog.SearchBaseURL)
		}
		if cfg.Catalog.APIBaseURL != "https://world.openfoodfacts.org" {
			t.Errorf("Catalog.APIBaseURL = %s, want https://world.openfoodfacts.org", cfg.Catalog.APIBaseURL)
		}
		if cfg.Catalog.Timeout != 5*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 5s", cfg.Catalog.Timeout)
		}
		if cfg.Catalog.RequestsPerSec != 10 {
			t.Errorf("Catalog.RequestsPerSec = %v, want 10", cfg.Catalog.RequestsPerSec)
		}
		if cfg.Cache.SearchTTL != time.Hour {
			t.Errorf("Cache.SearchTTL = %v, want 1h", cfg.Cache.SearchTTL)
		}
		if cfg.Store.Path != "nutriswap.db" {
			t.Errorf("Store.Path = %s, want nutriswap.db", cfg.Store.Path)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRISWAP_SERVER_PORT", "9090")
		os.Setenv("NUTRISWAP_SERVER_ENVIRONMENT", "production")
		os.Setenv("NUTRISWAP_CATALOG_SEARCH_BASE_URL", "https://us.openfoodfacts.org")
		os.Setenv("NUTRISWAP_CATALOG_TIMEOUT", "10s")
		os.Setenv("NUTRISWAP_CACHE_SEARCH_TTL", "30m")
		os.Setenv("NUTRISWAP_STORE_PATH", "/data/catalog.db")
		os.Setenv("NUTRISWAP_LOG_LEVEL", "debug")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.SearchBaseURL != "https://us.openfoodfacts.org" {
			t.Errorf("Catalog.SearchBaseURL = %s, want https://us.openfoodfacts.org", cfg.Catalog.SearchBaseURL)
		}
		if cfg.Catalog.Timeout != 10*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 10s", cfg.Catalog.Timeout)
		}
		if cfg.Cache.SearchTTL != 30*time.Minute {
			t.Errorf("Cache.SearchTTL = %v, want 30m", cfg.Cache.SearchTTL)
		}
		if cfg.Store.Path != "/data/catalog.db" {
			t.Errorf("Store.Path = %s, want /data/catalog.db", cfg.Store.Path)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
		}
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Catalog: CatalogConfig{
				SearchBaseURL: "https://fr.openfoodfacts.org",
				APIBaseURL:    "https://world.openfoodfacts.org",
				Timeout:       5 * time.Second,
			},
			Store: StoreConfig{
				Path: "nutriswap.db",
			},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(base()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when search base URL is empty", func(t *testing.T) {
		cfg := base()
		cfg.Catalog.SearchBaseURL = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty search base URL")
		}
	})

	t.Run("fails when API base URL is empty", func(t *testing.T) {
		cfg := base()
		cfg.Catalog.APIBaseURL = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty API base URL")
		}
	})

	t.Run("fails when store path is empty", func(t *testing.T) {
		cfg := base()
		cfg.Store.Path = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty store path")
		}
	})

	t.Run("fails for negative timeout", func(t *testing.T) {
		cfg := base()
		cfg.Catalog.Timeout = -time.Second
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for negative timeout")
		}
	})
}
