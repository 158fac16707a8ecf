package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("CONFIG_FILE", "")
	os.Unsetenv("CONFIG_FILE")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerPort != 4000 {
		t.Fatalf("expected port 4000, got %d", cfg.ServerPort)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory store without urls, got %s", cfg.StoreDriver)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.SummaryCacheTTL != 5*time.Minute || cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected durations %s %s", cfg.SummaryCacheTTL, cfg.RequestTimeout)
	}
	if cfg.MongoDatabase != "ProEmployeeManager" {
		t.Fatalf("unexpected mongo database %s", cfg.MongoDatabase)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development environment")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://localhost/workforce")
	t.Setenv("FRONTEND_URL", "https://ui.example.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("SUMMARY_CACHE_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerPort != 8081 {
		t.Fatalf("expected 8081, got %d", cfg.ServerPort)
	}
	if cfg.StoreDriver != StorePostgres {
		t.Fatalf("expected postgres driver, got %s", cfg.StoreDriver)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("expected CORS_ALLOWED_ORIGINS to win, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.SummaryCacheTTL != 30*time.Second {
		t.Fatalf("expected 30s, got %s", cfg.SummaryCacheTTL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"SERVER_PORT":           "abc",
		"RATE_LIMIT_PER_MINUTE": "lots",
		"REQUEST_TIMEOUT":       "soon",
		"STORE_DRIVER":          "sqlite",
	}
	for key, value := range cases {
		clearEnv(t)
		t.Setenv(key, value)
		if _, err := Load(); err == nil {
			t.Fatalf("%s=%s: expected error", key, value)
		}
	}

	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")
	if _, err := Load(); err == nil {
		t.Fatalf("expected mongo without MONGO_URI to fail")
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "workforce.yaml")
	content := "server_port: 9090\nmongo_uri: mongodb://localhost:27017\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerPort != 9090 || cfg.StoreDriver != StoreMongo {
		t.Fatalf("expected file values, got port=%d driver=%s", cfg.ServerPort, cfg.StoreDriver)
	}
}
