package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"HOST", "PORT", "STORE_DRIVER", "JWT_SECRET", "LOG_LEVEL", "LOG_FORMAT",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "ALLOWED_ORIGINS", "DATABASE_URL",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"RATE_LIMIT_AUTH", "RATE_LIMIT_SUBMIT", "RATE_LIMIT_WINDOW", "RATE_LIMIT_TRUST_PROXY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("unexpected addr %s", cfg.Addr())
	}
	if cfg.StoreDriver != StorePostgres {
		t.Errorf("expected postgres driver, got %s", cfg.StoreDriver)
	}
	if !strings.Contains(cfg.DatabaseURL, "dbname=quiz_app") {
		t.Errorf("expected default database name, got %s", cfg.DatabaseURL)
	}
	if cfg.RateLimit.TrustProxy {
		t.Error("proxy headers must not be trusted by default")
	}
	if cfg.RateLimit.Window != time.Minute || cfg.RateLimit.AuthRequests != 20 {
		t.Errorf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	if err == nil || err.Error() != "JWT_SECRET environment variable is required" {
		t.Fatalf("expected missing secret error, got %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port: "9000"
store_driver: memory
jwt_secret: from-file
allowed_origins: ["http://a.example"]
log:
  level: debug
rate_limit:
  auth_requests: 5
  window: 30s
  trust_proxy: true
`)
	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "http://b.example, http://c.example")
	t.Setenv("RATE_LIMIT_AUTH", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("env should override port, got %s", cfg.Port)
	}
	if cfg.StoreDriver != StoreMemory || cfg.JWTSecret != "from-file" {
		t.Errorf("file values lost: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://c.example" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimit.AuthRequests != 7 || cfg.RateLimit.Window != 30*time.Second || !cfg.RateLimit.TrustProxy {
		t.Errorf("unexpected rate limit %+v", cfg.RateLimit)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.SlogLevel())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}},
		{"bad redis db", map[string]string{"REDIS_DB": "zero"}},
		{"bad window", map[string]string{"RATE_LIMIT_WINDOW": "soon"}},
		{"negative window", map[string]string{"RATE_LIMIT_WINDOW": "-1s"}},
		{"bad trust proxy", map[string]string{"RATE_LIMIT_TRUST_PROXY": "maybe"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", "secret")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLogValue_OmitsSecrets(t *testing.T) {
	cfg := &Config{
		Host:        "localhost",
		Port:        "8080",
		JWTSecret:   "super-secret-value",
		DatabaseURL: "postgres://u:db-password@h/db",
		Redis:       RedisConfig{Addr: "localhost:6379", Password: "redis-password"},
	}
	out := cfg.LogValue().String()
	for _, secret := range []string{"super-secret-value", "db-password", "redis-password"} {
		if strings.Contains(out, secret) {
			t.Errorf("log value leaks %q: %s", secret, out)
		}
	}
}
