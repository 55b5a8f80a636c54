package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RAG_SERVICE_URL", "http://rag.internal:8000/api")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfgPath := writeConfig(t, `
port: "8080"
logLevel: "info"
ragServiceURL: "http://localhost:8000/api"
redisAddr: "localhost:6379"
queryRateLimitPerMinute: 30
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RagServiceURL != "http://rag.internal:8000/api" {
		t.Fatalf("ragServiceURL = %q, want env override", cfg.RagServiceURL)
	}
	if cfg.RedisAddr != "redis.internal:6379" {
		t.Fatalf("redisAddr = %q, want env override", cfg.RedisAddr)
	}
	if cfg.QueryRateLimitPerMinute != 30 {
		t.Fatalf("queryRateLimitPerMinute = %d, want 30", cfg.QueryRateLimitPerMinute)
	}
}

func TestValidateConfigRequiresRagServiceURL(t *testing.T) {
	cfg := FileConfig{Port: "8080"}
	if err := validateConfig(cfg); err == nil {
		t.Fatalf("validateConfig() expected error for missing ragServiceURL")
	}
}

func TestValidateConfigRequiresRedisForRateLimit(t *testing.T) {
	cfg := FileConfig{
		Port:                    "8080",
		RagServiceURL:           "http://localhost:8000/api",
		QueryRateLimitPerMinute: 10,
	}
	if err := validateConfig(cfg); err == nil {
		t.Fatalf("validateConfig() expected error for rate limit without redisAddr")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
