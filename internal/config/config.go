// Package config loads service configuration from YAML with env overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default configuration file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port                    string   `yaml:"port"`
	LogLevel                string   `yaml:"logLevel"`
	RagServiceURL           string   `yaml:"ragServiceURL"`
	RedisAddr               string   `yaml:"redisAddr"`
	RedisPassword           string   `yaml:"redisPassword"`
	QueryRateLimitPerMinute int      `yaml:"queryRateLimitPerMinute"`
	TrustedProxies          []string `yaml:"trustedProxies"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("RAG_SERVICE_URL"); v != "" {
		cfg.RagServiceURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml or PORT)")
	}
	if cfg.RagServiceURL == "" {
		return errors.New("config: ragServiceURL is required (set in config.yaml or RAG_SERVICE_URL)")
	}
	if cfg.QueryRateLimitPerMinute < 0 {
		return errors.New("config: queryRateLimitPerMinute must not be negative")
	}
	if cfg.QueryRateLimitPerMinute > 0 && cfg.RedisAddr == "" {
		return errors.New("config: redisAddr is required when queryRateLimitPerMinute is set")
	}
	return nil
}
