package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	StoreAddress string      `json:"store_address"`
	AgentPattern string      `json:"agent_pattern"`
	Retry        RetryConfig `json:"retry,omitempty"`
}

type RetryConfig struct {
	MaxAttempts int `json:"max_attempts"`
	WaitSeconds int `json:"wait_seconds"`
}

func Default() *Config {
	return &Config{
		StoreAddress: "127.0.0.1:8500",
		AgentPattern: "/bin/consul",
		Retry: RetryConfig{
			MaxAttempts: 24,
			WaitSeconds: 5,
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func LoadFromEnv() *Config {
	cfg := Default()
	cfg.StoreAddress = getEnv("CLUSTAT_STORE_ADDR", cfg.StoreAddress)
	cfg.AgentPattern = getEnv("CLUSTAT_AGENT_PATTERN", cfg.AgentPattern)
	cfg.Retry.MaxAttempts = getEnvInt("CLUSTAT_RETRY_ATTEMPTS", cfg.Retry.MaxAttempts)
	cfg.Retry.WaitSeconds = getEnvInt("CLUSTAT_RETRY_WAIT", cfg.Retry.WaitSeconds)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
