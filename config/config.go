package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Okxflow     OkxflowConfig     `yaml:"okxflow"`
	API         APIConfig         `yaml:"api"`
	Credentials CredentialsConfig `yaml:"credentials"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type OkxflowConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type APIConfig struct {
	RestURL   string        `yaml:"rest_url"`
	WsURL     string        `yaml:"ws_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// CredentialsConfig carries the three API secrets. Values from the
// environment always win over values from the file so secrets can stay
// out of checked-in configuration.
type CredentialsConfig struct {
	APIKey     string `yaml:"api_key"`
	SecretKey  string `yaml:"secret_key"`
	Passphrase string `yaml:"passphrase"`
}

type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"requests_per_second"`
	BurstSize         int `yaml:"burst_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

const (
	DefaultRestURL = "https://www.okx.com"
	DefaultWsURL   = "wss://ws.okx.com:8443/ws/v5"
)

func LoadConfig(path string) (*Config, error) {
	// Read configuration file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Config{
		API: APIConfig{
			RestURL: DefaultRestURL,
			WsURL:   DefaultWsURL,
			Timeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override credentials from environment variables if available
	if v := os.Getenv("OKX_API_KEY"); v != "" {
		config.Credentials.APIKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("OKX_SECRET_KEY"); v != "" {
		config.Credentials.SecretKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("OKX_PASSPHRASE"); v != "" {
		config.Credentials.Passphrase = strings.TrimSpace(v)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Okxflow.Name == "" {
		return fmt.Errorf("okxflow.name is required")
	}

	if cfg.Okxflow.Version == "" {
		return fmt.Errorf("okxflow.version is required")
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be greater than 0")
	}

	if !isValidBaseURL(cfg.API.RestURL, "http", "https") {
		return fmt.Errorf("api.rest_url '%s' is invalid", cfg.API.RestURL)
	}
	if !isValidBaseURL(cfg.API.WsURL, "ws", "wss") {
		return fmt.Errorf("api.ws_url '%s' is invalid", cfg.API.WsURL)
	}

	if cfg.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("rate_limit.requests_per_second must not be negative")
	}
	if cfg.RateLimit.BurstSize < 0 {
		return fmt.Errorf("rate_limit.burst_size must not be negative")
	}

	// Credentials are all-or-nothing: a partially filled set is always a
	// deployment mistake, while an empty set just means public endpoints only.
	set := 0
	for _, v := range []string{cfg.Credentials.APIKey, cfg.Credentials.SecretKey, cfg.Credentials.Passphrase} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return fmt.Errorf("credentials require api_key, secret_key and passphrase together")
	}

	return nil
}

func isValidBaseURL(raw string, schemes ...string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return true
		}
	}
	return false
}
