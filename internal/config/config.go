package config

import (
	"fmt"
	"time"
)

// This file defines the configuration structures used by viper_config.go
// The actual loading is handled by viper in viper_config.go

// AppConfig represents the full application configuration
type AppConfig struct {
	Server   ServerSettings   `yaml:"server"`
	Scryfall ScryfallSettings `yaml:"scryfall"`
	Images   ImageSettings    `yaml:"images"`
}

// ServerSettings contains the HTTP server settings
type ServerSettings struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"` // 0 for SSE support
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	// Rate limiting (using golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit"`      // requests per second per client
	RateLimitBurst int     `yaml:"rateLimitBurst"` // burst size

	MaxRequestSize int64 `yaml:"maxRequestSize"`
}

// ScryfallSettings configures the card-data API client
type ScryfallSettings struct {
	BaseURL           string        `yaml:"baseURL"`
	UserAgent         string        `yaml:"userAgent"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	Burst             int           `yaml:"burst"`
}

// ImageSettings configures artwork downloads
type ImageSettings struct {
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a configuration that runs with zero setup
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerSettings{
			Port:            "8080",
			Host:            "127.0.0.1",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    0, // 0 for SSE support
			IdleTimeout:     0, // 0 for SSE support
			ShutdownTimeout: 30 * time.Second,
			RateLimit:       10,
			RateLimitBurst:  20,
			MaxRequestSize:  1 << 20, // 1MB
		},
		Scryfall: ScryfallSettings{
			BaseURL:           "https://api.scryfall.com",
			UserAgent:         "ScryApp/1.0",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 10,
			Burst:             1,
		},
		Images: ImageSettings{
			Timeout: 15 * time.Second,
		},
	}
}

// Validate checks if the configuration is valid
func (c *AppConfig) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must be set")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server host must be set")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rateLimit must be positive")
	}
	if c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("rateLimitBurst must be at least 1")
	}
	if c.Server.MaxRequestSize < 1024 {
		return fmt.Errorf("maxRequestSize must be at least 1KB")
	}
	if c.Scryfall.BaseURL == "" {
		return fmt.Errorf("scryfall baseURL must be set")
	}
	if c.Scryfall.RequestsPerSecond <= 0 {
		return fmt.Errorf("scryfall requestsPerSecond must be positive")
	}
	if c.Scryfall.Timeout <= 0 {
		return fmt.Errorf("scryfall timeout must be positive")
	}
	if c.Images.Timeout <= 0 {
		return fmt.Errorf("images timeout must be positive")
	}
	return nil
}
