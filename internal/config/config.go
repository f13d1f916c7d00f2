// Package config handles application configuration using Viper.
// Values come from defaults, an optional YAML file and environment variables,
// merged in that priority order, and are loaded once at process start.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultAmplemarketBaseURL is the Amplemarket company lookup endpoint.
const DefaultAmplemarketBaseURL = "https://api.amplemarket.com/companies/find"

// Config is the root configuration struct.
// `mapstructure` tags tell Viper how to map YAML/env keys to struct fields.
type Config struct {
	Amplemarket AmplemarketConfig `mapstructure:"amplemarket"`
	Server      ServerConfig      `mapstructure:"server"`
	Auth        AuthConfig        `mapstructure:"auth"`
	CORS        CORSConfig        `mapstructure:"cors"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Log         LogConfig         `mapstructure:"log"`
}

type AmplemarketConfig struct {
	// APIKey is the bearer token. It may be empty here; lookups then fail
	// with a missing-credential error instead of the whole program refusing to start.
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url" validate:"required,url,startswith=http"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"gte=1,lte=65535"`
}

type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"gte=1"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// Load reads configuration from a YAML file and environment variables.
// The API credential is also read from AMPLEMARKET_API_KEY, the name the
// .env files for this tool have always used.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("amplemarket.api_key", "")
	v.SetDefault("amplemarket.base_url", DefaultAmplemarketBaseURL)
	v.SetDefault("amplemarket.timeout", time.Duration(0))
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("auth.api_keys", []string{})
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("log.level", "warn")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Read config file (ignore "not found" unless a path was given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// COMPANY_LOOKUP_SERVER_PORT=9090 → server.port=9090
	v.SetEnvPrefix("COMPANY_LOOKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// BindEnv with explicit names replaces the automatic one, so list both.
	if err := v.BindEnv("amplemarket.api_key", "COMPANY_LOOKUP_AMPLEMARKET_API_KEY", "AMPLEMARKET_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding credential env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges and formats. A missing API key is not an error here.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Address returns the listen address string like "0.0.0.0:8080".
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
