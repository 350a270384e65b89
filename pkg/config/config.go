// Package config loads service settings from the environment, an optional
// config file and command line flags.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// DefaultCookieSecret signs the demo cookies when no secret is configured.
const DefaultCookieSecret = "grocery-cookie-secret"

// Config holds the service settings.
type Config struct {
	Port             int           `mapstructure:"port"`
	Store            string        `mapstructure:"store"`
	DatabaseURL      string        `mapstructure:"database_url"`
	RedisAddr        string        `mapstructure:"redis_addr"`
	RedisKey         string        `mapstructure:"redis_key"`
	OTELHost         string        `mapstructure:"otel_host"`
	TraceProbability float64       `mapstructure:"trace_probability"`
	CookieSecret     string        `mapstructure:"cookie_secret"`
	TLSCert          string        `mapstructure:"tls_cert"`
	TLSKey           string        `mapstructure:"tls_key"`
	LogLevel         string        `mapstructure:"log_level"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
}

// SetDefaults registers default values and environment lookups on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("store", StoreMemory)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_key", "groceries")
	v.SetDefault("otel_host", "")
	v.SetDefault("trace_probability", 1.0)
	v.SetDefault("cookie_secret", DefaultCookieSecret)
	v.SetDefault("tls_cert", "")
	v.SetDefault("tls_key", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.AutomaticEnv()
}

// Load reads the optional config file and decodes v into a Config.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("store postgres requires DATABASE_URL")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("store redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	if c.TraceProbability < 0 || c.TraceProbability > 1 {
		return fmt.Errorf("trace probability %v out of range", c.TraceProbability)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// TLS reports whether the server should serve HTTPS.
func (c *Config) TLS() bool {
	return c.TLSCert != ""
}
