package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Backend struct {
		URL       string `mapstructure:"url"`
		APIPrefix string `mapstructure:"api_prefix"`
	} `mapstructure:"backend"`

	Org struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"org"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	CSRF struct {
		AuthKey string `mapstructure:"auth_key"`
		Secure  bool   `mapstructure:"secure"`
	} `mapstructure:"csrf"`
}

// ErrMissingBackendURL is returned when neither BACKEND_URL nor
// REACT_APP_BACKEND_URL is set.
var ErrMissingBackendURL = errors.New("backend url is not configured")

// APIBase is the backend root every API path is resolved against.
func (c *Config) APIBase() string {
	return strings.TrimRight(c.Backend.URL, "/") + c.Backend.APIPrefix
}

// LoadFile reads the optional YAML file at path, then environment overrides.
func LoadFile(path string) (*Config, error) {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Content-Type", "Accept", "X-CSRF-Token"})
	v.SetDefault("backend.url", "")
	v.SetDefault("backend.api_prefix", "/api")
	v.SetDefault("org.name", "Makka Masjid Ripponpet")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("csrf.auth_key", "")
	v.SetDefault("csrf.secure", false)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Debug().Str("path", path).Msg("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Older deployments only set REACT_APP_BACKEND_URL
	if cfg.Backend.URL == "" {
		cfg.Backend.URL = os.Getenv("REACT_APP_BACKEND_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the console cannot start without.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return ErrMissingBackendURL
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend url %q", c.Backend.URL)
	}
	if c.Backend.APIPrefix != "" && !strings.HasPrefix(c.Backend.APIPrefix, "/") {
		c.Backend.APIPrefix = "/" + c.Backend.APIPrefix
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
