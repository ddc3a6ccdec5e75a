// Package config loads service settings from configs/config.yml and
// LITTLEWINS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "LITTLEWINS"

type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	SigningKey string
	TokenTTL   time.Duration

	// CatalogPath points at a YAML activity catalog; empty means the built-in one.
	CatalogPath string

	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// AllowedOrigins for WebSocket upgrades; "*" allows any, empty means same host only.
	AllowedOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "littlewins.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("auth.signing_key", "super-secret-dev-key")
	v.SetDefault("auth.token_ttl", 7*24*time.Hour)
	v.SetDefault("catalog.path", "")
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("ws.allowed_origins", []string{})
}

// Load reads config.yml from the given directories. A missing file is not an
// error; defaults and environment variables still apply.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:              v.GetString("port"),
		DBPath:            v.GetString("db.path"),
		LogLevel:          v.GetString("log.level"),
		SigningKey:        v.GetString("auth.signing_key"),
		TokenTTL:          v.GetDuration("auth.token_ttl"),
		CatalogPath:       v.GetString("catalog.path"),
		ReadHeaderTimeout: v.GetDuration("http.read_header_timeout"),
		WriteTimeout:      v.GetDuration("http.write_timeout"),
		IdleTimeout:       v.GetDuration("http.idle_timeout"),
		AllowedOrigins:    v.GetStringSlice("ws.allowed_origins"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.SigningKey) == "" {
		return errors.New("auth.signing_key must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}
