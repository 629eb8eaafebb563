package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultSecretKey = "change_me_in_production"

type PusherConfig struct {
	AppID   string `toml:"app_id"`
	Key     string `toml:"key"`
	Secret  string `toml:"secret"`
	Cluster string `toml:"cluster"`
}

// Enabled reports whether every credential needed to reach Pusher is present.
func (pusher PusherConfig) Enabled() bool {
	return pusher.AppID != "" && pusher.Key != "" && pusher.Secret != "" && pusher.Cluster != ""
}

type Config struct {
	Port         string       `toml:"port"`
	DBPath       string       `toml:"db_path"`
	SecretKey    string       `toml:"secret_key"`
	CookieSecure bool         `toml:"cookie_secure"`
	Pusher       PusherConfig `toml:"pusher"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:      "8080",
		DBPath:    filepath.Join("data", "taskflow.db"),
		SecretKey: defaultSecretKey,
	}
}

// Load layers defaults, the optional TOML file at path and environment overrides, in that order.
// A missing file is not an error when path is empty.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.SecretKey = getEnv("SECRET_KEY", cfg.SecretKey)
	cfg.Pusher.AppID = getEnv("PUSHER_APP_ID", cfg.Pusher.AppID)
	cfg.Pusher.Key = getEnv("PUSHER_KEY", cfg.Pusher.Key)
	cfg.Pusher.Secret = getEnv("PUSHER_SECRET", cfg.Pusher.Secret)
	cfg.Pusher.Cluster = getEnv("PUSHER_CLUSTER", cfg.Pusher.Cluster)

	if raw := os.Getenv("COOKIE_SECURE"); raw != "" {
		secure, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parse COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = secure
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("port is required")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("db path is required")
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return errors.New("secret key is required")
	}
	return nil
}

// UsesDefaultSecret is true while the signing key is still the shipped placeholder.
func (cfg *Config) UsesDefaultSecret() bool {
	return cfg.SecretKey == defaultSecretKey
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
