package config

import (
	"fmt"
	"time"

	"github.com/trustlayerlabs/academy/internal/client/repositories/kv"
)

// Config holds runtime settings for the academy CLI.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration

	PaymentKeyID string
	// PaymentSandboxSecret, when set, makes checkout sign payments locally
	// instead of prompting for the gateway's answer. Test accounts only.
	PaymentSandboxSecret string

	StoreType     string
	StorePath     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.RequestTimeout = 15 * time.Second
	c.StoreType = kv.StoreSQLite
	c.StorePath = "academy.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = kv.DefaultRedisPrefix
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// StoreOptions converts the storage settings for kv.New.
func (c *Config) StoreOptions() kv.Options {
	return kv.Options{
		Type:          c.StoreType,
		SQLitePath:    c.StorePath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
	}
}

// LoadConfig applies defaults, then the JSON file, the environment (with an
// optional dotenv file) and finally command-line flags. Later sources win.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
