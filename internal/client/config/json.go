package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/trustlayerlabs/academy/internal/flagx"
	"github.com/trustlayerlabs/academy/internal/timex"
)

// JsonConfig is a DTO used exclusively for config file unmarshalling, JSON or
// YAML. Zero values leave the corresponding Config field untouched.
type JsonConfig struct {
	APIBaseURL           string         `json:"api_url" yaml:"api_url"`
	RequestTimeout       timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	PaymentKeyID         string         `json:"payment_key_id" yaml:"payment_key_id"`
	PaymentSandboxSecret string         `json:"payment_sandbox_secret" yaml:"payment_sandbox_secret"`
	StoreType            string         `json:"store_type" yaml:"store_type"`
	StorePath            string         `json:"store_path" yaml:"store_path"`
	RedisAddr            string         `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword        string         `json:"redis_password" yaml:"redis_password"`
	RedisDB              int            `json:"redis_db" yaml:"redis_db"`
	RedisPrefix          string         `json:"redis_prefix" yaml:"redis_prefix"`
	LogLevel             string         `json:"log_level" yaml:"log_level"`
	LogFormat            string         `json:"log_format" yaml:"log_format"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any. Files
// ending in .yaml or .yml are read as YAML, everything else as JSON.
func parseJSON(cfg *Config) error {
	path := flagx.ConfigFile()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &jc)
	default:
		err = json.Unmarshal(data, &jc)
	}
	if err != nil {
		return err
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.PaymentKeyID, jc.PaymentKeyID)
	setString(&cfg.PaymentSandboxSecret, jc.PaymentSandboxSecret)
	setString(&cfg.StoreType, jc.StoreType)
	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RedisDB != 0 {
		cfg.RedisDB = jc.RedisDB
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
