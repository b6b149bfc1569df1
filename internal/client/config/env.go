package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/trustlayerlabs/academy/internal/flagx"
)

const defaultEnvFile = ".env"

// parseEnv overlays cfg with ACADEMY_* variables. A dotenv file named by
// -e/-env is loaded first and must exist; otherwise ./.env is loaded when
// present. Variables already set in the process environment are kept.
func parseEnv(cfg *Config) error {
	if path := flagx.EnvFile(); path != "" {
		if err := godotenv.Load(path); err != nil {
			return err
		}
	} else if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	setString(&cfg.APIBaseURL, os.Getenv("ACADEMY_API_URL"))
	setString(&cfg.PaymentKeyID, os.Getenv("ACADEMY_PAYMENT_KEY_ID"))
	setString(&cfg.PaymentSandboxSecret, os.Getenv("ACADEMY_PAYMENT_SANDBOX_SECRET"))
	setString(&cfg.StoreType, os.Getenv("ACADEMY_STORE"))
	setString(&cfg.StorePath, os.Getenv("ACADEMY_STORE_PATH"))
	setString(&cfg.RedisAddr, os.Getenv("ACADEMY_REDIS_ADDR"))
	setString(&cfg.RedisPassword, os.Getenv("ACADEMY_REDIS_PASSWORD"))
	setString(&cfg.LogLevel, os.Getenv("ACADEMY_LOG_LEVEL"))

	if v := os.Getenv("ACADEMY_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		cfg.RedisDB = n
	}
	if v := os.Getenv("ACADEMY_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		cfg.RequestTimeout = d
	}
	return nil
}
