// Package config loads runtime configuration for the academy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables, after loading a dotenv file (-e/-env, or ./.env).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     base URL of the academy API
//	-k string     payment gateway key id
//	-s string     session store: sqlite, redis or memory
//	-d string     sqlite session database file
//	-r string     redis address
//	-t duration   API request timeout
//	-l string     log level
//
// Environment
//
//	ACADEMY_API_URL, ACADEMY_REQUEST_TIMEOUT, ACADEMY_PAYMENT_KEY_ID,
//	ACADEMY_PAYMENT_SANDBOX_SECRET, ACADEMY_STORE, ACADEMY_STORE_PATH,
//	ACADEMY_REDIS_ADDR, ACADEMY_REDIS_PASSWORD, ACADEMY_REDIS_DB,
//	ACADEMY_LOG_LEVEL
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "api_url": "https://api.trustlayerlabs.co.in",
//	  "request_timeout": "15s",
//	  "store_type": "sqlite",
//	  "store_path": "academy.db"
//	}
package config
