package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first if present; real environment
// variables win over .env entries (godotenv does not override them).
//
// Recognized variables:
//
//	ADDRESS                       HTTP bind address
//	DATABASE_DSN                  PostgreSQL DSN
//	SECRET_KEY                    JWT HMAC secret
//	ACCESS_TOKEN_VALIDITY         duration string, e.g. "15m"
//	REFRESH_TOKEN_VALIDITY        duration string, e.g. "720h"
//	REFRESH_TOKEN_MAX_PER_USER    integer, 0 disables the cap
//	LEDGER_SWEEP_INTERVAL         duration string, e.g. "1h"
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.RefreshTokenValidityDuration = d
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_MAX_PER_USER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.RefreshTokenMaxPerUser = n
		}
	}
	if v := os.Getenv("LEDGER_SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.LedgerSweepInterval = d
		}
	}
}
