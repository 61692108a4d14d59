// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Addr        string
	DatabaseURL string // empty selects the in-memory backend
	SeedDemo    bool
	RateLimit   RateLimitConfig
	OIDC        OIDCConfig
}

// RateLimitConfig tunes the per-client HTTP rate limiter.
type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	Burst          int
}

// OIDCConfig enables the optional SSO login flow.
type OIDCConfig struct {
	Enabled      bool
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Load reads configuration, consulting a .env file when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:        getEnv("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SeedDemo:    getEnvAsBool("SEED_DEMO", false),
		RateLimit: RateLimitConfig{
			Enabled:        getEnvAsBool("RATE_LIMIT", true),
			RequestsPerMin: getEnvAsInt("RATE_LIMIT_PER_MIN", 120),
			Burst:          getEnvAsInt("RATE_LIMIT_BURST", 60),
		},
		OIDC: OIDCConfig{
			Enabled:      getEnvAsBool("OIDC_ENABLED", false),
			IssuerURL:    os.Getenv("OIDC_ISSUER_URL"),
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
