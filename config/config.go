// Package config loads process configuration from the environment
package config

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds everything the API server needs at start-up
type Config struct {
	Port        string
	Env         string
	DBDriver    string
	DatabaseURL string
	DBLogLevel  string

	// JWTSecret signs and verifies bearer tokens. Set once by Load.
	JWTSecret  []byte
	TokenTTL   time.Duration
	BcryptCost int

	NATSPort    int
	CORSOrigins []string
}

// IsProduction reports whether ENV=production
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadDotenv reads .env if present. A missing file is not an error.
func LoadDotenv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// Load builds a Config from the environment
func Load() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "3000"),
		Env:         getenv("ENV", "development"),
		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBLogLevel:  strings.ToLower(getenv("DB_LOG_LEVEL", "warn")),
	}

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return cfg, fmt.Errorf("unsupported DB_DRIVER %q (expected postgres or sqlite)", cfg.DBDriver)
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "1h"))
	if err != nil || ttl <= 0 {
		return cfg, fmt.Errorf("invalid TOKEN_TTL %q", os.Getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	cost, err := strconv.Atoi(getenv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return cfg, fmt.Errorf("invalid BCRYPT_COST %q", os.Getenv("BCRYPT_COST"))
	}
	cfg.BcryptCost = cost

	natsPort, err := strconv.Atoi(getenv("NATS_PORT", "4233"))
	if err != nil || natsPort < 0 {
		return cfg, fmt.Errorf("invalid NATS_PORT %q", os.Getenv("NATS_PORT"))
	}
	cfg.NATSPort = natsPort

	for _, origin := range strings.Split(getenv("CORS_ALLOW_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	secret := os.Getenv("JWT_SECRET")
	switch {
	case secret != "":
		cfg.JWTSecret = []byte(secret)
	case cfg.IsProduction():
		return cfg, fmt.Errorf("JWT_SECRET must be set when ENV=production")
	default:
		cfg.JWTSecret, err = randomSecret()
		if err != nil {
			return cfg, err
		}
		log.Println("⚠️ JWT_SECRET not set, generated an ephemeral secret (tokens will not survive a restart)")
	}

	return cfg, nil
}

func randomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generating JWT secret: %w", err)
	}
	return b, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
