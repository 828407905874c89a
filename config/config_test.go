package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "ENV", "DB_DRIVER", "DB_LOG_LEVEL", "JWT_SECRET", "TOKEN_TTL", "BCRYPT_COST", "NATS_PORT", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(k, "")
	}
	t.Setenv("DATABASE_URL", "file::memory:")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, 4233, cfg.NATSPort)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Len(t, cfg.JWTSecret, 32, "development should get a generated secret")
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ExplicitValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("NATS_PORT", "0")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 0, cfg.NATSPort)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database url", env: map[string]string{"DATABASE_URL": ""}},
		{name: "unknown driver", env: map[string]string{"DB_DRIVER": "mysql"}},
		{name: "bad ttl", env: map[string]string{"TOKEN_TTL": "soon"}},
		{name: "negative ttl", env: map[string]string{"TOKEN_TTL": "-1h"}},
		{name: "cost too low", env: map[string]string{"BCRYPT_COST": "2"}},
		{name: "cost not a number", env: map[string]string{"BCRYPT_COST": "ten"}},
		{name: "bad nats port", env: map[string]string{"NATS_PORT": "-5"}},
		{name: "production without secret", env: map[string]string{"ENV": "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_GeneratedSecretsDiffer(t *testing.T) {
	setBaseEnv(t)

	a, err := Load()
	require.NoError(t, err)
	b, err := Load()
	require.NoError(t, err)

	assert.NotEqual(t, a.JWTSecret, b.JWTSecret)
}
