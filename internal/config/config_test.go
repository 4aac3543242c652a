package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:       "8080",
		DBPassword: "password",
		DBSSLMode:  "disable",
		JWTSecret:  "change-me-in-production",
		Env:        "development",
	}
}

func TestValidateDevelopmentDefaults(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateProduction(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Env = "production"
	assert.Error(t, cfg.Validate(), "default JWT secret must be rejected in production")

	cfg.JWTSecret = "a-strong-secret-that-is-at-least-32-chars"
	assert.Error(t, cfg.Validate(), "weak DB password must be rejected in production")

	cfg.DBPassword = "7c9f2e1d8a6b4c3e"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsProduction())
}
