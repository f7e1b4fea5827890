package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cleanup := func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("HTTP_ADDR")
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("JWT_ISSUER")
		os.Unsetenv("RABBIT_URL")
		os.Unsetenv("RABBIT_EXCHANGE")
		os.Unsetenv("CACHE_TTL_STREAK")
		os.Unsetenv("HTTP_READ_TIMEOUT")
	}

	t.Run("should_return_error_if_database_url_is_missing", func(t *testing.T) {
		cleanup()
		cfg, err := Load()
		assert.Nil(t, cfg)
		assert.Error(t, err)
		assert.Equal(t, "missing DATABASE_URL", err.Error())
	})

	t.Run("should_return_error_if_jwt_secret_is_missing", func(t *testing.T) {
		cleanup()
		os.Setenv("DATABASE_URL", "postgres://localhost:5432/db")
		cfg, err := Load()
		assert.Nil(t, cfg)
		assert.Error(t, err)
		assert.Equal(t, "missing JWT_SECRET", err.Error())
	})

	t.Run("should_load_successfully_with_valid_env", func(t *testing.T) {
		cleanup()
		os.Setenv("DATABASE_URL", "postgres://localhost:5432/db")
		os.Setenv("JWT_SECRET", "super-secret")
		os.Setenv("APP_ENV", "dev")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, "dev", cfg.AppEnv)
		assert.Equal(t, ":8084", cfg.HTTPAddr)
		assert.Equal(t, "glutenpeek.events", cfg.RabbitExchange)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTLStreak)
		assert.Equal(t, 15*time.Second, cfg.CacheTTLFeed)
	})

	t.Run("should_fail_in_prod_if_rabbit_url_is_missing", func(t *testing.T) {
		cleanup()
		os.Setenv("APP_ENV", "prod")
		os.Setenv("DATABASE_URL", "postgres://localhost")
		os.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		assert.Nil(t, cfg)
		assert.Error(t, err)
	})

	t.Run("should_parse_durations", func(t *testing.T) {
		cleanup()
		os.Setenv("DATABASE_URL", "postgres://localhost")
		os.Setenv("JWT_SECRET", "secret")
		os.Setenv("CACHE_TTL_STREAK", "90s")
		os.Setenv("HTTP_READ_TIMEOUT", "nonsense")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, 90*time.Second, cfg.CacheTTLStreak)
		// bad values fall back to the default
		assert.Equal(t, 10*time.Second, cfg.HTTPReadTimeout)
	})

	cleanup()
}
