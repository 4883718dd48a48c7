package config_test

import (
	"testing"

	"crew-service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("ENV", "unit")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "unit", cfg.Env)
		assert.Equal(t, "5000", cfg.Server.Port)
		assert.Equal(t, 10, cfg.Server.RequestTimeout)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "instance/iss.db", cfg.Database.Path)
		assert.Equal(t, "crew.views", cfg.NATS.Subject)
		assert.Empty(t, cfg.NATS.URL)
		assert.False(t, cfg.Telemetry.Enabled)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("ENV", "unit")
		t.Setenv("PORT", "9090")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_USER", "crew")
		t.Setenv("NATS_URL", "nats://localhost:4222")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "crew", cfg.Database.User)
		assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	})

	t.Run("RejectsUnknownDriver", func(t *testing.T) {
		t.Setenv("ENV", "unit")
		t.Setenv("DB_DRIVER", "oracle")

		_, err := config.Load()
		assert.Error(t, err)
	})
}
