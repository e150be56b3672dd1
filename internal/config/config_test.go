package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ayursutra/ayursutra/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "ayursutra-api", cfg.App.Name)
	require.Equal(t, "development", cfg.App.Environment)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	require.Equal(t, config.StoreDriverMemory, cfg.Store.Driver)
	require.Equal(t, "gemini-1.5-flash", cfg.AI.Model)
	require.InDelta(t, 0.7, cfg.AI.Temperature, 0.001)
	require.Equal(t, 40, cfg.AI.TopK)
	require.InDelta(t, 0.95, cfg.AI.TopP, 0.001)
	require.Equal(t, 1024, cfg.AI.MaxOutputTokens)
	require.False(t, cfg.AI.Available())
}

func TestAdvisoryAvailabilityFollowsAPIKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GEMINI_API_KEY", "key-123")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.True(t, cfg.AI.Available())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsUnknownStoreDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestProductionForbidsMemoryStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-very-long-production-secret-value-123")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "memory")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "memory")
}

func TestPostgresDriverEnforcesCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-very-long-production-secret-value-123")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DB_PASSWORD")
}
