package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/service_booking/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("BOOKING_HOLD_TTL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, config.CatalogSourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, 15*time.Minute, cfg.Booking.HoldTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CATALOG_SOURCE=fixture\nBOOKING_HOLD_TTL=2m\nPORT=9000\n"), 0o600))

	t.Setenv("PORT", "7000")
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("BOOKING_HOLD_TTL", "")
	// godotenv never overrides variables that already exist, even when empty
	os.Unsetenv("CATALOG_SOURCE")
	os.Unsetenv("BOOKING_HOLD_TTL")

	cfg, err := config.Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, config.CatalogSourceFixture, cfg.Catalog.Source)
	assert.Equal(t, 2*time.Minute, cfg.Booking.HoldTTL)
}

func TestLoad_RejectsUnknownCatalogSource(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "mongo")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Error(t, err)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("BOOKING_HOLD_TTL", "soon")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.Booking.HoldTTL)
}
