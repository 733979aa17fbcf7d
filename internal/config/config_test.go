package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MemoryDefaults(t *testing.T) {
	t.Setenv("BASKET_STORAGE", "memory")
	t.Setenv("BASKET_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, uint32(5433), cfg.EmbeddedPort)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basket.yaml")
	content := "addr: \":9090\"\nstorage: postgres\ndatabaseUrl: postgres://file\nlogLevel: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("BASKET_CONFIG", path)
	t.Setenv("BASKET_STORAGE", "")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_PostgresNeedsURL(t *testing.T) {
	t.Setenv("BASKET_CONFIG", "")
	t.Setenv("BASKET_STORAGE", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BASKET_EMBEDDED_PG", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("BASKET_EMBEDDED_PG", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.EmbeddedPostgres)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("BASKET_CONFIG", "")
	t.Setenv("BASKET_STORAGE", "sqlite")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BASKET_STORAGE", "memory")
	t.Setenv("BASKET_EMBEDDED_PG_PORT", "not-a-port")
	_, err = Load()
	assert.Error(t, err)
}

func TestRead_SkipsValidation(t *testing.T) {
	t.Setenv("BASKET_CONFIG", "")
	t.Setenv("BASKET_STORAGE", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BASKET_EMBEDDED_PG", "")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWTSecret)

	_, err = Load()
	assert.Error(t, err)
}
