package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err, "a missing .env file is not an error")

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Development)
	assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "taxregimes", cfg.ServiceName)
	assert.Empty(t, cfg.OTLPEndpoint)
}

func TestLoadServerConfig_Environment(t *testing.T) {
	t.Setenv("TAXREGIMES_ADDR", "127.0.0.1:9090")
	t.Setenv("TAXREGIMES_DEV", "true")
	t.Setenv("TAXREGIMES_REQUEST_TIMEOUT", "5s")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
	assert.True(t, cfg.Development)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadServerConfig_DotEnv(t *testing.T) {
	// registered so the value loaded from the file is cleared afterwards
	t.Setenv("TAXREGIMES_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("TAXREGIMES_LOG_LEVEL"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TAXREGIMES_LOG_LEVEL=debug\n"), 0644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	t.Setenv("TAXREGIMES_MAX_BODY_BYTES", "0")
	_, err := LoadServerConfig()
	assert.Error(t, err)

	t.Setenv("TAXREGIMES_MAX_BODY_BYTES", "not-a-number")
	_, err = LoadServerConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}
