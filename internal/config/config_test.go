package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bkt/internal/bkt"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, bkt.DefaultParams(), cfg.Model.Params)
	assert.Equal(t, 0.5, cfg.Model.Prior)
	assert.Equal(t, 0.2, cfg.Model.SeedPrior)
	assert.Equal(t, ":8000", cfg.Server.Addr)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BKT_DB", "/tmp/x.db")
	t.Setenv("BKT_ADDR", "127.0.0.1:9999")
	t.Setenv("BKT_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("BKT_LOG_LEVEL", "DEBUG")
	t.Setenv("BKT_DEFAULT_P_LEARN", "0.15")
	t.Setenv("BKT_SEED_P_KNOWN", "0.3")
	t.Setenv("BKT_STRICT_SKILLS", "true")
	t.Setenv("BKT_SHUTDOWN_TIMEOUT", "2s")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.15, cfg.Model.Params.Learn)
	assert.Equal(t, bkt.DefaultGuess, cfg.Model.Params.Guess)
	assert.Equal(t, 0.3, cfg.Model.SeedPrior)
	assert.True(t, cfg.StrictSkills)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_BadValues(t *testing.T) {
	t.Setenv("BKT_DEFAULT_P_SLIP", "lots")
	t.Setenv("BKT_SHUTDOWN_TIMEOUT", "soon")

	_, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BKT_DEFAULT_P_SLIP")
	assert.Contains(t, err.Error(), "BKT_SHUTDOWN_TIMEOUT")
}

func TestConfigFromEnv_BadStrictSkillsKeepsDefault(t *testing.T) {
	t.Setenv("BKT_STRICT_SKILLS", "sometimes")

	cfg, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BKT_STRICT_SKILLS")
	assert.False(t, cfg.StrictSkills)
}

func TestValidate_RejectsOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model.Prior = 1.2
	cfg.Model.Params.Slip = -0.5
	cfg.LogLevel = "chatty"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, bkt.ErrInvalidProbability))
	assert.Contains(t, err.Error(), "chatty")
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	require.NoError(t, os.WriteFile(local, []byte("BKT_TEST_FROM_FILE=file\nBKT_TEST_PRESET=file\n"), 0o600))

	t.Setenv("BKT_TEST_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("BKT_TEST_FROM_FILE") })

	require.NoError(t, LoadEnvFiles(local, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "file", os.Getenv("BKT_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("BKT_TEST_PRESET"))
}
