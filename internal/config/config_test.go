package config

import (
	"os"
	"path/filepath"
	"testing"

	goFlags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

var allKeys = []string{
	"TOONBENCH_ADDR", "TOONBENCH_MODE", "TOONBENCH_DEBUG", "TOONBENCH_SEEDS_DIR", "TOONBENCH_MAX_BODY_BYTES",
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, allKeys...)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Addr:         ":3000",
		Mode:         ModeHTTP,
		SeedsDir:     "seeds",
		MaxBodyBytes: 1 << 20,
	}, cfg)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("TOONBENCH_ADDR", ":8080")
	t.Setenv("TOONBENCH_DEBUG", "true")

	cfg, err := Load("", []string{"--mode", "mcp", "--addr", ":9090"})
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr, "flag should win over env")
	assert.Equal(t, ModeMCP, cfg.Mode)
	assert.True(t, cfg.Debug)
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("TOONBENCH_ADDR", ":7070")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TOONBENCH_ADDR=:6060\nTOONBENCH_SEEDS_DIR=/tmp/formats\n"), 0o644))

	cfg, err := Load(envFile, nil)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr, "existing env should win over .env")
	assert.Equal(t, "/tmp/formats", cfg.SeedsDir)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	unsetEnv(t, allKeys...)
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"), nil)
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	unsetEnv(t, allKeys...)

	_, err := Load("", []string{"--mode", "grpc"})
	assert.Error(t, err)

	_, err = Load("", []string{"--max-body-bytes", "0"})
	assert.Error(t, err)

	_, err = Load("", []string{"--help"})
	assert.True(t, IsErrOfType(err, goFlags.ErrHelp))

	_, err = Load("", []string{"--nope"})
	assert.True(t, IsErrOfType(err, goFlags.ErrUnknownFlag))
}
