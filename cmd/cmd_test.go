package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haierkeys/keepsake-service/internal/app"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestResolveConfigPath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Chdir(t.TempDir())
		p, err := resolveConfigPath("custom.yaml", "x")
		require.NoError(t, err)
		assert.Equal(t, "custom.yaml", p)
	})

	t.Run("prefers dev config", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.MkdirAll("config", 0o755))
		require.NoError(t, os.WriteFile("config/config-dev.yaml", []byte("a: 1"), 0o644))
		require.NoError(t, os.WriteFile("config.yaml", []byte("a: 2"), 0o644))

		p, err := resolveConfigPath("", "x")
		require.NoError(t, err)
		assert.Equal(t, "config/config-dev.yaml", p)
	})

	t.Run("writes default", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		p, err := resolveConfigPath("", "server:\n  http-port: :8080\n")
		require.NoError(t, err)
		assert.Equal(t, "config/config.yaml", p)

		b, err := os.ReadFile(filepath.Join(dir, p))
		require.NoError(t, err)
		assert.Contains(t, string(b), "http-port")
	})
}

func TestVersionLine(t *testing.T) {
	assert.Equal(t, app.Version, versionLine(true))

	full := versionLine(false)
	assert.True(t, strings.HasPrefix(full, app.Name+" v"+app.Version))
	assert.Contains(t, full, app.GitTag)
}

func TestBootstrapLoggerLevel(t *testing.T) {
	t.Setenv("DEBUG", "")
	assert.True(t, newBootstrapLogger("warn").Core().Enabled(zapcore.WarnLevel))
	assert.False(t, newBootstrapLogger("warn").Core().Enabled(zapcore.InfoLevel))
	assert.True(t, newBootstrapLogger("nonsense").Core().Enabled(zapcore.InfoLevel))

	t.Setenv("DEBUG", "1")
	assert.True(t, newBootstrapLogger("error").Core().Enabled(zapcore.DebugLevel))
}
