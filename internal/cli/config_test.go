package cli

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseSlogLevel("debug", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel("WARN", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, parseSlogLevel(" error ", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, parseSlogLevel("nonsense", slog.LevelInfo))
}

func TestConfigureLogger_WritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "gridnav.log")

	logger := configureLogger(logPath, true)
	require.NotNil(t, logger)
	assert.Same(t, logger, globalLogger)

	logger.Debug("probe", "k", "v")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "probe")
	assert.Contains(t, string(contents), "k=v")
}

func TestLoadSettings_Defaults(t *testing.T) {
	// Bind fresh, unchanged flags so earlier tests do not leak values.
	newRootCmd()

	s, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, defaultGridWidth, s.Session.Width)
	assert.Equal(t, defaultGridHeight, s.Session.Height)
	assert.NotZero(t, s.Seed)
	assert.Equal(t, defaultServerAddr, s.Addr)
}

func TestReadConfig_MissingFileIsNotAnError(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, readConfig())
}

func TestReadConfig_MalformedFile(t *testing.T) {
	tempDir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, configFileName), []byte("grid: [width\n"), 0o644))

	err := readConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), configFileName)
}

func TestLoadSettings_ReturnsConfigError(t *testing.T) {
	original := configErr
	t.Cleanup(func() { configErr = original })
	configErr = errors.New("read gridnav.yaml: broken")

	_, err := loadSettings()
	require.ErrorIs(t, err, configErr)

	_, err = executeCommand(t, "find", "--seed", "1")
	require.ErrorIs(t, err, configErr)
}
