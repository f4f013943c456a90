package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/nimbusdesk/nimbusdesk/pkg/logging"
)

func TestFileLogger_CreatesDirectoryAndWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	f, logger, err := logging.FileLogger(logrus.InfoLevel, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	logger.WithField("component", "boot").Info("cache storage ready")

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(contents, &entry))
	require.Equal(t, "cache storage ready", entry["msg"])
	require.Equal(t, "boot", entry["component"])
	require.Equal(t, "info", entry["level"])
}

func TestFileLogger_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	f, logger, err := logging.FileLogger(logrus.ErrorLevel, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	logger.Info("filtered out")

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, contents)
}
