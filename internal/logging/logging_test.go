package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Levels(t *testing.T) {
	testCases := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "default hides debug and info", verbose: false, wantDebug: false},
		{name: "verbose shows debug", verbose: true, wantDebug: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, closeFn, err := SetupLogger(Options{Verbose: tc.verbose, Stderr: &buf})
			require.NoError(t, err)
			defer closeFn()

			logger.Debug("debug line")
			logger.Warn("warn line", "account", "octocat")

			assert.Contains(t, buf.String(), "warn line")
			assert.Contains(t, buf.String(), "account=octocat")
			assert.Equal(t, tc.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
		})
	}
}

func TestSetupLogger_FileAndQuiet(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "github-licenses.log")

	logger, closeFn, err := SetupLogger(Options{File: path, Quiet: true, Stderr: &buf})
	require.NoError(t, err)

	logger.Info("repositories loaded", "count", 2)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "repositories loaded")
	assert.Empty(t, buf.String(), "quiet mode never writes to stderr")
}

func TestSetupLogger_FileAndStderr(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "run.log")

	logger, closeFn, err := SetupLogger(Options{File: path, Stderr: &buf})
	require.NoError(t, err)

	logger.With("component", "gateway").Warn("repository listing failed")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=gateway")
	assert.Contains(t, buf.String(), "component=gateway")
}
