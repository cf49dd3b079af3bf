package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("writes info records to the file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "mailscout.log")
		stderr := &bytes.Buffer{}

		logger, closer := newLogger(path, false, stderr)
		logger.Info("scraped website", "emails", 2)
		logger.Debug("load", "url", "https://a.test")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "scraped website")
		assert.NotContains(t, string(data), "msg=load")
		assert.Empty(t, stderr.String())
	})

	t.Run("verbose tees debug records to stderr", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "mailscout.log")
		stderr := &bytes.Buffer{}

		logger, closer := newLogger(path, true, stderr)
		logger.Debug("load", "url", "https://a.test")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "msg=load")
		assert.Contains(t, stderr.String(), "msg=load")
	})

	t.Run("empty path discards", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		logger, closer := newLogger("", false, stderr)
		logger.Info("scraped website")
		require.NoError(t, closer.Close())

		assert.Empty(t, stderr.String())
	})
}
