package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/mailscout"
	main "github.com/fwojciec/mailscout/cmd/mailscout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reproduces the filtered file from a raw file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "raw.csv", "Website,Email\n"+
			"https://a.test,INFO@a.test\n"+
			"https://a.test,jane@a.test\n"+
			"https://b.test,noreply@b.test\n"+
			"https://b.test,bob@b.test\n")
		cmd := &main.FilterCmd{Input: input, Output: filepath.Join(dir, "filtered.csv")}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
		}

		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "Website,Email\nhttps://a.test,jane@a.test\nhttps://b.test,bob@b.test\n", readFile(t, cmd.Output))
		assert.Contains(t, stdout.String(), "Kept 2 of 4 emails")
	})

	t.Run("custom prefixes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "raw.csv", "Website,Email\nhttps://a.test,info@a.test\nhttps://a.test,sales@a.test\n")
		cmd := &main.FilterCmd{Input: input, Output: filepath.Join(dir, "filtered.csv"), IgnorePrefix: []string{"sales@"}}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "Website,Email\nhttps://a.test,info@a.test\n", readFile(t, cmd.Output))
	})

	t.Run("missing input returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cmd := &main.FilterCmd{Input: filepath.Join(dir, "missing.csv"), Output: filepath.Join(dir, "filtered.csv")}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, mailscout.ENOTFOUND, mailscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
		assert.NoFileExists(t, cmd.Output)
	})
}
