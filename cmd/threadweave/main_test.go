package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
			assert.NoError(t, setupLogger(newContext(level)), "level %q", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestReadBatchFile(t *testing.T) {
	t.Run("valid batch", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "batch.json")
		content := `{
			"channel_id": "chan-1",
			"messages": [
				{"id": "m1", "author_hash": "a1", "content": "hello", "timestamp": "2025-06-01T12:00:00Z"},
				{"id": "m2", "author_hash": "a2", "content": "reply", "timestamp": "2025-06-01T12:05:00Z", "reply_to": "m1"}
			]
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		batch, err := readBatchFile(path)
		require.NoError(t, err)
		assert.Equal(t, "chan-1", batch.ChannelID)
		require.Len(t, batch.Messages, 2)
		assert.Equal(t, "m1", batch.Messages[1].ReplyTo)
	})

	t.Run("missing channel", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "batch.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"messages": [{"id": "m1"}]}`), 0644))

		_, err := readBatchFile(path)
		assert.ErrorContains(t, err, "no channel_id")
	})

	t.Run("empty messages", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "batch.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"channel_id": "chan-1", "messages": []}`), 0644))

		_, err := readBatchFile(path)
		assert.ErrorContains(t, err, "no messages")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readBatchFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
