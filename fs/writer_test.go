package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/jsonextract/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes text under the derived name", func(t *testing.T) {
		t.Parallel()

		// Given a writer targeting a nested directory
		base := filepath.Join(t.TempDir(), "out", "nested")
		w := fs.NewWriter(base)

		// When I save extracted text for chat.json
		path, err := w.Save(context.Background(), "chat.json", "Name: A\nRole: user\nContent: hi")

		// Then the file holds exactly that text
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "chat_extracted.txt"), path)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Name: A\nRole: user\nContent: hi", string(content))

		// And no temporary file is left behind
		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("uses only the base of the source name", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()

		path, err := fs.NewWriter(base).Save(context.Background(), "/elsewhere/export.v2.json", "x")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "export.v2_extracted.txt"), path)
	})

	t.Run("overwrites an earlier result", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())
		_, err := w.Save(context.Background(), "a.json", "old")
		require.NoError(t, err)

		path, err := w.Save(context.Background(), "a.json", "new")

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewWriter(t.TempDir()).Save(ctx, "a.json", "x")

		assert.ErrorIs(t, err, context.Canceled)
	})
}
