package backing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDir tests the directory-backed implementation against a temp dir.
func TestDir(t *testing.T) {
	t.Run("creates missing root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nested", "prefs")

		d, err := NewDir(root)
		require.NoError(t, err)
		assert.Equal(t, root, d.Root())

		info, err := os.Stat(root)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("never-stored field loads as empty", func(t *testing.T) {
		d, err := NewDir(t.TempDir())
		require.NoError(t, err)

		text, err := d.Load("nonexistent")
		require.NoError(t, err)
		assert.Equal(t, "", text)
	})

	t.Run("store and load round trip", func(t *testing.T) {
		d, err := NewDir(t.TempDir())
		require.NoError(t, err)

		payload := "keys are here\nwith a newline and a , separator"
		require.NoError(t, d.Store("abc123_keys", payload))

		text, err := d.Load("abc123_keys")
		require.NoError(t, err)
		assert.Equal(t, payload, text)
	})

	t.Run("overwrite replaces whole content", func(t *testing.T) {
		d, err := NewDir(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, d.Store("f", "a much longer initial content"))
		require.NoError(t, d.Store("f", "short"))

		text, err := d.Load("f")
		require.NoError(t, err)
		assert.Equal(t, "short", text)
	})

	t.Run("store leaves no temp files behind", func(t *testing.T) {
		root := t.TempDir()
		d, err := NewDir(root)
		require.NoError(t, err)

		require.NoError(t, d.Store("f", "one"))
		require.NoError(t, d.Store("f", "two"))

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "f", entries[0].Name())
	})

	t.Run("survives reopening", func(t *testing.T) {
		root := t.TempDir()

		d1, err := NewDir(root)
		require.NoError(t, err)
		require.NoError(t, d1.Store("f", "persisted"))

		// A fresh Dir over the same root sees the data, the restart
		// case the namespace store depends on.
		d2, err := NewDir(root)
		require.NoError(t, err)

		text, err := d2.Load("f")
		require.NoError(t, err)
		assert.Equal(t, "persisted", text)
	})

	t.Run("unreadable root reports ErrUnavailable", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission checks do not apply to root")
		}

		root := t.TempDir()
		d, err := NewDir(root)
		require.NoError(t, err)
		require.NoError(t, d.Store("f", "x"))

		require.NoError(t, os.Chmod(filepath.Join(root, "f"), 0o000))
		t.Cleanup(func() { os.Chmod(filepath.Join(root, "f"), 0o644) })

		_, err = d.Load("f")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
