package pattern

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := NewStore(root, ".js", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, root
}

func writePattern(t *testing.T, root, key, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(key)+".js")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestStoreLoad(t *testing.T) {
	store, root := newTestStore(t)
	writePattern(t, root, "javascript/express/routes/get-users-auth",
		"// @output-dir routes\nrouter.get('/users', handler);")

	t.Run("loads by hierarchical key", func(t *testing.T) {
		body, ok := store.Load("javascript/express/routes/get-users-auth")
		require.True(t, ok)
		assert.Contains(t, body, "router.get")
	})

	t.Run("missing key is not an error", func(t *testing.T) {
		_, ok := store.Load("javascript/express/routes/nope")
		assert.False(t, ok)
	})

	t.Run("traversal outside the root is rejected", func(t *testing.T) {
		_, ok := store.Load("../../etc/passwd")
		assert.False(t, ok)
	})

	t.Run("cache serves deleted files until invalidated", func(t *testing.T) {
		writePattern(t, root, "cached", "original body")
		body, ok := store.Load("cached")
		require.True(t, ok)
		assert.Equal(t, "original body", body)

		require.NoError(t, os.Remove(filepath.Join(root, "cached.js")))
		_, ok = store.Load("cached")
		assert.True(t, ok, "cache still holds the body")

		store.invalidate()
		_, ok = store.Load("cached")
		assert.False(t, ok)
	})
}

func TestStoreMetadata(t *testing.T) {
	store, root := newTestStore(t)

	t.Run("declared placement lines", func(t *testing.T) {
		writePattern(t, root, "with-meta",
			"// @output-dir db/queries\n// @file-naming {resource}_queries.js\nbody")

		meta, ok := store.Metadata("with-meta")
		require.True(t, ok)
		assert.Equal(t, "db/queries", meta.OutputDir)
		assert.Equal(t, "widget_queries.js", meta.FileName("widget"))
	})

	t.Run("defaults when undeclared", func(t *testing.T) {
		writePattern(t, root, "bare", "just code")

		meta, ok := store.Metadata("bare")
		require.True(t, ok)
		assert.Equal(t, "output", meta.OutputDir)
		assert.Equal(t, "widget.js", meta.FileName("widget"))
	})
}

func TestStoreList(t *testing.T) {
	store, root := newTestStore(t)
	writePattern(t, root, "javascript/express/routes/get-users-auth", "a")
	writePattern(t, root, "javascript/express/queries/create", "b")
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("docs"), 0o644))

	keys := store.List()

	assert.ElementsMatch(t, []string{
		"javascript/express/routes/get-users-auth",
		"javascript/express/queries/create",
	}, keys)
}
