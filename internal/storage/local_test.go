package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutMovesFileIntoPlace(t *testing.T) {
	ls, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(src, []byte("img"), 0o644))

	url, err := ls.Put(context.Background(), src, "123-abcd.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, PublicPrefix+"123-abcd.png", url)

	// Source consumed, destination in the public directory
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(ls.Dir, "123-abcd.png"))
	assert.NoError(t, err)
}

func TestLocalRemove(t *testing.T) {
	ls, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	dst := filepath.Join(ls.Dir, "gone.png")
	require.NoError(t, os.WriteFile(dst, []byte("img"), 0o644))

	require.NoError(t, ls.Remove(context.Background(), PublicPrefix+"gone.png"))

	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalRemoveIgnoresForeignURLs(t *testing.T) {
	ls, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, ls.Remove(context.Background(), "https://www.gravatar.com/avatar/abc?d=mm"))
	assert.NoError(t, ls.Remove(context.Background(), PublicPrefix+"missing.png"))

	// Path escapes are not taken literally
	assert.NoError(t, ls.Remove(context.Background(), PublicPrefix+"../secret"))
}
