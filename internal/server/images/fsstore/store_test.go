package fsstore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/shareall/internal/server/images"
)

func setupTestStore(t *testing.T) (*Store, string) {
	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := New(logger, root, "profile", "attachments")
	require.NoError(t, err)

	return store, root
}

func TestNew_CreatesFolders(t *testing.T) {
	_, root := setupTestStore(t)

	for _, dir := range []string{"profile", "attachments"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestStore_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	store, root := setupTestStore(t)

	name, err := store.Save(ctx, []byte("image-bytes"))
	require.NoError(t, err)
	assert.True(t, images.ValidName(name))

	onDisk, err := os.ReadFile(filepath.Join(root, "profile", name))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(onDisk))

	rc, err := store.Open(ctx, name)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "image-bytes", string(content))

	require.NoError(t, store.Delete(ctx, name))
	_, err = os.Stat(filepath.Join(root, "profile", name))
	assert.True(t, os.IsNotExist(err))

	// Повторное удаление не является ошибкой
	assert.NoError(t, store.Delete(ctx, name))

	_, err = store.Open(ctx, name)
	assert.ErrorIs(t, err, images.ErrImageNotFound)
}

func TestStore_SaveGeneratesDistinctNames(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	first, err := store.Save(ctx, []byte("a"))
	require.NoError(t, err)
	second, err := store.Save(ctx, []byte("a"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStore_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	assert.ErrorIs(t, store.Delete(ctx, "../secret"), images.ErrInvalidName)

	_, err := store.Open(ctx, "../secret")
	assert.ErrorIs(t, err, images.ErrImageNotFound)
}
