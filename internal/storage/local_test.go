package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	key := "photos/user@test.com/car.jpg"
	require.NoError(t, store.Save(ctx, key, strings.NewReader("jpeg bytes"), "image/jpeg"))

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))
	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "nope/missing.png"))
}

func TestLocalStorage_URLs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	bare, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	url, err := bare.GetURL(ctx, "a/b.png")
	require.NoError(t, err)
	assert.Equal(t, "/files/a/b.png", url)

	withBase, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "http://localhost:4000/uploads"})
	require.NoError(t, err)

	url, err = withBase.GetURL(ctx, "a/b.png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000/uploads/a/b.png", url)

	// Presign для локального стораджа совпадает с публичным URL
	presigned, err := withBase.PresignUpload(ctx, "a/b.png", "image/png", 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, url, presigned)
}
