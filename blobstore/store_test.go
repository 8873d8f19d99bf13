package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlobStore(t *testing.T, store BlobStore) {
	ctx := context.Background()
	data := []byte("hello world, this is a test blob")

	t.Run("PutOpenRead", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "models/a.kmns", data))

		blob, err := store.Open(ctx, "models/a.kmns")
		require.NoError(t, err)
		defer blob.Close()

		require.Equal(t, int64(len(data)), blob.Size())

		buf := make([]byte, 5)
		n, err := blob.ReadAt(ctx, buf, 6)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, "world", string(buf))

		buf = make([]byte, 10)
		n, err = blob.ReadAt(ctx, buf, int64(len(data))-4)
		assert.Equal(t, 4, n)
		assert.Equal(t, io.EOF, err)

		n, err = blob.ReadAt(ctx, buf, int64(len(data))+1)
		assert.Zero(t, n)
		assert.Equal(t, io.EOF, err)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "CURRENT", []byte("models/a.kmns")))
		require.NoError(t, store.Put(ctx, "CURRENT", []byte("models/b.kmns")))

		got, err := ReadAll(ctx, store, "CURRENT")
		require.NoError(t, err)
		assert.Equal(t, "models/b.kmns", string(got))
	})

	t.Run("PutCopiesInput", func(t *testing.T) {
		in := []byte("abc")
		require.NoError(t, store.Put(ctx, "copy", in))
		in[0] = 'x'

		got, err := ReadAll(ctx, store, "copy")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))
	})

	t.Run("NewReader", func(t *testing.T) {
		blob, err := store.Open(ctx, "models/a.kmns")
		require.NoError(t, err)
		defer blob.Close()

		got, err := io.ReadAll(NewReader(ctx, blob))
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "models/c.kmns", data))

		names, err := store.List(ctx, "models/")
		require.NoError(t, err)
		assert.Equal(t, []string{"models/a.kmns", "models/c.kmns"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, all, "CURRENT")
		assert.Contains(t, all, "copy")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "models/c.kmns"))
		require.NoError(t, store.Delete(ctx, "models/c.kmns"))

		_, err := store.Open(ctx, "models/c.kmns")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = ReadAll(ctx, store, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Empty", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "empty", nil))

		got, err := ReadAll(ctx, store, "empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemoryStore(t *testing.T) {
	testBlobStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	testBlobStore(t, NewLocalStore(t.TempDir()))
}
