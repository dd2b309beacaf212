package snapshot_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents/snapshot"
)

type storeFactory func(t *testing.T) snapshot.Store

// storeContractTest runs the same checks against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	ctx := context.Background()

	t.Run(name+"/Save_and_Load", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		data := []byte(`{"count": 1}`)
		require.NoError(t, store.Save(ctx, "app", "counter", data))

		loaded, err := store.Load(ctx, "app", "counter")
		require.NoError(t, err)
		assert.Equal(t, data, loaded)
	})

	t.Run(name+"/Load_NotFound", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.Load(ctx, "app", "missing")
		assert.ErrorIs(t, err, snapshot.ErrNotFound)
	})

	t.Run(name+"/Save_Overwrite", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(ctx, "app", "counter", []byte("first")))
		require.NoError(t, store.Save(ctx, "app", "counter", []byte("second")))

		loaded, err := store.Load(ctx, "app", "counter")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), loaded)

		infos, err := store.List(ctx, "app")
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, 2, infos[0].Sequence)
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		infos, err := store.List(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run(name+"/List_Ordered", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(ctx, "app", "a", []byte("a")))
		require.NoError(t, store.Save(ctx, "app", "b", []byte("bb")))
		require.NoError(t, store.Save(ctx, "app", "c", []byte("ccc")))

		infos, err := store.List(ctx, "app")
		require.NoError(t, err)
		require.Len(t, infos, 3)

		for i, want := range []string{"a", "b", "c"} {
			assert.Equal(t, want, infos[i].Event)
			assert.Equal(t, "app", infos[i].Scope)
			assert.Equal(t, i+1, infos[i].Sequence)
			assert.Equal(t, int64(i+1), infos[i].Size)
			assert.False(t, infos[i].Timestamp.IsZero())
		}
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(ctx, "app", "counter", []byte("data")))
		require.NoError(t, store.Delete(ctx, "app", "counter"))

		_, err := store.Load(ctx, "app", "counter")
		assert.ErrorIs(t, err, snapshot.ErrNotFound)

		assert.NoError(t, store.Delete(ctx, "app", "counter"))
		assert.NoError(t, store.Delete(ctx, "nobody", "counter"))
	})

	t.Run(name+"/DeleteScope", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(ctx, "one", "a", []byte("a")))
		require.NoError(t, store.Save(ctx, "one", "b", []byte("b")))
		require.NoError(t, store.Save(ctx, "two", "a", []byte("other")))

		require.NoError(t, store.DeleteScope(ctx, "one"))

		infos, err := store.List(ctx, "one")
		require.NoError(t, err)
		assert.Empty(t, infos)

		data, err := store.Load(ctx, "two", "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("other"), data)
	})

	t.Run(name+"/DataCopy", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		original := []byte("original")
		require.NoError(t, store.Save(ctx, "app", "counter", original))
		original[0] = 'X'

		loaded, err := store.Load(ctx, "app", "counter")
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), loaded)
	})

	t.Run(name+"/Close_ThenError", func(t *testing.T) {
		store := factory(t)
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())

		assert.ErrorIs(t, store.Save(ctx, "app", "counter", nil), snapshot.ErrStoreClosed)
		_, err := store.Load(ctx, "app", "counter")
		assert.ErrorIs(t, err, snapshot.ErrStoreClosed)
		_, err = store.List(ctx, "app")
		assert.ErrorIs(t, err, snapshot.ErrStoreClosed)
		assert.ErrorIs(t, store.Delete(ctx, "app", "counter"), snapshot.ErrStoreClosed)
		assert.ErrorIs(t, store.DeleteScope(ctx, "app"), snapshot.ErrStoreClosed)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContractTest(t, "MemoryStore", func(t *testing.T) snapshot.Store {
		return snapshot.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	storeContractTest(t, "SQLiteStore", func(t *testing.T) snapshot.Store {
		store, err := snapshot.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return store
	})
}

func TestMemoryStore_Len(t *testing.T) {
	ctx := context.Background()
	store := snapshot.NewMemoryStore()

	require.NoError(t, store.Save(ctx, "one", "a", nil))
	require.NoError(t, store.Save(ctx, "two", "a", nil))
	require.NoError(t, store.Save(ctx, "two", "b", nil))
	assert.Equal(t, 3, store.Len())
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshots.db")

	first, err := snapshot.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "app", "counter", []byte(`{"count":3}`)))
	require.NoError(t, first.Close())

	second, err := snapshot.NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	data, err := second.Load(ctx, "app", "counter")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"count":3}`), data)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := snapshot.NewSQLiteStore("/nonexistent/path/snapshots.db")
	assert.Error(t, err)
}
