package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kwargs/pkg/fixture"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDictStoreContract runs a suite of tests to verify that a DictStore implementation
// adheres to the defined interface contract.
func RunDictStoreContract(t *testing.T, store DictStore) {
	ctx := context.Background()
	name := "contract-test-dict-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		dict := fixture.Exchange()

		err := store.Save(ctx, name, dict)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, value.Equal(dict, loaded), "diff: %v", value.Diff(dict, loaded))

		// Order and Int/Float tags must survive persistence.
		want, _ := dict.AsMapping()
		got, err := loaded.AsMapping()
		require.NoError(t, err)
		assert.Equal(t, want.Keys(), got.Keys())
		i, _ := got.Get("int")
		assert.Equal(t, value.TagInt, i.Tag())
	})

	t.Run("Isolation", func(t *testing.T) {
		dict := fixture.CanonicalMapping()
		require.NoError(t, store.Save(ctx, name, dict.Value()))

		dict.Set("int", value.Int(0))
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		m, _ := loaded.AsMapping()
		assert.Equal(t, int64(42), value.LookupOr[int64](m, "int", 0))

		m.Set("int", value.Int(1))
		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.True(t, value.Equal(fixture.Canonical(), again))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, value.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, name, fixture.Canonical())
		require.NoError(t, err)

		err = store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, value.ErrNotFound, "Load after Delete should return ErrNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id1, fixture.Canonical())
		_ = store.Save(ctx, id2, value.NewSequence().Value())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})

	t.Run("Names Do Not Collide With Store Bookkeeping", func(t *testing.T) {
		reserved := []string{"index", "data:" + name}
		defer func() {
			for _, n := range reserved {
				_ = store.Delete(ctx, n)
			}
			_ = store.Delete(ctx, name+"-after")
		}()

		require.NoError(t, store.Save(ctx, name, fixture.Canonical()))
		for _, n := range reserved {
			require.NoError(t, store.Save(ctx, n, value.Int(int64(len(n)))), "save %q", n)
		}
		require.NoError(t, store.Save(ctx, name+"-after", fixture.Canonical()))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, name)
		assert.Contains(t, names, name+"-after")
		for _, n := range reserved {
			assert.Contains(t, names, n)
			loaded, err := store.Load(ctx, n)
			require.NoError(t, err, "load %q", n)
			assert.True(t, value.Equal(value.Int(int64(len(n))), loaded))
		}

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.True(t, value.Equal(fixture.Canonical(), loaded))
	})
}
