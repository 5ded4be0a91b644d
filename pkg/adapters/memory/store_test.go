package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/kwargs/pkg/adapters/memory"
	"github.com/aretw0/kwargs/pkg/ports"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunDictStoreContract(t, store)
}

func TestMemoryStore_ListSorted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, name := range []string{"b", "c", "a"} {
		require.NoError(t, store.Save(ctx, name, value.Null()))
	}

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}
