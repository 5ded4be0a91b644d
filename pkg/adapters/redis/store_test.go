package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/kwargs/pkg/adapters/redis"
	"github.com/aretw0/kwargs/pkg/fixture"
	"github.com/aretw0/kwargs/pkg/ports"
	"github.com/aretw0/kwargs/pkg/value"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	require.NoError(t, store.Ping(context.Background()))
	ports.RunDictStoreContract(t, store)
}

func TestRedisStore_StoredAsOrderedJSON(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, store.Save(context.Background(), "canonical", fixture.Canonical()))

	raw, err := mr.Get(redis.DefaultPrefix + "data:canonical")
	require.NoError(t, err)
	assert.Equal(t,
		`{"int":42,"double":3.14,"bool":true,"string":"hello","nested":{"inner_key":42},"vector_val":[42,3.14,"hello",true]}`,
		raw)
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"data:broken", "{not json"))
	_, err := store.Load(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, value.ErrNotFound)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	name := "dict-ttl"

	err := store.Save(ctx, name, fixture.Canonical())
	assert.NoError(t, err)

	names, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, names, name)

	// Key expiry is driven by miniredis time.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, name)
	assert.ErrorIs(t, err, value.ErrNotFound)

	// Index pruning compares against wall-clock time.
	time.Sleep(1200 * time.Millisecond)

	names, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := store.Save(ctx, "my-dict", fixture.Canonical())
	assert.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:data:my-dict"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, list, "my-dict")
}

func TestRedisStore_NameMatchingIndexKey(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", fixture.Canonical()))
	require.NoError(t, store.Save(ctx, "index", fixture.Canonical()))
	require.NoError(t, store.Save(ctx, "b", fixture.Canonical()))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "index"}, names)

	keyType, err := client.Type(ctx, redis.DefaultPrefix+"index").Result()
	require.NoError(t, err)
	assert.Equal(t, "zset", keyType)
	assert.True(t, mr.Exists(redis.DefaultPrefix+"data:index"))
}
