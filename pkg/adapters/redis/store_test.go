package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/decisiontree/pkg/adapters/redis"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunSessionStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("skill:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.NewSessionRecord("s1")))
	assert.True(t, mr.Exists("skill:rec:s1"))
	assert.True(t, mr.Exists("skill:index"))
	assert.NoError(t, store.Ping(ctx))
}

func TestRedisStore_ReservedLookingIDs(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.NewSessionRecord("s1")))
	for _, id := range []string{"index", "lock:s1", "rec:s1"} {
		require.NoError(t, store.Save(ctx, id, domain.NewSessionRecord(id)), id)
	}
	require.NoError(t, store.Save(ctx, "s2", domain.NewSessionRecord("s2")))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s1", "s2", "index", "lock:s1", "rec:s1"}, sessions)

	rec, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "index", rec.SessionID)
	rec, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", rec.SessionID)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	now := time.Now()
	clock := func() time.Time { return now }
	store := redis.NewFromClient(client, redis.WithTTL(time.Second), redis.WithClock(clock))
	ctx := context.Background()
	sessionID := "session-ttl"

	require.NoError(t, store.Save(ctx, sessionID, domain.NewSessionRecord(sessionID)))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, sessions, sessionID)

	// Expire the key in miniredis and move the index clock past the score.
	mr.FastForward(2 * time.Second)
	now = now.Add(2 * time.Second)

	_, err = store.Load(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_LoadCorrupt(t *testing.T) {
	mr, client := newClient(t)
	require.NoError(t, mr.Set(redis.DefaultPrefix+"rec:bad", "{"))

	_, err := redis.NewFromClient(client).Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}
