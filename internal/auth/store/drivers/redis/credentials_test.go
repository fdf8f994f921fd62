package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/drivers/redis"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/storetest"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCredentialsContract(t *testing.T) {
	storetest.RunCredentials(t, func(t *testing.T) store.Credentials {
		_, rdb := newClient(t)
		return redis.NewCredentials(rdb, "")
	})
}

func TestReplaceSetsKeyExpiry(t *testing.T) {
	mr, rdb := newClient(t)
	creds := redis.NewCredentials(rdb, "test")

	ctx := context.Background()
	require.NoError(t, creds.ReplaceCredential(ctx, storetest.NewCredential("ada@example.com", "123456", 10*time.Minute)))

	require.True(t, mr.Exists("test:ada@example.com"))
	require.Equal(t, "123456", mr.HGet("test:ada@example.com", "code"))
	require.Greater(t, mr.TTL("test:ada@example.com"), time.Duration(0))

	mr.FastForward(11 * time.Minute)
	require.False(t, mr.Exists("test:ada@example.com"))
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := redis.Open(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, rdb.Close())

	_, err = redis.Open(context.Background(), "not a url")
	require.Error(t, err)
}

// Users and notes come from SQLite, credentials from Redis.
func TestWithCredentialsOverSQLite(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		base, err := sqlite.NewStore(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = base.Close() })
		require.NoError(t, base.ApplyMigrations())

		_, rdb := newClient(t)
		return store.WithCredentials(base, redis.NewCredentials(rdb, ""))
	})
}
