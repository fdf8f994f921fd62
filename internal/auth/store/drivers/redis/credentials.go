// Package redis keeps pending OTP credentials in Redis. It only implements
// store.Credentials; users and notes stay in the primary database and the
// two are joined with store.WithCredentials.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces credential keys: <prefix>:<email>.
const DefaultPrefix = "otp"

// consumeLua atomically checks and deletes a credential hash.
// KEYS[1] = credential key
// ARGV[1] = submitted code
// ARGV[2] = now in unix milliseconds
//
// Returns {id, expires_at, created_at} on success and nil on any miss.
var consumeLua = redis.NewScript(`
local h = redis.call('HMGET', KEYS[1], 'code', 'expires_at', 'id', 'created_at')
if not h[1] then
  return nil
end

if tonumber(h[2]) <= tonumber(ARGV[2]) then
  redis.call('DEL', KEYS[1])
  return nil
end

if h[1] ~= ARGV[1] then
  return nil
end

redis.call('DEL', KEYS[1])
return {h[3], h[2], h[4]}
`)

type Credentials struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewCredentials wraps an existing client. An empty prefix uses DefaultPrefix.
func NewCredentials(rdb redis.UniversalClient, prefix string) *Credentials {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Credentials{rdb: rdb, prefix: prefix}
}

// Open parses a redis:// URL, connects and pings.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (c *Credentials) key(email string) string {
	return c.prefix + ":" + email
}

// ReplaceCredential overwrites the hash for the email inside MULTI/EXEC and
// lets Redis expire it at the credential's expiry.
func (c *Credentials) ReplaceCredential(ctx context.Context, cred domain.Credential) error {
	key := c.key(cred.Email)

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"id", cred.ID,
			"code", cred.Code,
			"expires_at", cred.ExpiresAt.UnixMilli(),
			"created_at", cred.CreatedAt.UnixMilli(),
		)
		pipe.PExpireAt(ctx, key, cred.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace credential: %w", err)
	}
	return nil
}

func (c *Credentials) ConsumeCredential(
	ctx context.Context,
	email, code string,
	now time.Time,
) (domain.Credential, error) {
	res, err := consumeLua.Run(ctx, c.rdb, []string{c.key(email)}, code, now.UnixMilli()).StringSlice()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Credential{}, store.ErrNotFound
		}
		return domain.Credential{}, fmt.Errorf("consume credential: %w", err)
	}
	if len(res) != 3 {
		return domain.Credential{}, fmt.Errorf("consume credential: unexpected reply of length %d", len(res))
	}

	expiresAt, err := parseMillis(res[1])
	if err != nil {
		return domain.Credential{}, err
	}
	createdAt, err := parseMillis(res[2])
	if err != nil {
		return domain.Credential{}, err
	}

	return domain.Credential{
		ID:        res[0],
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}, nil
}

func (c *Credentials) DeleteCredentials(ctx context.Context, email string) error {
	if err := c.rdb.Del(ctx, c.key(email)).Err(); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	return nil
}

// DeleteExpiredCredentials is a no-op: every key carries its own PEXPIREAT.
func (c *Credentials) DeleteExpiredCredentials(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func parseMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse credential timestamp %q: %w", s, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}
