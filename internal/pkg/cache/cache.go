// Package cache stores rendered query responses. The datasets are read-only for the life
// of the process, so entries are never invalidated, only expired.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

const keyPrefix = "tstats:"

type Cache interface {
	// Get reports a miss on any backend error; a broken cache must not fail a query.
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Close() error
}

// Key joins parts into a namespaced cache key.
func Key(parts ...string) string {
	return keyPrefix + strings.Join(parts, ":")
}

// New connects to redis when redis.addr is set and falls back to Nop otherwise.
func New(ctx context.Context) (Cache, error) {
	addr := viper.GetString(constants.ViperRedisAddrKey)
	if addr == "" {
		return Nop{}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache.New: redis ping: %w", err)
	}

	return NewRedis(client, viper.GetDuration(constants.ViperRedisTTLKey)), nil
}

type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warnf(ctx, "cache get %s: %s", key, err.Error())
		}
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		logger.Warnf(ctx, "cache set %s: %s", key, err.Error())
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Nop) Set(context.Context, string, []byte)        {}
func (Nop) Close() error                               { return nil }
