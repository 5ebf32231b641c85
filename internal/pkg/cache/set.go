package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type SetOption func(*setOptions)

type setOptions struct {
	distributed bool
	lockExpiry  time.Duration
}

// WithDistributedFill serializes value computation of a cold key across
// instances with a redsync mutex held for at most expiry.
func WithDistributedFill(expiry time.Duration) SetOption {
	return func(o *setOptions) {
		o.distributed = true
		o.lockExpiry = expiry
	}
}

func NewSet[T any](prefix string, opts ...SetOption) *Set[T] {
	o := setOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Set[T]{
		prefix: prefix + ":",
		opts:   o,
	}
}

// Set is a redis keyed cache of msgpack encoded T values.
type Set[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	prefix string
	opts   setOptions
}

func (c *Set[T]) key(key string) string {
	return c.prefix + key
}

// Get returns ErrNotFound when the key is absent.
func (c *Set[T]) Get(ctx context.Context, key string, dest *T) error {
	key = c.key(key)
	resp, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		log.Error().Err(err).Str("key", key).Msg("failed to get value from redis")
		return err
	}
	if err := unmarshal(resp, dest); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal value from msgpack from redis")
		return err
	}
	return nil
}

func (c *Set[T]) Set(ctx context.Context, key string, value *T, expire time.Duration) error {
	key = c.key(key)
	if l := log.Trace(); l.Enabled() {
		l.Str("key", key).Msg("setting value to redis")
	}
	b, err := marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal value with msgpack")
		return err
	}
	if err := client.Set(ctx, key, b, expire).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set value to redis")
		return err
	}
	return nil
}

// MutexGetSet reads key into dest, or computes it with valueFunc when it is
// absent, stores it and copies it into dest. Concurrent misses of one key
// compute once. The first return value reports whether valueFunc ran.
func (c *Set[T]) MutexGetSet(ctx context.Context, key string, dest *T, valueFunc func() (*T, error), expire time.Duration) (bool, error) {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	// onwards, cache key does not exist

	return c.slowMutexGetSet(ctx, key, dest, valueFunc, expire)
}

func (c *Set[T]) slowMutexGetSet(ctx context.Context, key string, dest *T, valueFunc func() (*T, error), expire time.Duration) (bool, error) {
	c.m.Lock()
	defer c.m.Unlock()

	if c.opts.distributed && locker != nil {
		mu := locker.NewMutex("lock:"+c.key(key), redsync.WithExpiry(c.opts.lockExpiry))
		if err := mu.LockContext(ctx); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to acquire fill lock, computing unlocked")
		} else {
			defer func() {
				if _, err := mu.UnlockContext(ctx); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("failed to release fill lock")
				}
			}()
		}
	}

	err := c.Get(ctx, key, dest)
	if err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	value, err := valueFunc()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to get value from valueFunc() in MutexGetSet")
		return true, err
	}

	if err := c.Set(ctx, key, value, expire); err != nil {
		// the value is still good to serve
		log.Warn().Err(err).Str("key", key).Msg("failed to set value to redis in MutexGetSet")
	}

	*dest = *value
	return true, nil
}

func (c *Set[T]) Delete(ctx context.Context, key string) error {
	key = c.key(key)
	if err := client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete value from redis")
		return err
	}
	return nil
}

var flushScript = redis.NewScript(`local keys = redis.call('keys', ARGV[1])
	for i=1,#keys,5000 do
		redis.call('del', unpack(keys, i, math.min(i+4999, #keys)))
	end
return #keys`)

// Flush removes every key of the set.
func (c *Set[T]) Flush(ctx context.Context) error {
	if err := flushScript.Run(ctx, client, []string{}, c.prefix+"*").Err(); err != nil {
		log.Error().Err(err).Str("prefix", c.prefix).Msg("failed to flush cache")
		return err
	}
	return nil
}
