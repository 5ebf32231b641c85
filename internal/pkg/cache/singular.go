package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// NoExpiration keeps a Singular value until it is deleted.
const NoExpiration = cache.NoExpiration

func NewSingular[T any](key string) *Singular[T] {
	return &Singular[T]{
		key: key,
		c:   cache.New(cache.NoExpiration, time.Minute*10),
	}
}

// Singular is an in-process cache of a single value.
type Singular[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	key string

	c *cache.Cache
}

func (c *Singular[T]) Get(dest *T) error {
	result, ok := c.c.Get(c.key)
	if !ok {
		return ErrNotFound
	}
	*dest = result.(T)
	return nil
}

func (c *Singular[T]) Set(value T, expire time.Duration) {
	c.c.Set(c.key, value, expire)
}

// MutexGetSet is Set.MutexGetSet for the single value.
func (c *Singular[T]) MutexGetSet(dest *T, valueFunc func() (T, error), expire time.Duration) error {
	if err := c.Get(dest); err == nil {
		return nil
	}

	c.m.Lock()
	defer c.m.Unlock()
	if err := c.Get(dest); err == nil {
		return nil
	}

	value, err := valueFunc()
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to get value from valueFunc() in MutexGetSet")
		return err
	}
	c.Set(value, expire)
	*dest = value

	return nil
}

func (c *Singular[T]) Delete() error {
	c.c.Flush()
	return nil
}
