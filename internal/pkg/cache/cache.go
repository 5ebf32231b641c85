// Package cache holds the redis backed keyed caches and the in-process
// singular caches of the service.
package cache

import (
	"bytes"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrNotFound = errors.New("cache: not found")

var (
	client *redis.Client
	locker *redsync.Redsync
)

// Initialize binds every Set to the client. A nil locker disables the
// cross-instance fill lock.
func Initialize(c *redis.Client, rs *redsync.Redsync) {
	client = c
	locker = rs
}

// values reuse the json tags so cached and served shapes agree
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
