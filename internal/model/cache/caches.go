package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"xuanxin.dev/backend-next/internal/core/chart"
	"xuanxin.dev/backend-next/internal/pkg/cache"
)

type Flusher func(ctx context.Context) error

var ErrUnknownCache = errors.New("cache: unknown cache name")

// fillLockExpiry bounds how long one instance may hold the fill lock of a
// cold chart key.
const fillLockExpiry = 10 * time.Second

var (
	ChartResults *cache.Set[chart.Result]

	ElementAdvisories *cache.Singular[map[string]chart.Advisory]

	once sync.Once

	flushers map[string]Flusher
)

// Initialize binds the caches to redis. Calling it again is a no-op.
func Initialize(client *redis.Client, rs *redsync.Redsync) {
	once.Do(func() {
		cache.Initialize(client, rs)
		initializeCaches()
	})
}

func initializeCaches() {
	flushers = make(map[string]Flusher)

	ChartResults = cache.NewSet[chart.Result]("chartResult#birthKey", cache.WithDistributedFill(fillLockExpiry))
	flushers["chartResult#birthKey"] = ChartResults.Flush

	ElementAdvisories = cache.NewSingular[map[string]chart.Advisory]("elementAdvisories")
	flushers["elementAdvisories"] = func(context.Context) error {
		return ElementAdvisories.Delete()
	}
}

// Names lists the caches that Delete accepts.
func Names() []string {
	names := make([]string, 0, len(flushers))
	for name := range flushers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Delete flushes the named cache.
func Delete(ctx context.Context, name string) error {
	flush, ok := flushers[name]
	if !ok {
		return errors.Wrap(ErrUnknownCache, name)
	}
	return flush(ctx)
}
