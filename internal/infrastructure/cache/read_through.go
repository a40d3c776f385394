package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultTTL = 5 * time.Minute

// ReadThrough serves values from a Store and loads them on a miss.
// Concurrent misses for the same key share one load.
// Store failures degrade to loading from the source. A load that overlaps an
// Invalidate of its key returns its value but does not cache it.
type ReadThrough struct {
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

// NewReadThrough creates a read-through cache over store
func NewReadThrough(store Store, ttl time.Duration, logger *zap.Logger) *ReadThrough {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReadThrough{store: store, ttl: ttl, logger: logger, generations: make(map[string]uint64)}
}

// GetOrLoad decodes the cached value for key into dest, calling load on a miss
func (c *ReadThrough) GetOrLoad(ctx context.Context, key string, dest any, load func(ctx context.Context) (any, error)) error {
	data, hit, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Cache read failed, loading from source", zap.String("key", key), zap.Error(err))
	}
	if hit {
		if err := json.Unmarshal(data, dest); err == nil {
			return nil
		}
		c.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		gen := c.generation(key)
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode cache value %s: %w", key, err)
		}
		c.storeIfCurrent(ctx, key, gen, encoded)
		return encoded, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), dest)
}

// Invalidate drops keys. Loads already running for them will not write back.
func (c *ReadThrough) Invalidate(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		c.generations[key]++
		c.group.Forget(key)
	}
	c.mu.Unlock()
	return c.store.Delete(ctx, keys...)
}

func (c *ReadThrough) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// storeIfCurrent writes encoded unless key was invalidated since gen was read.
// The lock is held across Set so an Invalidate either precedes the check or
// deletes what was written.
func (c *ReadThrough) storeIfCurrent(ctx context.Context, key string, gen uint64, encoded []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key] != gen {
		c.logger.Debug("Skipping cache write for invalidated key", zap.String("key", key))
		return
	}
	if err := c.store.Set(ctx, key, encoded, c.ttl); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
