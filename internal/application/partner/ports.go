package partner

import (
	"context"
	"io"

	"github.com/abstratium/partner/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ListCache caches reference data lists that are read far more often than
// they change. Values round-trip through JSON so dest must be a pointer.
type ListCache interface {
	// GetOrLoad fills dest from the cache, calling load on a miss
	GetOrLoad(ctx context.Context, key string, dest any, load func(ctx context.Context) (any, error)) error

	// Invalidate drops the given keys
	Invalidate(ctx context.Context, keys ...string) error
}

// ExportSink receives a rendered partner export
type ExportSink interface {
	// Write stores the export and returns where it was written
	Write(ctx context.Context, r io.Reader) (string, error)
}

// Cache keys for reference lists
const (
	cacheKeyTags              = "partner:tags"
	cacheKeyRelationshipTypes = "partner:relationship-types"
	cacheKeyActiveRelTypes    = "partner:relationship-types:active"
	cacheKeyPartnerTypes      = "partner:partner-types"
)

// loadCached reads through cache when one is configured
func loadCached[T any](ctx context.Context, cache ListCache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if cache == nil {
		return load(ctx)
	}
	var out T
	err := cache.GetOrLoad(ctx, key, &out, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	return out, err
}

// invalidate drops cached lists after a write
func invalidate(ctx context.Context, cache ListCache, base *zap.Logger, keys ...string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, keys...); err != nil {
		logger.For(ctx, base).Warn("Failed to invalidate cached lists", zap.Strings("keys", keys), zap.Error(err))
	}
}
