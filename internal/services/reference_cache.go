package services

import (
	"context"
	"time"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/pkg/cache"
	"care_scheduler_backend/pkg/utils"
)

const (
	federalStatesCachePrefix = "federal-states:"
	clientsCachePrefix       = "clients:"
)

// ReferenceCache caches lists that every actor sees in full. A nil Cache disables caching.
type ReferenceCache struct {
	Cache cache.Cache
	TTL   time.Duration
}

// cachedList serves q from the cache when q is unrestricted and fills the cache on a miss.
// Cache failures are logged and fall through to load.
func cachedList[T any](ctx context.Context, rc ReferenceCache, key string, q access.Query, load func(access.Query) ([]T, error)) ([]T, error) {
	if rc.Cache == nil || !q.Scope.IsAll() || len(q.Criteria) > 0 {
		return load(q)
	}

	items, ok, err := cache.GetJSON[[]T](ctx, rc.Cache, key)
	if err != nil {
		utils.LogError(err, "Cache: read failed for "+key)
	}
	if ok {
		return items, nil
	}

	items, err = load(q)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, rc.Cache, key, items, rc.TTL); err != nil {
		utils.LogError(err, "Cache: write failed for "+key)
	}
	return items, nil
}

func (rc ReferenceCache) invalidate(ctx context.Context, prefix string) {
	if rc.Cache == nil {
		return
	}
	if err := rc.Cache.Invalidate(ctx, prefix); err != nil {
		utils.LogError(err, "Cache: invalidate failed for "+prefix)
	}
}
