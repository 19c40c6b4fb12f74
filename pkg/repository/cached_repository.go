package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"datakit/pkg/query"
	"datakit/pkg/specification"
)

// CachedRepository decorates a Repository with read-through caching of Get.
// Writes pass through to the base repository and invalidate the cached entry.
// List and Count always hit the base repository: collection results depend on
// page, sort and specification and are not worth keying here.
type CachedRepository[T any, K comparable] struct {
	base   Repository[T, K]
	cache  Cache
	prefix string
	key    func(*T) K
}

// NewCachedRepository wraps base. prefix namespaces cache keys per record
// type; key extracts the identifier from a record so writes can invalidate.
func NewCachedRepository[T any, K comparable](base Repository[T, K], cache Cache, prefix string, key func(*T) K) *CachedRepository[T, K] {
	return &CachedRepository[T, K]{base: base, cache: cache, prefix: prefix, key: key}
}

func (r *CachedRepository[T, K]) Get(ctx context.Context, id K) (*T, error) {
	cacheKey := r.cacheKey(id)
	if b, ok := r.cache.Get(ctx, cacheKey); ok {
		var record T
		if err := json.Unmarshal(b, &record); err == nil {
			return &record, nil
		}
		// Undecodable entry, drop it and fall through to the base.
		r.cache.Delete(ctx, cacheKey)
	}

	record, err := r.base.Get(ctx, id)
	if err != nil || record == nil {
		return record, err
	}
	if b, err := json.Marshal(record); err == nil {
		r.cache.Set(ctx, cacheKey, b)
	}
	return record, nil
}

func (r *CachedRepository[T, K]) Add(ctx context.Context, record *T) error {
	if err := r.base.Add(ctx, record); err != nil {
		return err
	}
	r.cache.Delete(ctx, r.cacheKey(r.key(record)))
	return nil
}

func (r *CachedRepository[T, K]) Update(ctx context.Context, record *T) error {
	if err := r.base.Update(ctx, record); err != nil {
		return err
	}
	r.cache.Delete(ctx, r.cacheKey(r.key(record)))
	return nil
}

func (r *CachedRepository[T, K]) Delete(ctx context.Context, id K) error {
	if err := r.base.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Delete(ctx, r.cacheKey(id))
	return nil
}

func (r *CachedRepository[T, K]) List(ctx context.Context, page query.Page, sort []query.SortKey[T], spec specification.Specification[T]) ([]T, error) {
	return r.base.List(ctx, page, sort, spec)
}

func (r *CachedRepository[T, K]) Count(ctx context.Context, spec specification.Specification[T]) (int64, error) {
	return r.base.Count(ctx, spec)
}

func (r *CachedRepository[T, K]) cacheKey(id K) string {
	return fmt.Sprintf("%s:%v", r.prefix, id)
}
