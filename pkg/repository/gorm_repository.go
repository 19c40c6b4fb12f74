package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"datakit/pkg/query"
	"datakit/pkg/specification"
)

// GormRepository is the one database-backed Repository implementation. It is
// a thin adapter: SQL generation, change tracking and transactions are all
// gorm's job, this type only shapes queries and maps the not-found error.
type GormRepository[T any, K comparable] struct {
	db *gorm.DB
}

func NewGormRepository[T any, K comparable](db *gorm.DB) *GormRepository[T, K] {
	return &GormRepository[T, K]{db: db}
}

func (r *GormRepository[T, K]) Get(ctx context.Context, id K) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *GormRepository[T, K]) Add(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *GormRepository[T, K]) Update(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *GormRepository[T, K]) Delete(ctx context.Context, id K) error {
	return r.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error
}

func (r *GormRepository[T, K]) List(ctx context.Context, page query.Page, sort []query.SortKey[T], spec specification.Specification[T]) ([]T, error) {
	src := NewGormSource[T](r.db.WithContext(ctx))
	return query.Compose(src, page, sort, spec).Find(ctx)
}

func (r *GormRepository[T, K]) Count(ctx context.Context, spec specification.Specification[T]) (int64, error) {
	src := NewGormSource[T](r.db.WithContext(ctx))
	if spec != nil {
		src = src.Filter(spec)
	}
	return src.Count(ctx)
}
