package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"datakit/pkg/query"
	"datakit/pkg/specification"
)

// gormSource adapts a gorm query chain to the query.Source contract. Each
// stage clones the chain, so composed sources never share statement state.
type gormSource[T any] struct {
	db *gorm.DB
}

// NewGormSource wraps db as a query source over T. Specifications passed to
// Filter must implement specification.Applier; one that does not surfaces as
// an error when the query executes.
func NewGormSource[T any](db *gorm.DB) query.Source[T] {
	return gormSource[T]{db: db}
}

func (s gormSource[T]) Filter(spec specification.Specification[T]) query.Source[T] {
	return gormSource[T]{db: specification.Apply(s.db, spec)}
}

func (s gormSource[T]) Order(keys ...query.SortKey[T]) query.Source[T] {
	db := s.db
	for _, k := range keys {
		db = db.Order(fmt.Sprintf("%s %s", k.Column, k.Direction))
	}
	return gormSource[T]{db: db}
}

func (s gormSource[T]) Skip(n int) query.Source[T] {
	return gormSource[T]{db: s.db.Offset(n)}
}

func (s gormSource[T]) Take(n int) query.Source[T] {
	return gormSource[T]{db: s.db.Limit(n)}
}

func (s gormSource[T]) Find(ctx context.Context) ([]T, error) {
	var out []T
	if err := s.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s gormSource[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
