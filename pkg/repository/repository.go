package repository

import (
	"context"

	"datakit/pkg/query"
	"datakit/pkg/specification"
)

// Repository is the generic data-access contract. T is the persistence model,
// K its identifier type.
//
// Read operations that find nothing return (nil, nil), not an error.
type Repository[T any, K comparable] interface {
	Get(ctx context.Context, id K) (*T, error)
	Add(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id K) error

	// List returns one page of the filtered, sorted record set.
	List(ctx context.Context, page query.Page, sort []query.SortKey[T], spec specification.Specification[T]) ([]T, error)
	// Count returns how many records match spec. A nil spec counts all.
	Count(ctx context.Context, spec specification.Specification[T]) (int64, error)
}
