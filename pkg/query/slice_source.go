package query

import (
	"context"
	"slices"
	"sort"

	"github.com/samber/lo"

	"datakit/pkg/specification"
)

// sliceSource is the in-memory Source. Composition only records stages; the
// slice is filtered, sorted and windowed when Find runs. The backing slice is
// never mutated.
type sliceSource[T any] struct {
	items   []T
	filters []specification.Specification[T]
	keys    []SortKey[T]
	skip    int
	take    int
	hasTake bool
}

// NewSliceSource wraps items as a lazily-composable query source.
func NewSliceSource[T any](items []T) Source[T] {
	return sliceSource[T]{items: items}
}

func (s sliceSource[T]) Filter(spec specification.Specification[T]) Source[T] {
	if spec == nil {
		return s
	}
	s.filters = append(slices.Clip(s.filters), spec)
	return s
}

func (s sliceSource[T]) Order(keys ...SortKey[T]) Source[T] {
	s.keys = keys
	return s
}

func (s sliceSource[T]) Skip(n int) Source[T] {
	s.skip = n
	return s
}

func (s sliceSource[T]) Take(n int) Source[T] {
	s.take = n
	s.hasTake = true
	return s
}

func (s sliceSource[T]) Find(_ context.Context) ([]T, error) {
	out := s.filtered()

	if len(s.keys) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, k := range s.keys {
				if c := k.Compare(out[i], out[j]); c != 0 {
					return c < 0
				}
			}
			return false
		})
	}

	if s.skip >= len(out) {
		return []T{}, nil
	}
	out = out[s.skip:]
	if s.hasTake && s.take < len(out) {
		out = out[:s.take]
	}
	return out, nil
}

func (s sliceSource[T]) Count(_ context.Context) (int64, error) {
	return int64(len(s.filtered())), nil
}

func (s sliceSource[T]) filtered() []T {
	out := slices.Clone(s.items)
	for _, spec := range s.filters {
		out = lo.Filter(out, func(item T, _ int) bool {
			return spec.Match(item)
		})
	}
	return out
}
