package query

import "cmp"

// Direction is one of the two sort directions.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns the SQL spelling of the direction.
func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// SortKey is one ordering directive: the column a SQL source orders by, the
// direction, and the comparator an in-memory source orders by. Build keys
// with Asc or Desc so both sides stay in agreement.
type SortKey[T any] struct {
	Column    string
	Direction Direction
	compare   func(a, b T) int
}

// Asc orders ascending by the value key extracts from each record.
func Asc[T any, K cmp.Ordered](column string, key func(T) K) SortKey[T] {
	return SortKey[T]{Column: column, Direction: Ascending, compare: compareBy(key)}
}

// Desc orders descending by the value key extracts from each record.
func Desc[T any, K cmp.Ordered](column string, key func(T) K) SortKey[T] {
	return SortKey[T]{Column: column, Direction: Descending, compare: compareBy(key)}
}

// Compare orders a against b under this key, direction applied. Keys built
// without a comparator impose no in-memory order and report every pair equal.
func (k SortKey[T]) Compare(a, b T) int {
	if k.compare == nil {
		return 0
	}
	c := k.compare(a, b)
	if k.Direction == Descending {
		c = -c
	}
	return c
}

func compareBy[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}
