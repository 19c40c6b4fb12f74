package query

import (
	"context"

	"datakit/pkg/specification"
)

// Page selects one bounded slice of an ordered, filtered sequence.
//
// Size must be positive and Index non-negative. Violations are caller errors:
// they are not validated or clamped here and surface from whatever executes
// the composed query.
type Page struct {
	Size  int
	Index int
}

// Offset is the number of records skipped before the page starts.
func (p Page) Offset() int {
	return p.Index * p.Size
}

// Source is a lazily-composable sequence of records. Every composition method
// returns a new Source and leaves the receiver untouched, so a Source can be
// shared and re-composed freely. Nothing is evaluated until Find or Count.
type Source[T any] interface {
	// Filter keeps only records matching spec.
	Filter(spec specification.Specification[T]) Source[T]
	// Order sorts by the given keys, primary key first. The sort is stable
	// and lexicographic: a later key only breaks ties left by earlier keys.
	Order(keys ...SortKey[T]) Source[T]
	// Skip drops the first n records.
	Skip(n int) Source[T]
	// Take bounds the result to at most n records.
	Take(n int) Source[T]

	// Find executes the composed query and returns the records.
	Find(ctx context.Context) ([]T, error)
	// Count executes the composed filters and returns how many records
	// match. Ordering and pagination stages are not applied.
	Count(ctx context.Context) (int64, error)
}

// Compose shapes src into the query for one page: filter first (so the page
// window counts only matching records), then the sort keys in order, then
// skip/take for the requested page. The returned Source is not evaluated;
// execution stays with the caller.
//
// A nil spec matches all records. An empty key list leaves src's order as-is.
func Compose[T any](src Source[T], page Page, keys []SortKey[T], spec specification.Specification[T]) Source[T] {
	if spec != nil {
		src = src.Filter(spec)
	}
	if len(keys) > 0 {
		src = src.Order(keys...)
	}
	return src.Skip(page.Offset()).Take(page.Size)
}
