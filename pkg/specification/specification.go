package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// Specification describes which records match a criterion. Implementations
// are plain values and safe to share between goroutines.
//
// A nil Specification means "match all".
type Specification[T any] interface {
	Match(record T) bool
}

// Applier is implemented by specifications that can push their predicate
// into a gorm query instead of evaluating it in memory. SQL-backed sources
// require it; in-memory sources use Match directly.
type Applier interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Apply translates spec into a gorm query stage. A nil spec leaves the query
// untouched. A spec that does not implement Applier is a caller error: the
// error is recorded on the statement and surfaces when the query executes.
func Apply[T any](db *gorm.DB, spec Specification[T]) *gorm.DB {
	if spec == nil {
		return db
	}
	if a, ok := spec.(Applier); ok {
		return a.Apply(db)
	}
	_ = db.AddError(fmt.Errorf("specification %T cannot be translated to SQL", spec))
	return db
}
