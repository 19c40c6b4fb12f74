package specification

import "gorm.io/gorm"

// WhereSpec pairs a SQL condition with the equivalent in-memory predicate.
type WhereSpec[T any] struct {
	query string
	args  []any
	match func(T) bool
}

// Where builds a specification from a SQL fragment and the predicate that
// mirrors it. Both sides must describe the same criterion; the SQL side is
// used by database-backed sources, the predicate by in-memory ones.
func Where[T any](query string, match func(T) bool, args ...any) WhereSpec[T] {
	return WhereSpec[T]{query: query, args: args, match: match}
}

func (s WhereSpec[T]) Match(record T) bool {
	if s.match == nil {
		return true
	}
	return s.match(record)
}

func (s WhereSpec[T]) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(s.query, s.args...)
}

// All matches every record.
func All[T any]() Specification[T] {
	return allSpec[T]{}
}

type allSpec[T any] struct{}

func (allSpec[T]) Match(T) bool { return true }

func (allSpec[T]) Apply(db *gorm.DB) *gorm.DB { return db }

// And matches records that satisfy every given specification.
func And[T any](specs ...Specification[T]) Specification[T] {
	return andSpec[T]{specs: specs}
}

type andSpec[T any] struct {
	specs []Specification[T]
}

func (s andSpec[T]) Match(record T) bool {
	for _, sub := range s.specs {
		if !sub.Match(record) {
			return false
		}
	}
	return true
}

func (s andSpec[T]) Apply(db *gorm.DB) *gorm.DB {
	for _, sub := range s.specs {
		db = Apply(db, sub)
	}
	return db
}

// Or matches records that satisfy at least one of the given specifications.
func Or[T any](specs ...Specification[T]) Specification[T] {
	return orSpec[T]{specs: specs}
}

type orSpec[T any] struct {
	specs []Specification[T]
}

func (s orSpec[T]) Match(record T) bool {
	for _, sub := range s.specs {
		if sub.Match(record) {
			return true
		}
	}
	return len(s.specs) == 0
}

func (s orSpec[T]) Apply(db *gorm.DB) *gorm.DB {
	if len(s.specs) == 0 {
		return db
	}
	group := Apply(fresh(db), s.specs[0])
	for _, sub := range s.specs[1:] {
		group = group.Or(Apply(fresh(db), sub))
	}
	return db.Where(group)
}

// Not matches records rejected by the given specification.
func Not[T any](spec Specification[T]) Specification[T] {
	return notSpec[T]{spec: spec}
}

type notSpec[T any] struct {
	spec Specification[T]
}

func (s notSpec[T]) Match(record T) bool {
	return !s.spec.Match(record)
}

func (s notSpec[T]) Apply(db *gorm.DB) *gorm.DB {
	return db.Not(Apply(fresh(db), s.spec))
}

// fresh opens a clean condition builder so grouped clauses do not inherit
// conditions already present on db.
func fresh(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true})
}
