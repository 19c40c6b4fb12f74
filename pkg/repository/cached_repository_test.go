package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datakit/pkg/query"
	"datakit/pkg/repository"
	"datakit/pkg/specification"
)

// stubRepo counts base hits so the tests can tell cache hits from misses.
type stubRepo struct {
	records  map[string]worker
	getCalls int
}

func newStubRepo(workers ...worker) *stubRepo {
	records := make(map[string]worker, len(workers))
	for _, w := range workers {
		records[w.Id] = w
	}
	return &stubRepo{records: records}
}

func (s *stubRepo) Get(_ context.Context, id string) (*worker, error) {
	s.getCalls++
	if w, ok := s.records[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (s *stubRepo) Add(_ context.Context, record *worker) error {
	s.records[record.Id] = *record
	return nil
}

func (s *stubRepo) Update(_ context.Context, record *worker) error {
	s.records[record.Id] = *record
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	delete(s.records, id)
	return nil
}

func (s *stubRepo) List(ctx context.Context, page query.Page, sort []query.SortKey[worker], spec specification.Specification[worker]) ([]worker, error) {
	items := make([]worker, 0, len(s.records))
	for _, w := range s.records {
		items = append(items, w)
	}
	return query.Compose(query.NewSliceSource(items), page, sort, spec).Find(ctx)
}

func (s *stubRepo) Count(_ context.Context, spec specification.Specification[worker]) (int64, error) {
	var n int64
	for _, w := range s.records {
		if spec == nil || spec.Match(w) {
			n++
		}
	}
	return n, nil
}

func newCachedRepo(workers ...worker) (*repository.CachedRepository[worker, string], *stubRepo) {
	base := newStubRepo(workers...)
	cache := repository.NewMemoryCache(time.Minute, time.Minute)
	cached := repository.NewCachedRepository[worker, string](base, cache, "worker", func(w *worker) string {
		return w.Id
	})
	return cached, base
}

func TestCachedRepositoryGetReadThrough(t *testing.T) {
	ctx := context.Background()
	cached, base := newCachedRepo(worker{Id: "w1", FullName: "ana"})

	first, err := cached.Get(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, base.getCalls)

	second, err := cached.Get(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "ana", second.FullName)
	assert.Equal(t, 1, base.getCalls, "second read must come from cache")
}

func TestCachedRepositoryMissNotCached(t *testing.T) {
	ctx := context.Background()
	cached, base := newCachedRepo()

	w, err := cached.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, w)

	_, err = cached.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, 2, base.getCalls, "misses are not cached")
}

func TestCachedRepositoryUpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	cached, base := newCachedRepo(worker{Id: "w1", FullName: "ana"})

	_, err := cached.Get(ctx, "w1")
	require.NoError(t, err)

	updated := worker{Id: "w1", FullName: "ana maria"}
	require.NoError(t, cached.Update(ctx, &updated))

	w, err := cached.Get(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "ana maria", w.FullName)
	assert.Equal(t, 2, base.getCalls)
}

func TestCachedRepositoryDeleteInvalidates(t *testing.T) {
	ctx := context.Background()
	cached, _ := newCachedRepo(worker{Id: "w1", FullName: "ana"})

	_, err := cached.Get(ctx, "w1")
	require.NoError(t, err)

	require.NoError(t, cached.Delete(ctx, "w1"))

	w, err := cached.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestCachedRepositoryListPassesThrough(t *testing.T) {
	ctx := context.Background()
	cached, _ := newCachedRepo(
		worker{Id: "w1", FullName: "ana", Department: "sales", Salary: 900},
		worker{Id: "w2", FullName: "bob", Department: "eng", Salary: 1200},
		worker{Id: "w3", FullName: "cid", Department: "eng", Salary: 800},
	)

	keys := []query.SortKey[worker]{
		query.Desc("salary", func(w worker) float64 { return w.Salary }),
	}
	out, err := cached.List(ctx, query.Page{Size: 10, Index: 0}, keys, inDepartment("eng"))

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "bob", out[0].FullName)
	assert.Equal(t, "cid", out[1].FullName)

	n, err := cached.Count(ctx, inDepartment("eng"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
