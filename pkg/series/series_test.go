package series

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	dferr "dataforge/pkg/error"
	"dataforge/pkg/iterator"
	"dataforge/pkg/values"
)

// countingSeries returns a lazy series over vals and a pointer to the
// number of times its production function ran.
func countingSeries[V any](name string, vals []V) (*Series[V], *int) {
	calls := 0
	s := NewLazy(name, func() ([]V, error) {
		calls++
		return vals, nil
	})
	return s, &calls
}

// ============================================================================
// CONSTRUCTION TESTS
// ============================================================================

func TestNew_GetValues(t *testing.T) {
	s := New("some-column", []int{100, 200})

	require.Equal(t, "some-column", s.Name())
	require.True(t, s.Evaluated())

	vals, err := s.Values()
	require.NoError(t, err)
	require.Equal(t, []int{100, 200}, vals)

	idx, err := s.Index()
	require.NoError(t, err)
	require.Equal(t, []any{0, 1}, idx)
}

func TestNewIndexed_RejectsShapeMismatch(t *testing.T) {
	_, err := NewIndexed("x", []any{"a"}, []int{1, 2})

	require.Error(t, err)
	require.True(t, dferr.Is(err, dferr.CodeIndexShapeMismatch))
}

func TestNewLazyIndexed_ShapeMismatchAtEvaluation(t *testing.T) {
	s := NewLazyIndexed("x", func() ([]any, []int, error) {
		return []any{"a", "b"}, []int{1}, nil
	})

	_, err := s.Values()
	require.True(t, dferr.Is(err, dferr.CodeIndexShapeMismatch))
}

func TestNewLazy_EvaluatesOnce(t *testing.T) {
	s, calls := countingSeries("x", []int{3, 1, 2})
	require.False(t, s.Evaluated())
	require.Equal(t, 0, *calls)

	for range 3 {
		vals, err := s.Values()
		require.NoError(t, err)
		require.Equal(t, []int{3, 1, 2}, vals)
	}
	_, _ = s.Index()
	_, _ = s.Pairs()
	_, _ = s.Iterator()
	_, _ = s.Iterator()

	require.Equal(t, 1, *calls)
}

func TestNewLazy_ErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	s := NewLazy("x", func() ([]int, error) { return nil, boom })

	_, err := s.Values()
	require.ErrorIs(t, err, boom)
	_, err = s.Skip(1).Values()
	require.ErrorIs(t, err, boom)
	_, err = s.Order().Values()
	require.ErrorIs(t, err, boom)
}

func TestRange(t *testing.T) {
	pairs, err := Range(10, 5).Pairs()
	require.NoError(t, err)
	require.Equal(t, []Pair[int]{
		{0, 10}, {1, 11}, {2, 12}, {3, 13}, {4, 14},
	}, pairs)

	n, err := Range(0, -3).Len()
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestConstantAndRename(t *testing.T) {
	s := Constant("c", "x", 3).Rename("d")

	vals, err := s.Values()
	require.NoError(t, err)
	require.Equal(t, "d", s.Name())
	require.Equal(t, []string{"x", "x", "x"}, vals)
}

func TestIterator_FreshCursorEachCall(t *testing.T) {
	s := New("x", []int{1, 2})

	first, err := s.Iterator()
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, iterator.Collect(first))

	second, err := s.Iterator()
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, iterator.Collect(second))
}

func TestBake(t *testing.T) {
	s, calls := countingSeries("x", []int{1})
	baked, err := s.Bake()
	require.NoError(t, err)
	require.True(t, baked.Evaluated())

	_, _ = baked.Values()
	require.Equal(t, 1, *calls)
}

// ============================================================================
// SKIP / TAKE / WHERE TESTS
// ============================================================================

func TestSkip_DropsLeadingValues(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}
	for n := 0; n <= 7; n++ {
		got, err := New("x", src).Skip(n).Values()
		require.NoError(t, err)

		drop := min(n, len(src))
		require.Equal(t, src[drop:], got, "skip %d", n)
	}
}

func TestSkip_ZeroIsIdentity(t *testing.T) {
	s := New("x", []string{"a", "b"})
	skipped := s.Skip(0)

	want, _ := s.Pairs()
	got, err := skipped.Pairs()
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, "x", skipped.Name())
}

func TestSkip_CarriesIndex(t *testing.T) {
	s, err := NewIndexed("x", []any{"a", "b", "c"}, []int{1, 2, 3})
	require.NoError(t, err)

	idx, err := s.Skip(1).Index()
	require.NoError(t, err)
	require.Equal(t, []any{"b", "c"}, idx)
}

func TestSkip_IsLazyAndDoesNotMutateSource(t *testing.T) {
	s, calls := countingSeries("x", []int{1, 2, 3})
	skipped := s.Skip(2)
	require.Equal(t, 0, *calls)
	require.False(t, skipped.Evaluated())

	got, err := skipped.Values()
	require.NoError(t, err)
	require.Equal(t, []int{3}, got)

	orig, err := s.Values()
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, orig)
	require.Equal(t, 1, *calls)
}

func TestSkip_NegativeFailsOnRead(t *testing.T) {
	_, err := New("x", []int{1}).Skip(-1).Values()
	require.True(t, dferr.Is(err, dferr.CodeNegativeCount))
}

func TestTake(t *testing.T) {
	got, err := Range(0, 10).Skip(2).Take(3).Values()
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 4}, got)
}

func TestWhere(t *testing.T) {
	pairs, err := Range(0, 6).Where(func(v int) bool { return v%2 == 1 }).Pairs()
	require.NoError(t, err)
	require.Equal(t, []Pair[int]{{1, 1}, {3, 3}, {5, 5}}, pairs)
}

func TestMap(t *testing.T) {
	doubled := Map(Range(1, 3), func(v int) int { return v * 2 })

	pairs, err := doubled.Pairs()
	require.NoError(t, err)
	require.Equal(t, []Pair[int]{{0, 2}, {1, 4}, {2, 6}}, pairs)
}

// ============================================================================
// ORDER TESTS
// ============================================================================

func TestOrder_Ascending(t *testing.T) {
	s, err := NewIndexed("x", []any{"a", "b", "c", "d"}, []int{3, 1, 4, 2})
	require.NoError(t, err)

	pairs, err := s.Order().Pairs()
	require.NoError(t, err)
	require.Equal(t, []Pair[int]{{"b", 1}, {"d", 2}, {"a", 3}, {"c", 4}}, pairs)
}

func TestOrder_Descending(t *testing.T) {
	got, err := New("x", []float64{0.5, 2, -1}).OrderDescending().Values()
	require.NoError(t, err)
	require.Equal(t, []float64{2, 0.5, -1}, got)
}

type item struct {
	key   int
	label string
}

func byKey(a, b item) (int, error) {
	return a.key - b.key, nil
}

func TestOrder_IsStable(t *testing.T) {
	items := []item{{2, "a"}, {1, "b"}, {2, "c"}, {1, "d"}, {2, "e"}}
	s := New("x", items, WithComparator(byKey))

	asc, err := s.Order().Values()
	require.NoError(t, err)
	require.Equal(t, []item{{1, "b"}, {1, "d"}, {2, "a"}, {2, "c"}, {2, "e"}}, asc)

	desc, err := s.OrderDescending().Values()
	require.NoError(t, err)
	require.Equal(t, []item{{2, "a"}, {2, "c"}, {2, "e"}, {1, "b"}, {1, "d"}}, desc)
}

func TestOrder_Idempotent(t *testing.T) {
	s := New("x", []string{"pear", "apple", "fig", "apple"})

	once, err := s.Order().Pairs()
	require.NoError(t, err)
	twice, err := s.Order().Order().Pairs()
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestOrder_SortIsMemoized(t *testing.T) {
	compares := 0
	s := New("x", []int{5, 4, 3, 2, 1}, WithComparator(func(a, b int) (int, error) {
		compares++
		return a - b, nil
	}))
	ordered := s.Order()
	require.Equal(t, 0, compares)

	_, err := ordered.Values()
	require.NoError(t, err)
	first := compares
	require.Positive(t, first)

	_, _ = ordered.Values()
	_, _ = ordered.Pairs()
	require.Equal(t, first, compares)
}

func TestOrder_NotComparableFailsOnRead(t *testing.T) {
	ordered := New("x", []any{1, "two", 3}).Order()

	_, err := ordered.Values()
	require.Error(t, err)
	require.True(t, dferr.Is(err, dferr.CodeNotComparable))

	cat, ok := dferr.CategoryOf(err)
	require.True(t, ok)
	require.Equal(t, dferr.ErrCategoryOrdering, cat)
}

func TestOrder_MissingSortsFirst(t *testing.T) {
	got, err := New("x", []any{3, values.Missing, 1}).Order().Values()
	require.NoError(t, err)
	require.Equal(t, []any{values.Missing, 1, 3}, got)
}

func TestOrderBy_NilComparator(t *testing.T) {
	_, err := New("x", []int{1}).OrderBy(nil).Values()
	require.True(t, dferr.Is(err, dferr.CodeNoComparator))
}

func TestOrderBy_InheritsComparator(t *testing.T) {
	s := New("x", []int{1, 3, 2}).OrderBy(values.Reverse(values.Natural[int]()))

	got, err := s.Values()
	require.NoError(t, err)
	require.Equal(t, []int{3, 2, 1}, got)

	got, err = s.Skip(1).Order().Values()
	require.NoError(t, err)
	require.Equal(t, []int{2, 1}, got)
}
