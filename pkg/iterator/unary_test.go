package iterator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// endless yields 0, 1, 2, ... forever.
type endless struct {
	n int
}

func (e *endless) MoveNext() bool {
	e.n++
	return true
}

func (e *endless) Current() int {
	return e.n - 1
}

func endlessIterable() Iterable[int] {
	return IterableFunc[int](func() Cursor[int] { return &endless{} })
}

// countingIterable counts how many cursors were handed out.
type countingIterable struct {
	data  []int
	calls int
}

func (c *countingIterable) Iterator() Cursor[int] {
	c.calls++
	return NewSliceIterator(c.data)
}

// ============================================================================
// SKIP ITERATOR TESTS
// ============================================================================

func TestSkipIterator_CurrentUndefinedBeforeMoveNext(t *testing.T) {
	it := NewSkipIterator(FromSlice([]int{1}), 1)

	require.Zero(t, it.Current())
}

func TestSkipIterator_EmptySourceNoSkip(t *testing.T) {
	it := NewSkipIterator(FromSlice([]int{}), 0)

	require.False(t, it.MoveNext())
}

func TestSkipIterator_EmptySourceWithSkip(t *testing.T) {
	it := NewSkipIterator(FromSlice([]int{}), 2)

	require.False(t, it.MoveNext())
	require.False(t, it.MoveNext())
}

func TestSkipIterator_SingleItemNoSkip(t *testing.T) {
	it := NewSkipIterator(FromSlice([]int{1}), 0)

	require.True(t, it.MoveNext())
	require.Equal(t, 1, it.Current())
}

func TestSkipIterator_SkipLargerThanSource(t *testing.T) {
	it := NewSkipIterator(FromSlice([]int{1}), 3)

	require.False(t, it.MoveNext())
}

func TestSkipIterator_SkipLessThanSource(t *testing.T) {
	it := NewSkipIterator(FromSlice([]int{1, 2, 3, 4}), 3)

	require.True(t, it.MoveNext())
	require.Equal(t, 4, it.Current())
	require.False(t, it.MoveNext())
}

func TestSkipIterator_YieldsRemainder(t *testing.T) {
	it := NewSkipIterator(FromSlice([]int{1, 2, 3, 4, 5}), 3)

	require.True(t, it.MoveNext())
	require.Equal(t, 4, it.Current())
	require.True(t, it.MoveNext())
	require.Equal(t, 5, it.Current())
	require.False(t, it.MoveNext())
}

func TestSkipIterator_KeepsLastItemAfterExhaustion(t *testing.T) {
	it := NewSkipIterator(FromSlice([]int{1, 2, 3, 4, 5}), 3)
	it.MoveNext()
	it.MoveNext()
	it.MoveNext()

	require.Equal(t, 5, it.Current())
}

func TestSkipIterator_InfiniteSource(t *testing.T) {
	it := NewSkipIterator(endlessIterable(), 1000)

	require.True(t, it.MoveNext())
	require.Equal(t, 1000, it.Current())
	require.True(t, it.MoveNext())
	require.Equal(t, 1001, it.Current())
}

func TestSkipIterator_DoesNotTouchSourceOnConstruction(t *testing.T) {
	src := &countingIterable{data: []int{1, 2, 3}}
	it := NewSkipIterator[int](src, 2)
	require.Equal(t, 0, src.calls)

	require.True(t, it.MoveNext())
	require.Equal(t, 3, it.Current())
	require.Equal(t, 1, src.calls)
}

func TestSkipIterator_NegativeCountPanics(t *testing.T) {
	require.Panics(t, func() {
		NewSkipIterator(FromSlice([]int{1}), -1)
	})
}

// ============================================================================
// TAKE / SELECT / WHERE TESTS
// ============================================================================

func TestTakeIterator_StopsAtCount(t *testing.T) {
	it := NewTakeIterator[int](&endless{}, 3)

	require.Equal(t, []int{0, 1, 2}, Collect[int](it))
	require.False(t, it.MoveNext())
}

func TestTakeIterator_ShortSource(t *testing.T) {
	it := NewTakeIterator[int](NewSliceIterator([]int{1}), 5)

	require.Equal(t, []int{1}, Collect[int](it))
}

func TestTakeIterator_Zero(t *testing.T) {
	it := NewTakeIterator[int](NewSliceIterator([]int{1, 2}), 0)

	require.False(t, it.MoveNext())
	require.Zero(t, it.Current())
}

func TestSelectIterator_Maps(t *testing.T) {
	it := NewSelectIterator[int, string](NewSliceIterator([]int{1, 2}), func(v int) string {
		return string(rune('a' + v - 1))
	})

	require.Equal(t, []string{"a", "b"}, Collect[string](it))
}

func TestWhereIterator_Filters(t *testing.T) {
	it := NewWhereIterator[int](NewTakeIterator[int](&endless{}, 10), func(v int) bool {
		return v%3 == 0
	})

	require.Equal(t, []int{0, 3, 6, 9}, Collect[int](it))
}

// ============================================================================
// HELPER TESTS
// ============================================================================

func TestIterate_StopsEarly(t *testing.T) {
	var seen []int
	err := Iterate[int](NewSliceIterator([]int{1, 2, 3}), func(v int) (bool, error) {
		seen = append(seen, v)
		return v < 2, nil
	})

	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, seen)
}

func TestCount(t *testing.T) {
	require.Equal(t, 4, Count[int](NewSkipIterator(FromSlice([]int{1, 2, 3, 4, 5, 6}), 2)))
}

func TestAll_BreakStopsPulling(t *testing.T) {
	var seen []int
	for v := range All[int](&endless{}) {
		if v == 3 {
			break
		}
		seen = append(seen, v)
	}

	require.Equal(t, []int{0, 1, 2}, seen)
}
