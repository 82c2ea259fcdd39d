package iterator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceIterator_EmptyCannotMoveNext(t *testing.T) {
	it := NewSliceIterator([]int{})

	require.False(t, it.MoveNext())
	require.False(t, it.MoveNext())
}

func TestSliceIterator_NilSlice(t *testing.T) {
	it := NewSliceIterator[string](nil)

	require.False(t, it.MoveNext())
	require.Equal(t, 0, it.Len())
	require.Equal(t, 0, it.Remaining())
}

func TestSliceIterator_CurrentBeforeMoveNextIsNotData(t *testing.T) {
	it := NewSliceIterator([]int{7})

	require.Zero(t, it.Current())
	require.True(t, it.MoveNext())
	require.Equal(t, 7, it.Current())
}

func TestSliceIterator_WalksInOrder(t *testing.T) {
	it := NewSliceIterator([]string{"a", "b", "c"})

	require.Equal(t, []string{"a", "b", "c"}, Collect[string](it))
	require.False(t, it.MoveNext())
	require.Equal(t, "c", it.Current())
}

func TestSliceIterator_Remaining(t *testing.T) {
	it := NewSliceIterator([]int{1, 2, 3})
	require.Equal(t, 3, it.Remaining())

	it.MoveNext()
	require.Equal(t, 2, it.Remaining())

	it.MoveNext()
	it.MoveNext()
	require.Equal(t, 0, it.Remaining())

	it.MoveNext()
	require.Equal(t, 0, it.Remaining())
}

func TestFromSlice_HandsOutFreshCursors(t *testing.T) {
	src := FromSlice([]int{1, 2})

	first := src.Iterator()
	require.Equal(t, []int{1, 2}, Collect(first))

	second := src.Iterator()
	require.Equal(t, []int{1, 2}, Collect(second))
}
