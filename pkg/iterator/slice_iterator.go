package iterator

// SliceIterator is a Cursor over a fixed backing slice.
//
// Design Philosophy:
//   - Simple and lightweight: just wraps a slice with a read position
//   - No lifecycle management: always ready to use after construction
//   - Cheap to create: create a new iterator instead of resetting one
//   - Not thread-safe: use a separate iterator per goroutine
//
// Example usage:
//
//	it := NewSliceIterator([]int{1, 2, 3})
//	for it.MoveNext() {
//	    process(it.Current())
//	}
type SliceIterator[T any] struct {
	data    []T // The underlying slice to iterate over
	pos     int // Position of the current element, -1 before the first MoveNext
	current T
}

// NewSliceIterator creates a new iterator positioned before the first element
// of data. data may be nil or empty, in which case the first MoveNext returns false.
func NewSliceIterator[T any](data []T) *SliceIterator[T] {
	return &SliceIterator[T]{
		data: data,
		pos:  -1,
	}
}

// MoveNext advances to the next element of the slice.
func (it *SliceIterator[T]) MoveNext() bool {
	if it.pos+1 >= len(it.data) {
		it.pos = len(it.data)
		return false
	}

	it.pos++
	it.current = it.data[it.pos]
	return true
}

// Current returns the element at the current position.
func (it *SliceIterator[T]) Current() T {
	return it.current
}

// Len returns the total number of elements in the slice.
func (it *SliceIterator[T]) Len() int {
	return len(it.data)
}

// Remaining returns the number of elements MoveNext can still produce.
func (it *SliceIterator[T]) Remaining() int {
	left := len(it.data) - it.pos - 1
	if left < 0 {
		return 0
	}
	return left
}

// FromSlice returns an Iterable that hands out a fresh SliceIterator over data
// on every call.
func FromSlice[T any](data []T) Iterable[T] {
	return IterableFunc[T](func() Cursor[T] {
		return NewSliceIterator(data)
	})
}
