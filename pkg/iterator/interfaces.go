package iterator

// Cursor is the pull-based traversal primitive every container in dataforge
// is built on. A Cursor is single-pass and stateful: it cannot be rewound, a
// fresh traversal needs a fresh Cursor obtained from the source Iterable.
type Cursor[T any] interface {
	// MoveNext advances to the next element and reports whether one exists.
	// It returns false exactly when the source is exhausted and keeps
	// returning false on every later call.
	MoveNext() bool

	// Current returns the element the cursor is positioned on.
	//
	// Before the first successful MoveNext the result is unspecified: every
	// cursor in this package returns the zero value of T there, which is
	// never read from the source. After exhaustion Current keeps returning
	// the last element produced.
	Current() T
}

// Iterable is anything that can hand out independent cursors over its
// elements.
type Iterable[T any] interface {
	Iterator() Cursor[T]
}

// IterableFunc adapts a cursor factory to the Iterable interface.
type IterableFunc[T any] func() Cursor[T]

// Iterator calls f.
func (f IterableFunc[T]) Iterator() Cursor[T] {
	return f()
}
