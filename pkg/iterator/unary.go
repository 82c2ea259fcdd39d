package iterator

// Composing cursors wrap a single inner cursor and change how it is
// traversed. None of them copies the source: elements are pulled from the
// inner cursor one at a time, only when MoveNext is called.

// SkipIterator passes through the elements of its source after discarding
// the first count of them.
//
// Skipping happens on demand during the first MoveNext, never at
// construction, and does not assume the source is finite: it pulls exactly
// count elements, propagating false immediately if the source runs out
// first, then behaves as a pass-through.
type SkipIterator[T any] struct {
	iterable  Iterable[T]
	source    Cursor[T]
	remaining int // Elements still to discard
	done      bool
	current   T
}

// NewSkipIterator creates a cursor over source that skips count elements.
// A count of 0 is a transparent pass-through.
//
// NewSkipIterator panics if count is negative.
func NewSkipIterator[T any](source Iterable[T], count int) *SkipIterator[T] {
	if count < 0 {
		panic("iterator.NewSkipIterator: count must be non-negative")
	}
	return &SkipIterator[T]{
		iterable:  source,
		remaining: count,
	}
}

func (it *SkipIterator[T]) MoveNext() bool {
	if it.done {
		return false
	}
	if it.source == nil {
		it.source = it.iterable.Iterator()
	}

	for it.remaining > 0 {
		if !it.source.MoveNext() {
			it.remaining = 0
			it.done = true
			return false
		}
		it.remaining--
	}

	if !it.source.MoveNext() {
		it.done = true
		return false
	}
	it.current = it.source.Current()
	return true
}

func (it *SkipIterator[T]) Current() T {
	return it.current
}

// TakeIterator yields at most count elements of its source. It never pulls
// the element after the last one it yields, so it is safe over unbounded
// sources.
type TakeIterator[T any] struct {
	source  Cursor[T]
	left    int
	current T
}

// NewTakeIterator panics if count is negative.
func NewTakeIterator[T any](source Cursor[T], count int) *TakeIterator[T] {
	if count < 0 {
		panic("iterator.NewTakeIterator: count must be non-negative")
	}
	return &TakeIterator[T]{source: source, left: count}
}

func (it *TakeIterator[T]) MoveNext() bool {
	if it.left <= 0 {
		return false
	}
	if !it.source.MoveNext() {
		it.left = 0
		return false
	}
	it.left--
	it.current = it.source.Current()
	return true
}

func (it *TakeIterator[T]) Current() T {
	return it.current
}

// SelectIterator lazily maps every source element through fn.
type SelectIterator[In, Out any] struct {
	source  Cursor[In]
	fn      func(In) Out
	current Out
}

func NewSelectIterator[In, Out any](source Cursor[In], fn func(In) Out) *SelectIterator[In, Out] {
	return &SelectIterator[In, Out]{source: source, fn: fn}
}

func (it *SelectIterator[In, Out]) MoveNext() bool {
	if !it.source.MoveNext() {
		return false
	}
	it.current = it.fn(it.source.Current())
	return true
}

func (it *SelectIterator[In, Out]) Current() Out {
	return it.current
}

// WhereIterator yields only the source elements for which pred returns true.
type WhereIterator[T any] struct {
	source  Cursor[T]
	pred    func(T) bool
	current T
}

func NewWhereIterator[T any](source Cursor[T], pred func(T) bool) *WhereIterator[T] {
	return &WhereIterator[T]{source: source, pred: pred}
}

func (it *WhereIterator[T]) MoveNext() bool {
	for it.source.MoveNext() {
		v := it.source.Current()
		if it.pred(v) {
			it.current = v
			return true
		}
	}
	return false
}

func (it *WhereIterator[T]) Current() T {
	return it.current
}
