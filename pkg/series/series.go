// Package series implements the single-sequence container: a named,
// index-paired, immutable value sequence whose contents may be computed
// lazily and are memoized once computed.
//
// Every transformation (Skip, Take, Order, OrderDescending, Map, Where)
// returns a new Series whose production function closes over its source.
// Nothing is computed until a consumer reads Values, Index, Pairs or an
// Iterator, and each Series computes its contents at most once.
package series

import (
	"fmt"

	"dataforge/pkg/iterator"
	"dataforge/pkg/lazy"
	"dataforge/pkg/values"

	dferr "dataforge/pkg/error"
)

// Pair is one entry of a Series: a value and the index label paired with it.
type Pair[V any] struct {
	Index any
	Value V
}

// Column is the read-only capability every single-sequence container
// provides. Relational operators and frames consume Columns rather than a
// concrete type.
type Column[V any] interface {
	// Name returns the column name.
	Name() string
	// Values forces evaluation and returns the materialized values.
	Values() ([]V, error)
	// Index forces evaluation and returns the index labels, one per value.
	Index() ([]any, error)
}

// Series is the concrete Column. Its contents live in a lazy cell that is
// either already materialized or produced on first read.
type Series[V any] struct {
	name    string
	compare values.Comparator[V]
	data    *lazy.Value[entries[V]]
}

var _ Column[int] = (*Series[int])(nil)

type entries[V any] struct {
	index  []any
	values []V
}

// Option configures a Series at construction.
type Option[V any] func(*Series[V])

// WithComparator sets the ordering used by Order and OrderDescending and
// inherited by every Series derived from this one. Without it the dynamic
// natural order of values.Compare is used.
func WithComparator[V any](c values.Comparator[V]) Option[V] {
	return func(s *Series[V]) {
		if c != nil {
			s.compare = c
		}
	}
}

func build[V any](name string, data *lazy.Value[entries[V]], opts []Option[V]) *Series[V] {
	s := &Series[V]{
		name:    name,
		compare: values.Dynamic[V](),
		data:    data,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// derive builds a lazy Series that keeps the name and ordering of s.
func (s *Series[V]) derive(fn func() (entries[V], error)) *Series[V] {
	return &Series[V]{
		name:    s.name,
		compare: s.compare,
		data:    lazy.Defer(fn),
	}
}

// positions returns the index 0, 1, ..., n-1.
func positions(n int) []any {
	idx := make([]any, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// New returns a materialized Series over vals with a positional index.
// The slice is not copied; callers must not modify it afterwards.
func New[V any](name string, vals []V, opts ...Option[V]) *Series[V] {
	return build(name, lazy.Ready(entries[V]{index: positions(len(vals)), values: vals}), opts)
}

// NewIndexed returns a materialized Series with an explicit index.
// It fails when index and vals differ in length.
func NewIndexed[V any](name string, index []any, vals []V, opts ...Option[V]) (*Series[V], error) {
	if len(index) != len(vals) {
		return nil, shapeError(name, len(index), len(vals)).In("NewIndexed", "series")
	}
	return build(name, lazy.Ready(entries[V]{index: index, values: vals}), opts), nil
}

// NewLazy returns a Series whose values are produced by fn on first read.
// fn runs at most once; its result, or its error, is cached.
// The index is positional.
func NewLazy[V any](name string, fn func() ([]V, error), opts ...Option[V]) *Series[V] {
	return build(name, lazy.Defer(func() (entries[V], error) {
		vals, err := fn()
		if err != nil {
			return entries[V]{}, err
		}
		return entries[V]{index: positions(len(vals)), values: vals}, nil
	}), opts)
}

// NewLazyIndexed is NewLazy with an index produced alongside the values.
// A length mismatch between the two is reported when the Series is read.
func NewLazyIndexed[V any](name string, fn func() ([]any, []V, error), opts ...Option[V]) *Series[V] {
	return build(name, lazy.Defer(func() (entries[V], error) {
		idx, vals, err := fn()
		if err != nil {
			return entries[V]{}, err
		}
		if len(idx) != len(vals) {
			return entries[V]{}, shapeError(name, len(idx), len(vals)).In("Evaluate", "series")
		}
		return entries[V]{index: idx, values: vals}, nil
	}), opts)
}

func shapeError(name string, indexLen, valuesLen int) *dferr.DFError {
	return dferr.Newf(dferr.ErrCategoryShape, dferr.CodeIndexShapeMismatch,
		"index has %d labels but series has %d values", indexLen, valuesLen).
		WithDetail(fmt.Sprintf("series %q", name))
}

// Name returns the series name.
func (s *Series[V]) Name() string {
	return s.name
}

// Values forces evaluation and returns the values. The returned slice is
// shared with the Series and must not be modified.
func (s *Series[V]) Values() ([]V, error) {
	e, err := s.data.Get()
	if err != nil {
		return nil, err
	}
	return e.values, nil
}

// Index forces evaluation and returns the index labels.
func (s *Series[V]) Index() ([]any, error) {
	e, err := s.data.Get()
	if err != nil {
		return nil, err
	}
	return e.index, nil
}

// Pairs forces evaluation and returns (index, value) pairs.
func (s *Series[V]) Pairs() ([]Pair[V], error) {
	e, err := s.data.Get()
	if err != nil {
		return nil, err
	}
	return e.pairs(), nil
}

func (e entries[V]) pairs() []Pair[V] {
	out := make([]Pair[V], len(e.values))
	for i := range e.values {
		out[i] = Pair[V]{Index: e.index[i], Value: e.values[i]}
	}
	return out
}

func fromPairs[V any](pairs []Pair[V]) entries[V] {
	e := entries[V]{
		index:  make([]any, len(pairs)),
		values: make([]V, len(pairs)),
	}
	for i, p := range pairs {
		e.index[i] = p.Index
		e.values[i] = p.Value
	}
	return e
}

// Len forces evaluation and returns the number of values.
func (s *Series[V]) Len() (int, error) {
	e, err := s.data.Get()
	if err != nil {
		return 0, err
	}
	return len(e.values), nil
}

// Iterator forces evaluation and returns a fresh cursor over the values.
func (s *Series[V]) Iterator() (iterator.Cursor[V], error) {
	vals, err := s.Values()
	if err != nil {
		return nil, err
	}
	return iterator.NewSliceIterator(vals), nil
}

// Evaluated reports whether the contents have already been computed.
func (s *Series[V]) Evaluated() bool {
	return s.data.Evaluated()
}

// Bake forces evaluation and returns a materialized Series with the same
// contents.
func (s *Series[V]) Bake() (*Series[V], error) {
	e, err := s.data.Get()
	if err != nil {
		return nil, err
	}
	return &Series[V]{name: s.name, compare: s.compare, data: lazy.Ready(e)}, nil
}

// Rename returns a Series with the same contents under another name. The
// contents are shared, so evaluating either evaluates both.
func (s *Series[V]) Rename(name string) *Series[V] {
	return &Series[V]{name: name, compare: s.compare, data: s.data}
}

// Range returns the Series start, start+1, ..., start+count-1 with a
// positional index. A negative count yields an empty Series.
func Range(start, count int) *Series[int] {
	if count < 0 {
		count = 0
	}
	vals := make([]int, count)
	for i := range vals {
		vals[i] = start + i
	}
	return New("", vals, WithComparator(values.Natural[int]()))
}

// Constant returns a Series holding value count times.
func Constant[V any](name string, value V, count int) *Series[V] {
	if count < 0 {
		count = 0
	}
	vals := make([]V, count)
	for i := range vals {
		vals[i] = value
	}
	return New(name, vals)
}
