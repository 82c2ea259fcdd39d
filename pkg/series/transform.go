package series

import (
	"slices"

	"dataforge/pkg/iterator"
	"dataforge/pkg/logging"
	"dataforge/pkg/values"

	dferr "dataforge/pkg/error"
)

// Skip returns a Series without the first n entries of s. The index is
// carried with the values. Skipping past the end yields an empty Series.
// A negative n fails when the result is read.
func (s *Series[V]) Skip(n int) *Series[V] {
	return s.derive(func() (entries[V], error) {
		if n < 0 {
			return entries[V]{}, negativeCount("Skip", n)
		}
		pairs, err := s.Pairs()
		if err != nil {
			return entries[V]{}, err
		}
		kept := iterator.Collect[Pair[V]](iterator.NewSkipIterator(iterator.FromSlice(pairs), n))
		return fromPairs(kept), nil
	})
}

// Take returns a Series with at most the first n entries of s.
func (s *Series[V]) Take(n int) *Series[V] {
	return s.derive(func() (entries[V], error) {
		if n < 0 {
			return entries[V]{}, negativeCount("Take", n)
		}
		pairs, err := s.Pairs()
		if err != nil {
			return entries[V]{}, err
		}
		kept := iterator.Collect[Pair[V]](iterator.NewTakeIterator[Pair[V]](iterator.NewSliceIterator(pairs), n))
		return fromPairs(kept), nil
	})
}

func negativeCount(op string, n int) *dferr.DFError {
	return dferr.Newf(dferr.ErrCategoryPrecondition, dferr.CodeNegativeCount,
		"count must be non-negative, got %d", n).In(op, "series")
}

// Where returns a Series with only the entries whose value satisfies pred.
func (s *Series[V]) Where(pred func(V) bool) *Series[V] {
	return s.derive(func() (entries[V], error) {
		pairs, err := s.Pairs()
		if err != nil {
			return entries[V]{}, err
		}
		kept := iterator.Collect[Pair[V]](iterator.NewWhereIterator[Pair[V]](iterator.NewSliceIterator(pairs),
			func(p Pair[V]) bool { return pred(p.Value) }))
		return fromPairs(kept), nil
	})
}

// Order returns a Series sorted ascending by the comparator of s. The sort
// is stable: entries that compare equal keep their relative order. The sort
// runs on first read of the result and is never repeated.
func (s *Series[V]) Order() *Series[V] {
	return s.orderBy(s.compare, false)
}

// OrderDescending is Order with the comparison reversed. It is still
// stable: ties keep their original relative order.
func (s *Series[V]) OrderDescending() *Series[V] {
	return s.orderBy(s.compare, true)
}

// OrderBy sorts ascending by an explicit comparator. The result inherits the
// new comparator. A nil comparator fails when the result is read.
func (s *Series[V]) OrderBy(c values.Comparator[V]) *Series[V] {
	out := s.orderBy(c, false)
	if c != nil {
		out.compare = c
	}
	return out
}

func (s *Series[V]) orderBy(c values.Comparator[V], descending bool) *Series[V] {
	return s.derive(func() (entries[V], error) {
		if c == nil {
			return entries[V]{}, dferr.New(dferr.ErrCategoryOrdering, dferr.CodeNoComparator,
				"no comparator for ordering").In("Order", "series")
		}
		pairs, err := s.Pairs()
		if err != nil {
			return entries[V]{}, err
		}

		logging.WithColumn(s.name).Debug("sorting series", "len", len(pairs), "descending", descending)

		sorted := slices.Clone(pairs)
		var sortErr error
		slices.SortStableFunc(sorted, func(a, b Pair[V]) int {
			if sortErr != nil {
				return 0
			}
			r, err := c(a.Value, b.Value)
			if err != nil {
				sortErr = err
				return 0
			}
			if descending {
				return -r
			}
			return r
		})
		if sortErr != nil {
			return entries[V]{}, dferr.Wrap(sortErr, dferr.CodeNotComparable, "Order", "series")
		}
		return fromPairs(sorted), nil
	})
}

// Map returns a lazily mapped Series with the same name and index as s.
func Map[V, R any](s *Series[V], fn func(V) R, opts ...Option[R]) *Series[R] {
	return NewLazyIndexed(s.Name(), func() ([]any, []R, error) {
		pairs, err := s.Pairs()
		if err != nil {
			return nil, nil, err
		}
		idx := make([]any, len(pairs))
		out := make([]R, len(pairs))
		for i, p := range pairs {
			idx[i] = p.Index
			out[i] = fn(p.Value)
		}
		return idx, out, nil
	}, opts...)
}
