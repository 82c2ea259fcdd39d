package iterator

import "iter"

// Iterate encapsulates the common MoveNext/Current loop.
// The processFunc receives each element and controls iteration flow:
// - Return (false, nil) to stop iteration early
// - Return (true, nil) to continue
// - Return (_, error) to stop with error
func Iterate[T any](c Cursor[T], processFunc func(T) (continueLooping bool, err error)) error {
	for c.MoveNext() {
		shouldContinue, err := processFunc(c.Current())
		if err != nil {
			return err
		}
		if !shouldContinue {
			break
		}
	}
	return nil
}

// ForEach applies processFunc to each element, stopping at the first error.
func ForEach[T any](c Cursor[T], processFunc func(T) error) error {
	return Iterate(c, func(v T) (bool, error) {
		return true, processFunc(v)
	})
}

// Collect drains the cursor into a slice.
// Note: This consumes the entire cursor and never returns for unbounded sources.
func Collect[T any](c Cursor[T]) []T {
	results := make([]T, 0)
	for c.MoveNext() {
		results = append(results, c.Current())
	}
	return results
}

// Count drains the cursor and returns the number of elements it produced.
func Count[T any](c Cursor[T]) int {
	n := 0
	for c.MoveNext() {
		n++
	}
	return n
}

// All adapts a cursor to a range-over-func sequence. Breaking out of the
// range loop stops pulling from the cursor.
func All[T any](c Cursor[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for c.MoveNext() {
			if !yield(c.Current()) {
				return
			}
		}
	}
}
