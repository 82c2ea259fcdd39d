package relational

import (
	"fmt"

	"dataforge/pkg/logging"
	"dataforge/pkg/series"
)

// Zip combines columns position by position. The value at position i is
// combine applied to the i-th value of every column, in column order. The
// result is as long as the shortest column; extra values of longer columns
// are ignored. The result has a fresh positional index and is computed on
// first read.
//
// Zip of no columns is empty.
func Zip[V, R any](name string, columns []series.Column[V], combine func(vals []V) R) *series.Series[R] {
	return series.NewLazy(name, func() ([]R, error) {
		if len(columns) == 0 {
			return []R{}, nil
		}

		inputs := make([][]V, len(columns))
		shortest := -1
		for i, c := range columns {
			vals, err := c.Values()
			if err != nil {
				return nil, fmt.Errorf("zip column %d (%s): %w", i, c.Name(), err)
			}
			inputs[i] = vals
			if shortest < 0 || len(vals) < shortest {
				shortest = len(vals)
			}
		}

		out := make([]R, shortest)
		row := make([]V, len(columns))
		for pos := range shortest {
			for i := range inputs {
				row[i] = inputs[i][pos]
			}
			out[pos] = combine(row)
		}

		logging.WithOp("relational", "Zip").Debug("zip evaluated", "columns", len(columns), "len", shortest)
		return out, nil
	})
}

// Zip2 combines two columns of possibly different value types.
func Zip2[A, B, R any](name string, a series.Column[A], b series.Column[B], combine func(A, B) R) *series.Series[R] {
	return series.NewLazy(name, func() ([]R, error) {
		av, err := a.Values()
		if err != nil {
			return nil, fmt.Errorf("zip column %s: %w", a.Name(), err)
		}
		bv, err := b.Values()
		if err != nil {
			return nil, fmt.Errorf("zip column %s: %w", b.Name(), err)
		}

		out := make([]R, min(len(av), len(bv)))
		for i := range out {
			out[i] = combine(av[i], bv[i])
		}
		return out, nil
	})
}

// Columns adapts concrete series to the Column slice Zip takes.
func Columns[V any](ss ...*series.Series[V]) []series.Column[V] {
	out := make([]series.Column[V], len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
