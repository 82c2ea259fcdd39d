// Package frame implements the tabular container: an ordered set of unique
// column names, an index, and a lazily produced sequence of rows with one
// value per column.
//
// Frames never change after construction. Row production is deferred until
// the first read and cached afterwards; shape problems (a row of the wrong
// width, an index of the wrong length) are reported at that first read.
package frame

import (
	"fmt"
	"slices"

	"dataforge/pkg/iterator"
	"dataforge/pkg/lazy"
	"dataforge/pkg/logging"
	"dataforge/pkg/series"
	"dataforge/pkg/values"

	dferr "dataforge/pkg/error"
)

// Row is one row of a frame, values in column-name order.
type Row = []any

// RowPair is a row keyed by column name together with its index label.
type RowPair struct {
	Index  any
	Record map[string]any
}

type table struct {
	index []any
	rows  []Row
}

// Frame is the tabular container.
type Frame struct {
	columnNames []string
	positions   map[string]int
	data        *lazy.Value[table]
}

type config struct {
	index          func() ([]any, error)
	allowDuplicate bool
}

// Option configures a Frame at construction.
type Option func(*config)

// WithIndex gives the frame an explicit index instead of the positional
// one. Its length must match the number of rows.
func WithIndex(index []any) Option {
	return func(c *config) {
		c.index = func() ([]any, error) { return index, nil }
	}
}

// WithLazyIndex is WithIndex with the index produced on first read.
func WithLazyIndex(fn func() ([]any, error)) Option {
	return func(c *config) {
		c.index = fn
	}
}

// AllowDuplicateColumns lets a derived frame repeat a column name, as a merge
// does when both operands carry the same non-key column. Lookups by name
// resolve to the first column with that name.
func AllowDuplicateColumns() Option {
	return func(c *config) {
		c.allowDuplicate = true
	}
}

// New builds a frame from column names and a deferred row producer. It fails
// immediately if a column name is repeated; row shape is checked when rows
// are first read.
func New(columnNames []string, rows func() ([]Row, error), opts ...Option) (*Frame, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return newFrame(columnNames, cfg.allowDuplicate, func() ([]any, []Row, error) {
		rs, err := rows()
		if err != nil {
			return nil, nil, err
		}
		var idx []any
		if cfg.index != nil {
			if idx, err = cfg.index(); err != nil {
				return nil, nil, err
			}
		} else {
			idx = positions(len(rs))
		}
		return idx, rs, nil
	})
}

// NewFromIterable builds a frame whose rows are pulled from a fresh cursor
// over source on first read.
func NewFromIterable(columnNames []string, source iterator.Iterable[Row], opts ...Option) (*Frame, error) {
	return New(columnNames, func() ([]Row, error) {
		return iterator.Collect(source.Iterator()), nil
	}, opts...)
}

// FromRows builds a frame over already materialized rows. Unlike New it
// validates row shape immediately.
func FromRows(columnNames []string, rows []Row, opts ...Option) (*Frame, error) {
	if err := checkRows(len(columnNames), rows); err != nil {
		return nil, err.In("FromRows", "frame")
	}
	return New(columnNames, func() ([]Row, error) { return rows, nil }, opts...)
}

// NewIndexed builds a frame from a producer of both index and rows. It is
// the constructor derived frames use. Of the options only
// AllowDuplicateColumns applies; the index comes from fn.
func NewIndexed(columnNames []string, fn func() ([]any, []Row, error), opts ...Option) (*Frame, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newFrame(columnNames, cfg.allowDuplicate, fn)
}

func newFrame(columnNames []string, allowDuplicate bool, fn func() ([]any, []Row, error)) (*Frame, error) {
	names := slices.Clone(columnNames)
	pos := make(map[string]int, len(names))
	for i, name := range names {
		if _, dup := pos[name]; dup {
			if allowDuplicate {
				continue
			}
			return nil, dferr.Newf(dferr.ErrCategoryShape, dferr.CodeDuplicateColumn,
				"column %q appears more than once", name).In("New", "frame")
		}
		pos[name] = i
	}

	f := &Frame{columnNames: names, positions: pos}
	f.data = lazy.Defer(func() (table, error) {
		idx, rows, err := fn()
		if err != nil {
			return table{}, err
		}
		if shapeErr := checkRows(len(names), rows); shapeErr != nil {
			return table{}, shapeErr.In("Evaluate", "frame")
		}
		if len(idx) != len(rows) {
			return table{}, dferr.Newf(dferr.ErrCategoryShape, dferr.CodeIndexShapeMismatch,
				"index has %d labels but frame has %d rows", len(idx), len(rows)).In("Evaluate", "frame")
		}
		logging.WithComponent("frame").Debug("frame evaluated", "columns", len(names), "rows", len(rows))
		return table{index: idx, rows: rows}, nil
	})
	return f, nil
}

func checkRows(width int, rows []Row) *dferr.DFError {
	for i, r := range rows {
		if len(r) != width {
			return dferr.Newf(dferr.ErrCategoryShape, dferr.CodeRowShapeMismatch,
				"row %d has %d values but frame has %d columns", i, len(r), width)
		}
	}
	return nil
}

func positions(n int) []any {
	idx := make([]any, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// ColumnNames returns a copy of the column names in order.
func (f *Frame) ColumnNames() []string {
	return slices.Clone(f.columnNames)
}

// HasColumn reports whether name is one of the frame's columns.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.positions[name]
	return ok
}

// ColumnPosition returns the position of name among the columns.
func (f *Frame) ColumnPosition(name string) (int, bool) {
	i, ok := f.positions[name]
	return i, ok
}

// Index forces evaluation and returns the index labels.
func (f *Frame) Index() ([]any, error) {
	t, err := f.data.Get()
	if err != nil {
		return nil, err
	}
	return t.index, nil
}

// Rows forces evaluation and returns the rows. The returned rows are shared
// with the frame and must not be modified.
func (f *Frame) Rows() ([]Row, error) {
	t, err := f.data.Get()
	if err != nil {
		return nil, err
	}
	return t.rows, nil
}

// Values is an alias for Rows.
func (f *Frame) Values() ([]Row, error) {
	return f.Rows()
}

// Len forces evaluation and returns the number of rows.
func (f *Frame) Len() (int, error) {
	t, err := f.data.Get()
	if err != nil {
		return 0, err
	}
	return len(t.rows), nil
}

// Evaluated reports whether rows have already been produced.
func (f *Frame) Evaluated() bool {
	return f.data.Evaluated()
}

// Records forces evaluation and returns each row keyed by column name.
func (f *Frame) Records() ([]map[string]any, error) {
	t, err := f.data.Get()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, len(t.rows))
	for i, r := range t.rows {
		out[i] = f.record(r)
	}
	return out, nil
}

func (f *Frame) record(r Row) map[string]any {
	rec := make(map[string]any, len(f.columnNames))
	for j, name := range f.columnNames {
		rec[name] = r[j]
	}
	return rec
}

// Pairs forces evaluation and returns (index, record) pairs.
func (f *Frame) Pairs() ([]RowPair, error) {
	t, err := f.data.Get()
	if err != nil {
		return nil, err
	}
	out := make([]RowPair, len(t.rows))
	for i, r := range t.rows {
		out[i] = RowPair{Index: t.index[i], Record: f.record(r)}
	}
	return out, nil
}

// Iterator forces evaluation and returns a fresh cursor over the rows.
func (f *Frame) Iterator() (iterator.Cursor[Row], error) {
	rows, err := f.Rows()
	if err != nil {
		return nil, err
	}
	return iterator.NewSliceIterator(rows), nil
}

// Column returns a lazy projection of one column as a series sharing the
// frame's index. It fails immediately if the column does not exist.
func (f *Frame) Column(name string) (*series.Series[any], error) {
	j, ok := f.positions[name]
	if !ok {
		return nil, columnNotFound(name, "Column")
	}
	return series.NewLazyIndexed(name, func() ([]any, []any, error) {
		t, err := f.data.Get()
		if err != nil {
			return nil, nil, err
		}
		vals := make([]any, len(t.rows))
		for i, r := range t.rows {
			vals[i] = r[j]
		}
		return t.index, vals, nil
	}), nil
}

// Columns returns a lazy projection of every column, in order.
func (f *Frame) Columns() []*series.Series[any] {
	out := make([]*series.Series[any], len(f.columnNames))
	for i, name := range f.columnNames {
		out[i], _ = f.Column(name)
	}
	return out
}

func columnNotFound(name, op string) *dferr.DFError {
	return dferr.Newf(dferr.ErrCategoryPrecondition, dferr.CodeColumnNotFound,
		"column %q does not exist", name).In(op, "frame")
}

// Skip returns a frame without the first n rows; the index is carried.
// A negative n fails when the result is read.
func (f *Frame) Skip(n int) *Frame {
	return f.derive(func(t table) (table, error) {
		if n < 0 {
			return table{}, dferr.Newf(dferr.ErrCategoryPrecondition, dferr.CodeNegativeCount,
				"count must be non-negative, got %d", n).In("Skip", "frame")
		}
		pairs := make([]indexedRow, len(t.rows))
		for i := range t.rows {
			pairs[i] = indexedRow{index: t.index[i], row: t.rows[i]}
		}
		kept := iterator.Collect[indexedRow](iterator.NewSkipIterator(iterator.FromSlice(pairs), n))
		return splitRows(kept), nil
	})
}

type indexedRow struct {
	index any
	row   Row
}

func splitRows(rows []indexedRow) table {
	t := table{index: make([]any, len(rows)), rows: make([]Row, len(rows))}
	for i, r := range rows {
		t.index[i] = r.index
		t.rows[i] = r.row
	}
	return t
}

// OrderBy returns a frame stably sorted by the natural order of one column.
// It fails immediately if the column does not exist; values without a
// common order fail when the result is read.
func (f *Frame) OrderBy(name string, descending bool) (*Frame, error) {
	j, ok := f.positions[name]
	if !ok {
		return nil, columnNotFound(name, "OrderBy")
	}
	return f.derive(func(t table) (table, error) {
		rows := make([]indexedRow, len(t.rows))
		for i := range t.rows {
			rows[i] = indexedRow{index: t.index[i], row: t.rows[i]}
		}
		var sortErr error
		slices.SortStableFunc(rows, func(a, b indexedRow) int {
			if sortErr != nil {
				return 0
			}
			r, err := values.Compare(a.row[j], b.row[j])
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
			return table{}, dferr.Wrap(sortErr, dferr.CodeNotComparable, "OrderBy", "frame").
				WithDetail(fmt.Sprintf("column %q", name))
		}
		return splitRows(rows), nil
	}), nil
}

// derive returns a frame with the same columns whose table is computed from
// f's on first read.
func (f *Frame) derive(fn func(table) (table, error)) *Frame {
	return &Frame{
		columnNames: f.columnNames,
		positions:   f.positions,
		data: lazy.Defer(func() (table, error) {
			t, err := f.data.Get()
			if err != nil {
				return table{}, err
			}
			return fn(t)
		}),
	}
}
