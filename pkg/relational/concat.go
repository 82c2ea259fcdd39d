package relational

import (
	"fmt"

	"dataforge/pkg/frame"
	"dataforge/pkg/iterator"
	"dataforge/pkg/logging"
	"dataforge/pkg/values"

	dferr "dataforge/pkg/error"
)

// Concat stacks frames in order.
//
// The result's columns are the union of the inputs' columns, by first
// appearance scanning the frames left to right. Each input row is spread
// over the full column set, with values.Missing where its frame lacks a
// column. The index is not renumbered: each frame's own index is replayed
// in turn, so labels may repeat.
//
// Concat of no frames is an empty frame with no columns. An input that
// repeats a column name, as a merge result may, fails with DUPLICATE_COLUMN
// because its columns cannot be matched to the union by name.
func Concat(frames ...*frame.Frame) (*frame.Frame, error) {
	for i, f := range frames {
		if name, dup := duplicateColumn(f.ColumnNames()); dup {
			logging.WithOp("relational", "Concat").Warn("concat rejected", "frame", i, "column", name)
			return nil, dferr.Newf(dferr.ErrCategoryPrecondition, dferr.CodeDuplicateColumn,
				"frame %d repeats column %q", i, name).
				WithHint("select or rename the repeated column before concatenating").
				In("Concat", "relational")
		}
	}

	columns := unionColumns(frames)
	layouts := make([][]int, len(frames))
	for i, f := range frames {
		layouts[i] = layout(columns, f)
	}

	return frame.NewIndexed(columns, func() ([]any, []frame.Row, error) {
		var index []any
		rows := make([]frame.Row, 0)

		for i, f := range frames {
			idx, err := f.Index()
			if err != nil {
				return nil, nil, fmt.Errorf("concat frame %d: %w", i, err)
			}
			cursor, err := f.Iterator()
			if err != nil {
				return nil, nil, fmt.Errorf("concat frame %d: %w", i, err)
			}

			index = append(index, idx...)
			spread := iterator.NewSelectIterator(cursor, func(r frame.Row) frame.Row {
				return spreadRow(r, layouts[i])
			})
			rows = append(rows, iterator.Collect[frame.Row](spread)...)
		}

		logging.WithOp("relational", "Concat").Debug("concat evaluated",
			"frames", len(frames), "columns", len(columns), "rows", len(rows))
		return index, rows, nil
	})
}

func duplicateColumn(names []string) (string, bool) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return name, true
		}
		seen[name] = true
	}
	return "", false
}

func unionColumns(frames []*frame.Frame) []string {
	seen := make(map[string]bool)
	columns := make([]string, 0)
	for _, f := range frames {
		for _, name := range f.ColumnNames() {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
	}
	return columns
}

// layout maps each output column to its position in f, or -1.
func layout(columns []string, f *frame.Frame) []int {
	out := make([]int, len(columns))
	for i, name := range columns {
		if pos, ok := f.ColumnPosition(name); ok {
			out[i] = pos
		} else {
			out[i] = -1
		}
	}
	return out
}

func spreadRow(r frame.Row, layout []int) frame.Row {
	out := make(frame.Row, len(layout))
	for i, pos := range layout {
		if pos < 0 {
			out[i] = values.Missing
		} else {
			out[i] = r[pos]
		}
	}
	return out
}
