package relational

import (
	"dataforge/pkg/frame"
	"dataforge/pkg/logging"
	"dataforge/pkg/values"

	dferr "dataforge/pkg/error"
)

type mergeConfig struct {
	equal values.Equality[any]
}

// MergeOption configures Merge.
type MergeOption func(*mergeConfig)

// WithKeyEquality replaces the default key equality (values.Equal). A custom
// equality cannot be hashed, so matching falls back to a nested loop.
func WithKeyEquality(eq values.Equality[any]) MergeOption {
	return func(c *mergeConfig) {
		if eq != nil {
			c.equal = eq
		}
	}
}

// Merge inner-joins left and right on keyColumn.
//
// The result has the columns keyColumn, the other columns of left in order,
// then the other columns of right in order; a non-key name present on both
// sides appears twice. For each left row in order it emits one row per
// matching right row, in right order. Unmatched rows on either side produce
// nothing. The result gets a fresh positional index.
//
// Merge fails immediately, before any row is read, when keyColumn is absent
// from either operand.
func Merge(left, right *frame.Frame, keyColumn string, opts ...MergeOption) (*frame.Frame, error) {
	log := logging.WithOp("relational", "Merge")

	cfg := mergeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	leftKey, ok := left.ColumnPosition(keyColumn)
	if !ok {
		err := missingKey(keyColumn, "left")
		log.Warn("merge rejected", "key", keyColumn, "side", "left")
		return nil, err
	}
	rightKey, ok := right.ColumnPosition(keyColumn)
	if !ok {
		err := missingKey(keyColumn, "right")
		log.Warn("merge rejected", "key", keyColumn, "side", "right")
		return nil, err
	}

	leftNames, rightNames := left.ColumnNames(), right.ColumnNames()
	columns := make([]string, 0, len(leftNames)+len(rightNames)-1)
	columns = append(columns, keyColumn)
	columns = append(columns, without(leftNames, leftKey)...)
	columns = append(columns, without(rightNames, rightKey)...)

	j := &hashJoin{leftKey: leftKey, rightKey: rightKey, equal: cfg.equal}

	return frame.NewIndexed(columns, func() ([]any, []frame.Row, error) {
		leftRows, err := left.Rows()
		if err != nil {
			return nil, nil, err
		}
		rightRows, err := right.Rows()
		if err != nil {
			return nil, nil, err
		}

		rows := j.run(leftRows, rightRows)
		log.Debug("merge evaluated",
			"key", keyColumn, "left", len(leftRows), "right", len(rightRows), "rows", len(rows))
		return positions(len(rows)), rows, nil
	}, frame.AllowDuplicateColumns())
}

func missingKey(keyColumn, side string) *dferr.DFError {
	return dferr.Newf(dferr.ErrCategoryPrecondition, dferr.CodeMergeKeyMissing,
		"merge key %q not found", keyColumn).
		WithDetail(side).
		WithHint("the key column must exist in both frames").
		In("Merge", "relational")
}

// without returns names with the entry at skip removed.
func without[T any](items []T, skip int) []T {
	out := make([]T, 0, len(items))
	for i, v := range items {
		if i != skip {
			out = append(out, v)
		}
	}
	return out
}

func positions(n int) []any {
	idx := make([]any, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
