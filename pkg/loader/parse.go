package loader

import (
	"strconv"
	"strings"

	dferr "dataforge/pkg/error"
	"dataforge/pkg/frame"
	"dataforge/pkg/values"
)

// ParseInts returns a frame in which the named columns have their string
// values parsed as base-10 int64. Empty strings become values.Missing and
// values that are not strings are kept as they are. Parsing happens when the
// result is first read; a malformed value fails it with PARSE_FAILED.
//
// An unknown column fails immediately with COLUMN_NOT_FOUND.
func ParseInts(f *frame.Frame, columns ...string) (*frame.Frame, error) {
	return parseColumns(f, "ParseInts", columns, func(s string) (any, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// ParseFloats is ParseInts for float64.
func ParseFloats(f *frame.Frame, columns ...string) (*frame.Frame, error) {
	return parseColumns(f, "ParseFloats", columns, func(s string) (any, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func parseColumns(f *frame.Frame, op string, columns []string, parse func(string) (any, error)) (*frame.Frame, error) {
	targets := make([]int, 0, len(columns))
	for _, name := range columns {
		pos, ok := f.ColumnPosition(name)
		if !ok {
			return nil, dferr.Newf(dferr.ErrCategoryPrecondition, dferr.CodeColumnNotFound,
				"column %q not found", name).In(op, "loader")
		}
		targets = append(targets, pos)
	}
	names := f.ColumnNames()

	return frame.NewIndexed(names, func() ([]any, []frame.Row, error) {
		index, err := f.Index()
		if err != nil {
			return nil, nil, err
		}
		rows, err := f.Rows()
		if err != nil {
			return nil, nil, err
		}

		out := make([]frame.Row, len(rows))
		for i, r := range rows {
			row := append(frame.Row(nil), r...)
			for _, c := range targets {
				s, ok := row[c].(string)
				if !ok {
					continue
				}
				s = strings.TrimSpace(s)
				if s == "" {
					row[c] = values.Missing
					continue
				}
				v, err := parse(s)
				if err != nil {
					return nil, nil, dferr.Newf(dferr.ErrCategoryInput, dferr.CodeParseFailed,
						"cannot parse %q in column %q", s, names[c]).
						WithDetail("row " + strconv.Itoa(i)).
						In(op, "loader").
						Because(err)
				}
				row[c] = v
			}
			out[i] = row
		}
		return index, out, nil
	}, frame.AllowDuplicateColumns())
}
