// Package arrowio converts frames to and from Apache Arrow records.
package arrowio

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	dferr "dataforge/pkg/error"
	"dataforge/pkg/frame"
	"dataforge/pkg/logging"
	"dataforge/pkg/values"
)

// ToRecord evaluates f and copies it into an Arrow record allocated from
// mem. Each column's Arrow type is inferred from its non-missing values:
//
//   - only integers: int64
//   - integers and floats: float64
//   - only booleans: boolean
//   - anything else: utf8, rendered with values.Format
//
// values.Missing and nil become nulls. The caller must Release the record.
func ToRecord(f *frame.Frame, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	rows, err := f.Rows()
	if err != nil {
		return nil, err
	}

	names := f.ColumnNames()
	fields := make([]arrow.Field, len(names))
	for c, name := range names {
		fields[c] = arrow.Field{Name: name, Type: inferType(rows, c), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Reserve(len(rows))

	for c := range names {
		appendColumn(b.Field(c), rows, c)
	}

	logging.WithOp("arrowio", "ToRecord").Debug("record built", "columns", len(names), "rows", len(rows))
	return b.NewRecord(), nil
}

func isNull(v any) bool {
	return v == nil || values.IsMissing(v)
}

func inferType(rows []frame.Row, c int) arrow.DataType {
	var ints, floats, bools, others int
	for _, r := range rows {
		v := r[c]
		if isNull(v) {
			continue
		}
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			ints++
		case float32, float64:
			floats++
		case bool:
			bools++
		default:
			others++
		}
	}

	switch {
	case others > 0:
		return arrow.BinaryTypes.String
	case bools > 0 && ints+floats == 0:
		return arrow.FixedWidthTypes.Boolean
	case bools > 0:
		return arrow.BinaryTypes.String
	case floats > 0:
		return arrow.PrimitiveTypes.Float64
	case ints > 0:
		return arrow.PrimitiveTypes.Int64
	}
	return arrow.BinaryTypes.String
}

func appendColumn(builder array.Builder, rows []frame.Row, c int) {
	for _, r := range rows {
		v := r[c]
		if isNull(v) {
			builder.AppendNull()
			continue
		}

		switch b := builder.(type) {
		case *array.Int64Builder:
			b.Append(toInt64(v))
		case *array.Float64Builder:
			b.Append(toFloat64(v))
		case *array.BooleanBuilder:
			b.Append(v.(bool))
		case *array.StringBuilder:
			b.Append(values.Format(v))
		}
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return float64(toInt64(v))
}

// typed is the accessor shape shared by Arrow's primitive arrays.
type typed[T any] interface {
	Len() int
	IsNull(i int) bool
	Value(i int) T
}

func collect[T any, A typed[T]](arr A) []any {
	out := make([]any, arr.Len())
	for i := range out {
		if arr.IsNull(i) {
			out[i] = values.Missing
		} else {
			out[i] = arr.Value(i)
		}
	}
	return out
}

// FromRecord copies rec into a materialized frame with a positional index.
// Nulls become values.Missing. Integer, floating point, boolean and string
// columns are supported; any other column type fails with UNSUPPORTED_TYPE.
func FromRecord(rec arrow.Record) (*frame.Frame, error) {
	schema := rec.Schema()
	ncols := int(rec.NumCols())
	nrows := int(rec.NumRows())

	names := make([]string, ncols)
	cols := make([][]any, ncols)
	for c := range ncols {
		names[c] = schema.Field(c).Name
		col, err := columnValues(rec.Column(c))
		if err != nil {
			return nil, err.WithDetail(names[c])
		}
		cols[c] = col
	}

	rows := make([]frame.Row, nrows)
	for r := range rows {
		row := make(frame.Row, ncols)
		for c := range cols {
			row[c] = cols[c][r]
		}
		rows[r] = row
	}
	return frame.FromRows(names, rows, frame.AllowDuplicateColumns())
}

func columnValues(arr arrow.Array) ([]any, *dferr.DFError) {
	switch a := arr.(type) {
	case *array.Int8:
		return collect[int8](a), nil
	case *array.Int16:
		return collect[int16](a), nil
	case *array.Int32:
		return collect[int32](a), nil
	case *array.Int64:
		return collect[int64](a), nil
	case *array.Uint8:
		return collect[uint8](a), nil
	case *array.Uint16:
		return collect[uint16](a), nil
	case *array.Uint32:
		return collect[uint32](a), nil
	case *array.Uint64:
		return collect[uint64](a), nil
	case *array.Float32:
		return collect[float32](a), nil
	case *array.Float64:
		return collect[float64](a), nil
	case *array.Boolean:
		return collect[bool](a), nil
	case *array.String:
		return collect[string](a), nil
	case *array.LargeString:
		return collect[string](a), nil
	}
	return nil, dferr.Newf(dferr.ErrCategoryInput, dferr.CodeUnsupportedType,
		"arrow type %s is not supported", arr.DataType()).In("FromRecord", "arrowio")
}
