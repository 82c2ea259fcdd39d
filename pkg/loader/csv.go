package loader

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	dferr "dataforge/pkg/error"
	"dataforge/pkg/frame"
	"dataforge/pkg/logging"
)

type csvConfig struct {
	delimiter rune
	header    []string
	trim      bool
}

// CSVOption configures FromCSV.
type CSVOption func(*csvConfig)

// WithDelimiter sets the field separator. The default is ','.
func WithDelimiter(r rune) CSVOption {
	return func(c *csvConfig) {
		c.delimiter = r
	}
}

// WithHeader supplies the column names, so every record of the input is data.
func WithHeader(columns ...string) CSVOption {
	return func(c *csvConfig) {
		c.header = columns
	}
}

// WithTrimLeadingSpace ignores leading white space in each field.
func WithTrimLeadingSpace() CSVOption {
	return func(c *csvConfig) {
		c.trim = true
	}
}

// FromCSV builds a frame from CSV text. Unless WithHeader is given the first
// record names the columns. Every cell is kept as a string; use ParseInts or
// ParseFloats to re-type columns.
//
// A record whose field count differs from the header fails with
// ROW_SHAPE_MISMATCH. Empty input yields an empty frame with no columns.
func FromCSV(r io.Reader, opts ...CSVOption) (*frame.Frame, error) {
	cfg := csvConfig{delimiter: ','}
	for _, opt := range opts {
		opt(&cfg)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = cfg.trim
	reader.ReuseRecord = false

	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		e := dferr.New(dferr.ErrCategoryInput, dferr.CodeInvalidCSV, "malformed CSV").
			In("FromCSV", "loader").Because(err)
		if errors.As(err, &parseErr) {
			e = e.WithDetail("line " + strconv.Itoa(parseErr.Line))
		}
		return nil, e
	}

	columns := cfg.header
	if columns == nil {
		if len(records) == 0 {
			return frame.FromRows(nil, nil)
		}
		columns, records = records[0], records[1:]
	}

	rows := make([]frame.Row, len(records))
	for i, rec := range records {
		if len(rec) != len(columns) {
			return nil, dferr.Newf(dferr.ErrCategoryShape, dferr.CodeRowShapeMismatch,
				"record %d has %d fields, expected %d", i, len(rec), len(columns)).
				In("FromCSV", "loader")
		}
		row := make(frame.Row, len(rec))
		for c, cell := range rec {
			row[c] = cell
		}
		rows[i] = row
	}

	logging.WithOp("loader", "FromCSV").Debug("csv loaded", "columns", len(columns), "rows", len(rows))
	return frame.FromRows(columns, rows)
}
