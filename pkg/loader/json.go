// Package loader turns external text (JSON record arrays, CSV) into frames
// and re-types string columns after loading.
package loader

import (
	"bytes"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	dferr "dataforge/pkg/error"
	"dataforge/pkg/frame"
	"dataforge/pkg/logging"
	"dataforge/pkg/values"
)

// FromJSON builds a frame from a JSON array of objects.
//
// The columns are the union of the object keys in order of first
// appearance. A key an object lacks reads as values.Missing. Integral
// numbers decode to int64 and other numbers to float64; nested arrays and
// objects decode to []any and map[string]any.
//
// Empty or malformed input, or a top-level value that is not an array of
// objects, fails with INVALID_JSON.
func FromJSON(data []byte) (*frame.Frame, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, invalidJSON("input is empty", nil)
	}
	if !json.Valid(data) {
		return nil, invalidJSON("input is not valid JSON", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, invalidJSON("read array start", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, invalidJSON("top-level value must be an array of objects", nil)
	}

	var (
		columns   []string
		positions = make(map[string]int)
		records   []map[string]any
	)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, invalidJSON("read record", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, invalidJSON("array element is not an object", nil).
				WithDetail(strconv.Itoa(len(records)))
		}

		record, keys, err := readObject(dec)
		if err != nil {
			return nil, invalidJSON("read record", err).WithDetail(strconv.Itoa(len(records)))
		}
		for _, k := range keys {
			if _, seen := positions[k]; !seen {
				positions[k] = len(columns)
				columns = append(columns, k)
			}
		}
		records = append(records, record)
	}

	rows := make([]frame.Row, len(records))
	for i, rec := range records {
		row := make(frame.Row, len(columns))
		for c, name := range columns {
			if v, ok := rec[name]; ok {
				row[c] = v
			} else {
				row[c] = values.Missing
			}
		}
		rows[i] = row
	}

	logging.WithOp("loader", "FromJSON").Debug("json loaded", "columns", len(columns), "rows", len(rows))
	return frame.FromRows(columns, rows)
}

func invalidJSON(msg string, cause error) *dferr.DFError {
	err := dferr.New(dferr.ErrCategoryInput, dferr.CodeInvalidJSON, msg).In("FromJSON", "loader")
	if cause != nil {
		err = err.Because(cause)
	}
	return err
}

// readObject reads the members of an object whose '{' has been consumed.
// It returns the keys in document order; a repeated key keeps its first
// position and its last value.
func readObject(dec *json.Decoder) (map[string]any, []string, error) {
	obj := make(map[string]any)
	var keys []string

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, io.ErrUnexpectedEOF
		}

		v, err := readValue(dec)
		if err != nil {
			return nil, nil, err
		}
		if _, seen := obj[key]; !seen {
			keys = append(keys, key)
		}
		obj[key] = v
	}

	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return obj, keys, nil
}

func readArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for dec.More() {
		v, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}

	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func readValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj, _, err := readObject(dec)
			return obj, err
		case '[':
			return readArray(dec)
		}
		return nil, io.ErrUnexpectedEOF
	case json.Number:
		return number(t), nil
	default:
		// string, bool or nil
		return t, nil
	}
}

func number(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
