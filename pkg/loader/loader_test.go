package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	dferr "dataforge/pkg/error"
	"dataforge/pkg/frame"
	"dataforge/pkg/values"
)

// ============================================================================
// JSON TESTS
// ============================================================================

func TestFromJSON_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   \n"},
		{"malformed", `[{"a": 1}`},
		{"object at top level", `{"a": 1}`},
		{"scalar element", `[1, 2]`},
		{"array element", `[[1]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FromJSON([]byte(tt.input))
			require.Nil(t, f)
			require.True(t, dferr.Is(err, dferr.CodeInvalidJSON), "got %v", err)
		})
	}
}

func TestFromJSON_EmptyArray(t *testing.T) {
	f, err := FromJSON([]byte(`[]`))
	require.NoError(t, err)
	require.Empty(t, f.ColumnNames())

	n, err := f.Len()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestFromJSON_EmptyObjects(t *testing.T) {
	f, err := FromJSON([]byte(`[{}, {}]`))
	require.NoError(t, err)
	require.Empty(t, f.ColumnNames())

	n, err := f.Len()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestFromJSON_UnionOfKeys(t *testing.T) {
	f, err := FromJSON([]byte(`[
		{"A": 1, "B": "x"},
		{"C": true, "A": 2.5},
		{"B": null}
	]`))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, f.ColumnNames())

	rows, err := f.Rows()
	require.NoError(t, err)
	require.Equal(t, []frame.Row{
		{int64(1), "x", values.Missing},
		{2.5, values.Missing, true},
		{values.Missing, nil, values.Missing},
	}, rows)

	index, err := f.Index()
	require.NoError(t, err)
	require.Equal(t, []any{0, 1, 2}, index)
}

func TestFromJSON_NestedValues(t *testing.T) {
	f, err := FromJSON([]byte(`[{"tags": ["a", 1], "meta": {"k": "v"}, "s": "q\"uote"}]`))
	require.NoError(t, err)
	require.Equal(t, []string{"tags", "meta", "s"}, f.ColumnNames())

	rows, err := f.Rows()
	require.NoError(t, err)
	require.Equal(t, frame.Row{
		[]any{"a", int64(1)},
		map[string]any{"k": "v"},
		`q"uote`,
	}, rows[0])
}

// ============================================================================
// CSV TESTS
// ============================================================================

func TestFromCSV_HeaderFromFirstRecord(t *testing.T) {
	f, err := FromCSV(strings.NewReader("a,b\n1,x\n2,y\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, f.ColumnNames())

	rows, err := f.Rows()
	require.NoError(t, err)
	require.Equal(t, []frame.Row{{"1", "x"}, {"2", "y"}}, rows)
}

func TestFromCSV_Options(t *testing.T) {
	f, err := FromCSV(strings.NewReader("1; x\n2; y\n"),
		WithDelimiter(';'), WithHeader("a", "b"), WithTrimLeadingSpace())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, f.ColumnNames())

	rows, err := f.Rows()
	require.NoError(t, err)
	require.Equal(t, []frame.Row{{"1", "x"}, {"2", "y"}}, rows)
}

func TestFromCSV_Empty(t *testing.T) {
	f, err := FromCSV(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, f.ColumnNames())
}

func TestFromCSV_RaggedRecord(t *testing.T) {
	_, err := FromCSV(strings.NewReader("a,b\n1\n"))
	require.True(t, dferr.Is(err, dferr.CodeRowShapeMismatch))
}

func TestFromCSV_Malformed(t *testing.T) {
	_, err := FromCSV(strings.NewReader("a,b\n\"1,2\n"))
	require.True(t, dferr.Is(err, dferr.CodeInvalidCSV))
}

// ============================================================================
// PARSE TESTS
// ============================================================================

func TestParseInts(t *testing.T) {
	src, err := FromCSV(strings.NewReader("a,b\n1,x\n,y\n 3 ,z\n"))
	require.NoError(t, err)

	f, err := ParseInts(src, "a")
	require.NoError(t, err)
	require.False(t, f.Evaluated())

	rows, err := f.Rows()
	require.NoError(t, err)
	require.Equal(t, []frame.Row{
		{int64(1), "x"},
		{values.Missing, "y"},
		{int64(3), "z"},
	}, rows)

	// the source is untouched
	srcRows, err := src.Rows()
	require.NoError(t, err)
	require.Equal(t, "1", srcRows[0][0])
}

func TestParseFloats(t *testing.T) {
	src, err := FromCSV(strings.NewReader("v\n1.5\n2\n"))
	require.NoError(t, err)

	f, err := ParseFloats(src, "v")
	require.NoError(t, err)

	col, err := f.Column("v")
	require.NoError(t, err)
	vals, err := col.Values()
	require.NoError(t, err)
	require.Equal(t, []any{1.5, 2.0}, vals)
}

func TestParseInts_FailsOnRead(t *testing.T) {
	src, err := FromCSV(strings.NewReader("v\n1\nnope\n"))
	require.NoError(t, err)

	f, err := ParseInts(src, "v")
	require.NoError(t, err)

	_, err = f.Rows()
	require.True(t, dferr.Is(err, dferr.CodeParseFailed))
}

func TestParseInts_UnknownColumn(t *testing.T) {
	src, err := FromCSV(strings.NewReader("v\n1\n"))
	require.NoError(t, err)

	_, err = ParseInts(src, "w")
	require.True(t, dferr.Is(err, dferr.CodeColumnNotFound))
}

// ============================================================================
// FILE TESTS
// ============================================================================

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFiles_KeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[{"k": 1}]`)
	b := writeFile(t, dir, "b.csv", "k\nx\ny\n")

	frames, err := LoadFiles(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	n, err := frames[0].Len()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = frames[1].Len()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestLoadFiles_Failures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `[]`)
	bad := writeFile(t, dir, "bad.json", `[`)
	txt := writeFile(t, dir, "notes.txt", "hello")

	_, err := LoadFiles(context.Background(), good, bad)
	require.True(t, dferr.Is(err, dferr.CodeInvalidJSON))
	require.Contains(t, err.Error(), "bad.json")

	_, err = LoadFiles(context.Background(), txt)
	require.True(t, dferr.Is(err, dferr.CodeUnsupportedType))

	_, err = LoadFiles(context.Background(), filepath.Join(dir, "absent.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFiles_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadFiles(ctx, a)
	require.ErrorIs(t, err, context.Canceled)
}
