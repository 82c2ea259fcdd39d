// Package render draws frames and series as terminal tables.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"dataforge/pkg/frame"
	"dataforge/pkg/series"
	"dataforge/pkg/values"
)

// MissingText is shown in place of values.Missing.
const MissingText = "·"

type config struct {
	limit     int
	showIndex bool
	palette   Palette
}

// Option configures rendering.
type Option func(*config)

// WithLimit renders at most n rows and notes how many were left out.
// n <= 0 renders every row.
func WithLimit(n int) Option {
	return func(c *config) {
		c.limit = n
	}
}

// WithoutIndex hides the index column.
func WithoutIndex() Option {
	return func(c *config) {
		c.showIndex = false
	}
}

// WithPalette replaces DarkPalette.
func WithPalette(p Palette) Option {
	return func(c *config) {
		c.palette = p
	}
}

func newConfig(opts []Option) config {
	cfg := config{showIndex: true, palette: DarkPalette}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Frame evaluates f and renders it as a table, index first.
func Frame(f *frame.Frame, opts ...Option) (string, error) {
	pairs, err := f.Pairs()
	if err != nil {
		return "", err
	}
	rows, err := f.Rows()
	if err != nil {
		return "", err
	}

	index := make([]any, len(pairs))
	for i, p := range pairs {
		index[i] = p.Index
	}
	return draw(f.ColumnNames(), index, rows, newConfig(opts)), nil
}

// Series evaluates s and renders it as a two-column table.
func Series[V any](s *series.Series[V], opts ...Option) (string, error) {
	pairs, err := s.Pairs()
	if err != nil {
		return "", err
	}

	index := make([]any, len(pairs))
	rows := make([]frame.Row, len(pairs))
	for i, p := range pairs {
		index[i] = p.Index
		rows[i] = frame.Row{p.Value}
	}
	return draw([]string{s.Name()}, index, rows, newConfig(opts)), nil
}

func draw(columns []string, index []any, rows []frame.Row, cfg config) string {
	st := newStyles(cfg.palette)

	total := len(rows)
	if cfg.limit > 0 && total > cfg.limit {
		rows = rows[:cfg.limit]
	}

	headers := columns
	if cfg.showIndex {
		headers = append([]string{""}, columns...)
	}

	// missing[r][c] marks cells that hold values.Missing
	missing := make([][]bool, len(rows))
	cells := make([][]string, len(rows))
	for r, row := range rows {
		line := make([]string, 0, len(headers))
		flags := make([]bool, 0, len(headers))
		if cfg.showIndex {
			line = append(line, values.Format(index[r]))
			flags = append(flags, false)
		}
		for _, v := range row {
			if values.IsMissing(v) {
				line = append(line, MissingText)
				flags = append(flags, true)
				continue
			}
			line = append(line, values.Format(v))
			flags = append(flags, false)
		}
		cells[r] = line
		missing[r] = flags
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.header
			case cfg.showIndex && col == 0:
				return st.index
			case row >= 0 && row < len(missing) && col < len(missing[row]) && missing[row][col]:
				return st.missing
			}
			return st.cell
		})

	var b strings.Builder
	b.WriteString(t.Render())
	if len(rows) < total {
		fmt.Fprintf(&b, "\n… %d more rows", total-len(rows))
	}
	return b.String()
}
