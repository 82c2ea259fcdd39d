package render

import "github.com/charmbracelet/lipgloss"

// Palette defines the colors used when rendering containers.
type Palette struct {
	Header  lipgloss.Color
	Index   lipgloss.Color
	Border  lipgloss.Color
	Missing lipgloss.Color
}

// DarkPalette is the default palette.
var DarkPalette = Palette{
	Header:  lipgloss.Color("#7C3AED"), // Purple
	Index:   lipgloss.Color("#06B6D4"), // Cyan
	Border:  lipgloss.Color("#334155"), // Slate
	Missing: lipgloss.Color("#94A3B8"), // Muted slate
}

type styles struct {
	header  lipgloss.Style
	index   lipgloss.Style
	cell    lipgloss.Style
	missing lipgloss.Style
	border  lipgloss.Style
}

func newStyles(p Palette) styles {
	return styles{
		header: lipgloss.NewStyle().
			Foreground(p.Header).
			Bold(true).
			Padding(0, 1),
		index: lipgloss.NewStyle().
			Foreground(p.Index).
			Padding(0, 1),
		cell: lipgloss.NewStyle().
			Padding(0, 1),
		missing: lipgloss.NewStyle().
			Foreground(p.Missing).
			Italic(true).
			Padding(0, 1),
		border: lipgloss.NewStyle().
			Foreground(p.Border),
	}
}
