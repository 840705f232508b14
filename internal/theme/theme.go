// Package theme builds the lipgloss styles shared by every view.
package theme

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme is drawn from.
type Palette struct {
	Text    lipgloss.Color
	Strong  lipgloss.Color
	Muted   lipgloss.Color
	Faint   lipgloss.Color
	Accent  lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Border  lipgloss.Color
}

// DarkPalette is used on dark terminals.
var DarkPalette = Palette{
	Text:    "#F0F0F0",
	Strong:  "#FFFFFF",
	Muted:   "#8C8C8C",
	Faint:   "#6E6E6E",
	Accent:  "#C89A3A",
	Error:   "#FF4D4F",
	Success: "#52C41A",
	Border:  "#4A4A4A",
}

// LightPalette is used on light terminals.
var LightPalette = Palette{
	Text:    "#262626",
	Strong:  "#000000",
	Muted:   "#8C8C8C",
	Faint:   "#A6A6A6",
	Accent:  "#1D5FD1",
	Error:   "#CF1322",
	Success: "#389E0D",
	Border:  "#BFBFBF",
}

// Styles holds every style the views render with. Views keep a pointer and
// see theme switches without being rebuilt.
type Styles struct {
	Dark    bool
	Palette Palette

	Correct     lipgloss.Style
	Incorrect   lipgloss.Style
	Pending     lipgloss.Style
	CurrentWord lipgloss.Style
	Cursor      lipgloss.Style

	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Footer    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Highlight lipgloss.Style

	ActiveNav   lipgloss.Style
	InactiveNav lipgloss.Style
	Card        lipgloss.Style
	CardTitle   lipgloss.Style
	CardValue   lipgloss.Style
	TableMuted  lipgloss.Style
	Modal       lipgloss.Style
}

// New returns the styles for the dark or light palette.
func New(dark bool) *Styles {
	s := &Styles{}
	s.Apply(dark)
	return s
}

// Apply rebuilds s in place for the given mode.
func (s *Styles) Apply(dark bool) {
	p := LightPalette
	if dark {
		p = DarkPalette
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	*s = Styles{
		Dark:    dark,
		Palette: p,

		Correct:     fg(p.Text),
		Incorrect:   fg(p.Error),
		Pending:     fg(p.Muted),
		CurrentWord: fg(p.Accent),
		Cursor:      fg(p.Muted).Underline(true),

		Title:     fg(p.Strong).Bold(true),
		Text:      fg(p.Text),
		Muted:     fg(p.Muted),
		Footer:    fg(p.Faint),
		Error:     fg(p.Error),
		Success:   fg(p.Success),
		Highlight: fg(p.Accent).Bold(true),

		ActiveNav: fg(p.Strong).Bold(true).Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Accent),
		InactiveNav: fg(p.Muted).Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Border),
		Card: lipgloss.NewStyle().Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Border),
		CardTitle:  fg(p.Muted),
		CardValue:  fg(p.Strong).Bold(true),
		TableMuted: fg(p.Text),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Accent).
			Padding(1, 2),
	}
}

// Table returns bubbles table styles in the current palette.
func (s *Styles) Table() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Palette.Border).
		Foreground(s.Palette.Text).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(s.Palette.Accent).
		Bold(true)
	return styles
}

// Tabs renders a row of navigation tabs with active highlighted.
func (s *Styles) Tabs(labels []string, active int) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		if i == active {
			parts = append(parts, s.ActiveNav.Render(label))
		} else {
			parts = append(parts, s.InactiveNav.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// MetricCard renders a bordered label/value pair.
func (s *Styles) MetricCard(label, value string) string {
	return s.Card.Render(s.CardTitle.Render(label) + "\n" + s.CardValue.Render(value))
}
