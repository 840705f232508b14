package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typemaster/internal/theme"
)

// cell is one rendered reference rune.
type cell struct {
	text  string
	width int
	space bool
}

type span struct {
	start, end int
}

// styleReference colors the reference against the typed prefix. Typed runes
// are green or red, the word under the cursor is highlighted, and a missed
// space shows as a dot so the error stays visible.
func styleReference(st *theme.Styles, ref, typed []rune) []cell {
	cursor := len(typed)
	word := wordAt(wordSpans(ref), cursor)

	out := make([]cell, 0, len(ref))
	for i, r := range ref {
		shown := r
		style := st.Pending
		switch {
		case i < len(typed) && typed[i] == r:
			style = st.Correct
		case i < len(typed):
			style = st.Incorrect
			if r == ' ' {
				shown = '·'
			}
		case word != nil && i >= word.start && i < word.end:
			style = st.CurrentWord
		}
		if i == cursor {
			style = style.Underline(true)
		}
		out = append(out, cell{
			text:  style.Render(string(shown)),
			width: runewidth.RuneWidth(shown),
			space: r == ' ',
		})
	}
	return out
}

func wordSpans(ref []rune) []span {
	var spans []span
	start := -1
	for i, r := range ref {
		switch {
		case r == ' ' && start >= 0:
			spans = append(spans, span{start, i})
			start = -1
		case r != ' ' && start < 0:
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, len(ref)})
	}
	return spans
}

// wordAt returns the word containing pos, or the next word when pos sits on
// a space. Past the end it returns nil.
func wordAt(spans []span, pos int) *span {
	for i := range spans {
		if pos < spans[i].end {
			return &spans[i]
		}
	}
	return nil
}

func joinCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.text)
	}
	return b.String()
}

// wrapCells breaks cells into lines of at most width columns, preferring to
// break at the last space. The space at a break is dropped.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return joinCells(cells)
	}
	var lines []string
	var line []cell
	lineWidth := 0
	for _, c := range cells {
		if lineWidth+c.width > width && len(line) > 0 {
			brk := lastSpace(line)
			if brk < 0 {
				lines = append(lines, joinCells(line))
				line = nil
			} else {
				lines = append(lines, joinCells(line[:brk]))
				line = append([]cell(nil), line[brk+1:]...)
			}
			lineWidth = widthOf(line)
		}
		line = append(line, c)
		lineWidth += c.width
	}
	lines = append(lines, joinCells(line))
	return strings.Join(lines, "\n")
}

func widthOf(cells []cell) int {
	total := 0
	for _, c := range cells {
		total += c.width
	}
	return total
}

func lastSpace(cells []cell) int {
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i].space {
			return i
		}
	}
	return -1
}
