package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/retype/internal/theme"
)

const (
	newlineGlyph   = '↵'
	wrongSpaceDot  = '•'
	truncationMark = "…"
)

type styledRune struct {
	s       string
	width   int
	newline bool
}

// buildStyledRunes styles every target rune by comparing it against the
// typed input. Newlines render as a return glyph and stay part of the
// line they terminate; a mistyped space renders as a dot.
func buildStyledRunes(target, input []rune, cursor int, th theme.Theme) []styledRune {
	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		displayed := r
		if r == '\n' {
			displayed = newlineGlyph
		}
		var style = th.Pending
		if i < len(input) {
			switch {
			case input[i] == r:
				style = th.Correct
			case r == ' ':
				displayed = wrongSpaceDot
				style = th.Incorrect
			default:
				style = th.Incorrect
			}
		}
		if i == cursor && i >= len(input) {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			newline: r == '\n',
		})
	}
	return out
}

// renderLines assembles styled runes into terminal lines, truncating
// each line to maxWidth columns. maxWidth <= 0 disables truncation.
func renderLines(cells []styledRune, maxWidth int) []string {
	var lines []string
	var b strings.Builder
	width := 0
	truncating := false
	for _, cell := range cells {
		if cell.newline {
			if !truncating {
				b.WriteString(cell.s)
			}
			lines = append(lines, b.String())
			b.Reset()
			width = 0
			truncating = false
			continue
		}
		if truncating {
			continue
		}
		if maxWidth > 0 && width+cell.width > maxWidth {
			b.WriteString(truncationMark)
			truncating = true
			continue
		}
		b.WriteString(cell.s)
		width += cell.width
	}
	lines = append(lines, b.String())
	return lines
}

// currentLine returns the index of the line being typed, i.e. the
// number of completed lines.
func currentLine(input []rune) int {
	n := 0
	for _, r := range input {
		if r == '\n' {
			n++
		}
	}
	return n
}

// lineWindow picks the visible slice of lines, keeping the current
// line on screen with one line of context above it.
func lineWindow(total, current, display int) (start, end int) {
	if display <= 0 || total <= display {
		return 0, total
	}
	start = current - 1
	if start < 0 {
		start = 0
	}
	if start+display > total {
		start = total - display
	}
	return start, start + display
}
