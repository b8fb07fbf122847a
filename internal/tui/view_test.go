package tui

import (
	"testing"

	"github.com/verte-zerg/retype/internal/theme"
)

func testTheme(t *testing.T) theme.Theme {
	t.Helper()
	th, err := theme.New("dark")
	if err != nil {
		t.Fatalf("failed to build theme: %v", err)
	}
	return th
}

func TestBuildStyledRunesCorrectAndIncorrect(t *testing.T) {
	th := testTheme(t)
	target := []rune("ab")
	input := []rune("ax")

	cells := buildStyledRunes(target, input, -1, th)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].s != th.Correct.Render("a") {
		t.Fatalf("expected correct style for first cell")
	}
	if cells[1].s != th.Incorrect.Render("b") {
		t.Fatalf("expected incorrect style keeping target rune")
	}
}

func TestBuildStyledRunesCursorUnderline(t *testing.T) {
	th := testTheme(t)
	target := []rune("ab")
	input := []rune("a")

	cells := buildStyledRunes(target, input, 1, th)
	if cells[1].s != th.Pending.Underline(true).Render("b") {
		t.Fatalf("expected underlined pending style at cursor")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	th := testTheme(t)
	target := []rune("a b")
	input := []rune("ax")

	cells := buildStyledRunes(target, input, 2, th)
	if cells[1].s != th.Incorrect.Render(string(wrongSpaceDot)) {
		t.Fatalf("expected dot for mistyped space, got %q", cells[1].s)
	}
}

func TestBuildStyledRunesNewlineGlyph(t *testing.T) {
	th := testTheme(t)
	target := []rune("a\nb")
	input := []rune("a\n")

	cells := buildStyledRunes(target, input, 2, th)
	if !cells[1].newline {
		t.Fatalf("expected newline cell")
	}
	if cells[1].s != th.Correct.Render(string(newlineGlyph)) {
		t.Fatalf("expected correct return glyph, got %q", cells[1].s)
	}
}

func TestRenderLinesSplitsOnNewline(t *testing.T) {
	th := testTheme(t)
	target := []rune("ab\ncd")
	cells := buildStyledRunes(target, nil, 0, th)

	lines := renderLines(cells, 0)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
}

func TestRenderLinesTruncates(t *testing.T) {
	th := testTheme(t)
	target := []rune("abcdefgh")
	cells := buildStyledRunes(target, nil, -1, th)

	lines := renderLines(cells, 4)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	want := th.Pending.Render("a") + th.Pending.Render("b") + th.Pending.Render("c") + th.Pending.Render("d") + truncationMark
	if lines[0] != want {
		t.Fatalf("expected truncated line %q, got %q", want, lines[0])
	}
}

func TestCurrentLine(t *testing.T) {
	if got := currentLine([]rune("ab")); got != 0 {
		t.Fatalf("expected line 0, got %d", got)
	}
	if got := currentLine([]rune("ab\ncd\ne")); got != 2 {
		t.Fatalf("expected line 2, got %d", got)
	}
}

func TestLineWindow(t *testing.T) {
	start, end := lineWindow(5, 0, 10)
	if start != 0 || end != 5 {
		t.Fatalf("expected full window, got [%d,%d)", start, end)
	}

	start, end = lineWindow(20, 5, 10)
	if start != 4 || end != 14 {
		t.Fatalf("expected window [4,14), got [%d,%d)", start, end)
	}

	start, end = lineWindow(20, 19, 10)
	if start != 10 || end != 20 {
		t.Fatalf("expected clamped window [10,20), got [%d,%d)", start, end)
	}

	start, end = lineWindow(20, 0, 10)
	if start != 0 || end != 10 {
		t.Fatalf("expected window [0,10), got [%d,%d)", start, end)
	}
}
