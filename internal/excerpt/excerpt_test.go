package excerpt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func TestExtractShortFileWhole(t *testing.T) {
	path := writeFile(t, []byte("one\ntwo\nthree\nfour\nfive\n"))
	ex, err := Extract(path, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Text != "one\ntwo\nthree\nfour\nfive" {
		t.Fatalf("unexpected text: %q", ex.Text)
	}
	if ex.LineCount != 5 || ex.Truncated {
		t.Fatalf("expected 5 untruncated lines, got %d truncated=%v", ex.LineCount, ex.Truncated)
	}
}

func TestExtractTruncatesToFirstLines(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, strings.Repeat("x", i+1))
	}
	path := writeFile(t, []byte(strings.Join(lines, "\n")))

	ex, err := Extract(path, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Text != "x\nxx\nxxx" {
		t.Fatalf("expected first 3 lines in order, got %q", ex.Text)
	}
	if !ex.Truncated || ex.LineCount != 3 {
		t.Fatalf("expected truncation to 3 lines, got %d truncated=%v", ex.LineCount, ex.Truncated)
	}
}

func TestExtractEmptyFile(t *testing.T) {
	path := writeFile(t, nil)
	if _, err := Extract(path, 20); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestExtractWhitespaceOnlyFile(t *testing.T) {
	path := writeFile(t, []byte("   \n\n \n"))
	if _, err := Extract(path, 20); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestExtractBinaryFile(t *testing.T) {
	path := writeFile(t, []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01, 0x02})
	if _, err := Extract(path, 20); !errors.Is(err, ErrUnsupportedContent) {
		t.Fatalf("expected ErrUnsupportedContent, got %v", err)
	}
}

func TestExtractInvalidUTF8(t *testing.T) {
	path := writeFile(t, []byte{'o', 'k', 0xff, 0xfe, 'x'})
	if _, err := Extract(path, 20); !errors.Is(err, ErrUnsupportedContent) {
		t.Fatalf("expected ErrUnsupportedContent, got %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.go"), 20)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestExtractNormalizesTabsAndCRLF(t *testing.T) {
	path := writeFile(t, []byte("\tif x {\r\n\t\treturn\r\n\t}\r\n"))
	ex, err := Extract(path, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "    if x {\n        return\n    }"
	if ex.Text != want {
		t.Fatalf("expected %q, got %q", want, ex.Text)
	}
}

func TestExtractDropsTrailingBlankLines(t *testing.T) {
	path := writeFile(t, []byte("alpha\nbeta\n\n\n"))
	ex, err := Extract(path, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Text != "alpha\nbeta" || ex.LineCount != 2 {
		t.Fatalf("unexpected excerpt: %q (%d lines)", ex.Text, ex.LineCount)
	}
}
