// Package excerpt extracts a bounded typing target from a source file.
package excerpt

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyFile indicates the file has no typeable content.
	ErrEmptyFile = errors.New("file is empty")
	// ErrUnsupportedContent indicates binary or non-UTF-8 content.
	ErrUnsupportedContent = errors.New("unsupported file content")
)

const binaryProbeLen = 8000

// Excerpt is the typing target extracted from a file.
type Excerpt struct {
	Path      string
	Text      string
	LineCount int
	Truncated bool
}

// Extract reads path and returns its first maxLines lines, normalized
// for typing: CRLF becomes LF, tabs become four spaces, and other
// control characters are dropped.
func Extract(path string, maxLines int) (Excerpt, error) {
	if maxLines <= 0 {
		return Excerpt{}, fmt.Errorf("line limit must be > 0, got %d", maxLines)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Excerpt{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if len(data) == 0 {
		return Excerpt{}, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	if isBinary(data) {
		return Excerpt{}, fmt.Errorf("%s: %w", path, ErrUnsupportedContent)
	}

	lines := strings.Split(normalize(string(data)), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return Excerpt{}, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	truncated := len(lines) > maxLines
	if truncated {
		lines = lines[:maxLines]
	}

	text := strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		return Excerpt{}, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	return Excerpt{
		Path:      path,
		Text:      text,
		LineCount: len(lines),
		Truncated: truncated,
	}, nil
}

func isBinary(data []byte) bool {
	probe := data
	if len(probe) > binaryProbeLen {
		probe = probe[:binaryProbeLen]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r != '\n' && (r < 0x20 || r == 0x7f) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
