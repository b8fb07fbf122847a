// Package picker selects a practice file from a directory tree.
package picker

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/boyter/gocodewalker"
)

// ErrNoMatchingFiles indicates that no candidate file survived the filters.
var ErrNoMatchingFiles = errors.New("no files match the requested filters")

// Picker chooses one file uniformly at random among the candidates.
type Picker struct {
	rnd *rand.Rand
}

// New returns a Picker using the given random source.
func New(rnd *rand.Rand) *Picker {
	return &Picker{rnd: rnd}
}

// NewSeeded returns a Picker seeded with the current time.
func NewSeeded() *Picker {
	return New(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Pick lists candidates under dir and returns one of them at random.
func (p *Picker) Pick(dir, extension string) (string, error) {
	files, err := List(dir, extension)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w under %s", ErrNoMatchingFiles, dir)
	}
	return files[p.rnd.Intn(len(files))], nil
}

// List enumerates candidate files under dir, honoring .gitignore/.ignore
// rules. Hidden files and files without an extension are skipped; when
// extension is non-empty only files with that extension are kept.
func List(dir, extension string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}
	// The walker swallows open failures; check the root first so an
	// unreadable directory reports as such instead of as no matches.
	if _, err := os.ReadDir(dir); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", dir, err)
	}

	want := normalizeExtension(extension)

	queue := make(chan *gocodewalker.File, 128)
	walker := gocodewalker.NewFileWalker(dir, queue)
	walker.SetErrorHandler(func(error) bool {
		// Unreadable subtrees are skipped, not fatal.
		return true
	})
	if want != "" {
		walker.AllowListExtensions = append(walker.AllowListExtensions, want)
	}

	walkErr := make(chan error, 1)
	go func() {
		walkErr <- walker.Start()
	}()

	var files []string
	for f := range queue {
		name := f.Filename
		if strings.HasPrefix(name, ".") {
			continue
		}
		ext := normalizeExtension(filepath.Ext(name))
		if ext == "" {
			continue
		}
		if want != "" && ext != want {
			continue
		}
		files = append(files, f.Location)
	}
	if err := <-walkErr; err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
