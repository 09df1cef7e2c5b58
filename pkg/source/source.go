// Package source loads the items to paginate and watches them for changes.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/macropower/pgn/pkg/paginator"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

const maxLineSize = 1024 * 1024

// ReadLines splits r into lines. Trailing carriage returns are dropped, and
// a final newline does not produce an empty item.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lines := []string{}
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}

	err := sc.Err()
	if err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}

	return lines, nil
}

// Lines returns a [paginator.Source] over items. Each item is passed
// through render, or used as is when render is nil.
func Lines(items []string, render func(string) string) paginator.Slice[string] {
	if render == nil {
		render = func(s string) string { return s }
	}

	return paginator.Slice[string]{Data: items, Render: render}
}

// Loader reads items from a file path, or from stdin when the path is
// [Stdin].
type Loader struct {
	stdin io.Reader
	path  string
	data  []byte // Cached stdin contents.
}

// NewLoader creates a [Loader] for path.
func NewLoader(path string, opts ...LoaderOpt) *Loader {
	l := &Loader{path: path, stdin: os.Stdin}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*Loader)

// WithStdin sets the reader used when the path is [Stdin].
func WithStdin(r io.Reader) LoaderOpt {
	return func(l *Loader) {
		l.stdin = r
	}
}

// Path returns the path the loader reads from.
func (l *Loader) Path() string {
	return l.path
}

// IsStdin reports whether the loader reads from stdin.
func (l *Loader) IsStdin() bool {
	return l.path == Stdin
}

// Load reads and splits the input. Stdin is only consumed once; later calls
// return the same items.
func (l *Loader) Load() ([]string, error) {
	if l.IsStdin() {
		if l.data == nil {
			b, err := io.ReadAll(l.stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}

			l.data = b
		}

		return ReadLines(bytes.NewReader(l.data))
	}

	pathInfo, err := os.Stat(l.path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if pathInfo.IsDir() {
		return nil, fmt.Errorf("%s: path is a directory", l.path)
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only.

	return ReadLines(f)
}
