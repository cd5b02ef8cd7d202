// Package lineio reads and writes the line-oriented files passed between
// pipeline stages.
package lineio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// dropInvalid turns ill-formed UTF-8 into U+FFFD and then removes it, so
// invalid byte sequences disappear instead of failing the read.
func dropInvalid() transform.Transformer {
	return transform.Chain(
		runes.ReplaceIllFormed(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
}

// NewReader wraps r with permissive UTF-8 decoding.
func NewReader(r io.Reader) *bufio.Reader {
	return bufio.NewReaderSize(transform.NewReader(r, dropInvalid()), 64*1024)
}

// Each calls fn for every line of the file at path. Lines may be of any
// length. Line terminators are stripped; blank lines are passed through.
func Each(path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	r := NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if ferr := fn(trimEOL(line)); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %q: %w", path, err)
		}
	}
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// ReadLines returns every line of the file at path.
func ReadLines(path string) ([]string, error) {
	var lines []string
	err := Each(path, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

// Count returns the number of lines in the file at path. When nonBlank is
// set, whitespace-only lines are not counted.
func Count(path string, nonBlank bool) (int, error) {
	n := 0
	err := Each(path, func(line string) error {
		if nonBlank && isBlank(line) {
			return nil
		}
		n++
		return nil
	})
	return n, err
}

func isBlank(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\n', '\v', '\f':
		default:
			return false
		}
	}
	return true
}

// Copy copies src to dst byte for byte, creating or truncating dst.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %q -> %q: %w", src, dst, err)
	}
	return out.Close()
}

// Writer buffers lines for a single output file.
type Writer struct {
	f *os.File
	w *bufio.Writer
	n int
}

// Create opens path for writing, truncating any existing content.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", path, err)
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteLine writes line followed by a newline.
func (w *Writer) WriteLine(line string) error {
	if _, err := w.w.WriteString(line); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.n++
	return nil
}

// Lines reports how many lines have been written.
func (w *Writer) Lines() int { return w.n }

// Close flushes buffered data and closes the file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		_ = w.f.Close()
		return err
	}
	return w.f.Close()
}
