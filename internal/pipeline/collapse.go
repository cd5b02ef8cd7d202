package pipeline

import (
	"strings"

	"github.com/selimozcann/RedirectToolkit/internal/lineio"
)

// windowSize is how many leading characters of a line identify it when
// looking for near-duplicates.
const windowSize = 20

// Collapse drops a line when the first 20 characters of the line after it
// occur anywhere inside it, then rewrites the survivors with rw. The last
// line is always kept. Input is expected sorted so near-duplicates are
// adjacent. It returns the number of lines written.
func Collapse(in, out string, rw Rewriter) (n int, err error) {
	w, err := lineio.Create(out)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		n = w.Lines()
	}()

	var prev string
	havePrev := false
	err = lineio.Each(in, func(next string) error {
		if havePrev && !strings.Contains(prev, window(next)) {
			if err := w.WriteLine(rw.Rewrite(prev)); err != nil {
				return err
			}
		}
		prev, havePrev = next, true
		return nil
	})
	if err != nil || !havePrev {
		return 0, err
	}
	return 0, w.WriteLine(rw.Rewrite(prev))
}

func window(s string) string {
	r := []rune(s)
	if len(r) <= windowSize {
		return s
	}
	return string(r[:windowSize])
}
