package pipeline

import (
	"github.com/selimozcann/RedirectToolkit/internal/lineio"
)

// mapLines streams in through fn into out. fn returns the line to write and
// whether to write it at all.
func mapLines(in, out string, fn func(line string) (string, bool)) (err error) {
	w, err := lineio.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	return lineio.Each(in, func(line string) error {
		if line, ok := fn(line); ok {
			return w.WriteLine(line)
		}
		return nil
	})
}
