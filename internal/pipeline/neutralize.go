package pipeline

import (
	"regexp"
	"strings"
)

const neutralTarget = "=https://example.com%23"

var redirectValueRe = regexp.MustCompile(`=https?://`)

// Neutralize points every redirect parameter of in at example.com, with the
// rest of the original value pushed into the fragment. All lines are written
// to out; the number of lines that changed is returned.
func Neutralize(in, out string) (int, error) {
	n := 0
	err := mapLines(in, out, func(line string) (string, bool) {
		rewritten := neutralizeLine(line)
		if rewritten != line {
			n++
		}
		return rewritten, true
	})
	return n, err
}

func neutralizeLine(line string) string {
	matches := redirectValueRe.FindAllStringIndex(line, -1)
	if matches == nil {
		return line
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		// already neutralized
		if strings.HasPrefix(line[m[0]:], neutralTarget) {
			continue
		}
		b.WriteString(line[last:m[0]])
		b.WriteString(neutralTarget)
		last = m[1]
	}
	b.WriteString(line[last:])
	return b.String()
}
