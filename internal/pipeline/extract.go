package pipeline

import "strings"

// Extract keeps the lines of in that carry a redirect parameter, i.e. contain
// "=http". Lines of the form "id|content" are reduced to content first. It
// returns the number of lines written to out.
func Extract(in, out string) (int, error) {
	n := 0
	err := mapLines(in, out, func(line string) (string, bool) {
		line = strings.TrimSpace(line)
		if line == "" {
			return "", false
		}
		if strings.Contains(line, "|") {
			if parts := strings.Split(line, "|"); len(parts) >= 2 {
				line = strings.TrimSpace(parts[1])
			}
		}
		if !strings.Contains(line, "=http") {
			return "", false
		}
		n++
		return line, true
	})
	return n, err
}
