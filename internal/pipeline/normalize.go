package pipeline

import (
	"sort"
	"strings"

	"github.com/selimozcann/RedirectToolkit/internal/lineio"
)

// Normalize reduces a probe result file to a sorted set of unique URLs.
//
// The file is read as CSV when its first line contains a comma and a "url"
// or "status" column name; the URL is then the second field. Otherwise every
// non-blank line is taken as a URL. Rows with fewer than two fields are
// skipped. It returns the size of the set.
func Normalize(in, out string) (int, error) {
	set := make(map[string]struct{})
	first, csvMode := true, false

	err := lineio.Each(in, func(line string) error {
		if first {
			first = false
			lower := strings.ToLower(line)
			csvMode = strings.Contains(line, ",") &&
				(strings.Contains(lower, "url") || strings.Contains(lower, "status"))
			if csvMode {
				return nil
			}
		}
		if strings.TrimSpace(line) == "" {
			return nil
		}
		if !csvMode {
			set[strings.TrimSpace(line)] = struct{}{}
			return nil
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			return nil
		}
		if u := unquote(strings.TrimSpace(fields[1])); u != "" {
			set[u] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	urls := make([]string, 0, len(set))
	for u := range set {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	w, err := lineio.Create(out)
	if err != nil {
		return 0, err
	}
	for _, u := range urls {
		if err := w.WriteLine(u); err != nil {
			_ = w.Close()
			return 0, err
		}
	}
	return len(urls), w.Close()
}

// unquote strips double quotes from either end independently, since the
// naive comma split can leave just one of a quoted pair.
func unquote(s string) string {
	return strings.TrimSpace(strings.Trim(s, `"`))
}
