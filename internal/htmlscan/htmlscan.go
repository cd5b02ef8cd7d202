package htmlscan

import (
	"bytes"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	refreshURLRe = regexp.MustCompile(`(?i)^\s*\d*\s*;?\s*url\s*=\s*['"]?([^'"]+)['"]?\s*$`)
	jsRedirectRe = regexp.MustCompile(`(?i)(?:window\.|document\.|top\.)?location(?:\.href)?\s*=\s*['"]([^'"#]+)['"]`)
	jsReplaceRe  = regexp.MustCompile(`(?i)location\.(?:replace|assign)\(\s*['"]([^'"#]+)['"]\s*\)`)
)

// ShouldFetchBody checks if content-type indicates HTML.
func ShouldFetchBody(ct string) bool {
	ct = strings.ToLower(ct)
	return ct == "" || strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

// DetectRedirect inspects an HTML body for a meta refresh or a JavaScript
// location change and returns the resolved next URL with the mechanism used.
func DetectRedirect(body []byte, base *url.URL) (next *url.URL, via string, ok bool) {
	if target, found := metaRefresh(body); found {
		if u, err := url.Parse(target); err == nil {
			return base.ResolveReference(u), "meta-refresh", true
		}
	}
	for _, re := range []*regexp.Regexp{jsRedirectRe, jsReplaceRe} {
		if m := re.FindSubmatch(body); m != nil {
			if u, err := url.Parse(string(m[1])); err == nil {
				return base.ResolveReference(u), "js", true
			}
		}
	}
	return nil, "", false
}

func metaRefresh(body []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	var target string
	doc.Find("meta[http-equiv]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		equiv, _ := s.Attr("http-equiv")
		if !strings.EqualFold(strings.TrimSpace(equiv), "refresh") {
			return true
		}
		content, _ := s.Attr("content")
		if m := refreshURLRe.FindStringSubmatch(content); m != nil {
			target = strings.TrimSpace(m[1])
			return false
		}
		return true
	})
	return target, target != ""
}

// ReadBody reads from r up to limit bytes.
func ReadBody(r io.Reader, limit int64) []byte {
	body, _ := io.ReadAll(io.LimitReader(r, limit))
	return body
}
