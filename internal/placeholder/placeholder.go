// Package placeholder holds the template tokens embedded in redirector and
// shortener strings. Substitution is literal find-and-replace: a token that is
// not present is ignored.
package placeholder

import "strings"

const (
	URL       = "{{url}}"
	ShortCode = "{{short_code}}"
	Params    = "{{params}}"
)

// Fill replaces every occurrence of token in s with value.
func Fill(s, token, value string) string {
	return strings.ReplaceAll(s, token, value)
}

// ShortenerRef builds the protocol-relative shortener reference inserted into
// batch templates, e.g. "//tinyurl.com/{{short_code}}?{{params}}".
func ShortenerRef(host string) string {
	return "//" + host + "/" + ShortCode + "?" + Params
}
