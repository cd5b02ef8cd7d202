package pipeline

import (
	"regexp"

	"github.com/selimozcann/RedirectToolkit/internal/obfuscate"
	"github.com/selimozcann/RedirectToolkit/internal/placeholder"
)

var neutralURLRe = regexp.MustCompile(`https://example\.com[^&]*`)

// Rewriter turns a validated redirector URL into a reusable template by
// swapping the neutralized target for a placeholder.
type Rewriter struct {
	// Shortener is the shortener host. When empty the target becomes {{url}}.
	Shortener string
	// Obfuscate disguises the shortener reference. Ignored without Shortener.
	Obfuscate bool
}

// Reference is the text that replaces the neutralized target.
func (r Rewriter) Reference() string {
	if r.Shortener == "" {
		return placeholder.URL
	}
	ref := placeholder.ShortenerRef(r.Shortener)
	if r.Obfuscate {
		ref = obfuscate.Obfuscate(ref)
	}
	return ref
}

// Rewrite replaces the first neutralized target in line.
func (r Rewriter) Rewrite(line string) string {
	loc := neutralURLRe.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[:loc[0]] + r.Reference() + line[loc[1]:]
}
