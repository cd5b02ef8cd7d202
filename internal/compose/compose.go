// Package compose builds a single redirector -> shortener -> target link.
package compose

import (
	"strings"

	"github.com/selimozcann/RedirectToolkit/internal/obfuscate"
	"github.com/selimozcann/RedirectToolkit/internal/placeholder"
	"github.com/selimozcann/RedirectToolkit/internal/util"
)

// Param is one key=value pair appended to the target's query string.
type Param struct {
	Key   string
	Value string
}

// Request describes the link to build. Redirector must contain the {{url}}
// placeholder for the target to be inserted; otherwise it is returned as is.
type Request struct {
	Redirector string
	Target     string
	Params     []Param
	Shortener  string
	Obfuscate  bool
}

// Link is the result of Compose.
type Link struct {
	// URL is the redirector with {{url}} filled in.
	URL string
	// TargetWithParams is the target after parameters were appended. It is
	// informational only: with a shortener configured the shortener must be
	// pointed at it.
	TargetWithParams string
}

// Compose fills the redirector template. It never mutates req.
func Compose(req Request) Link {
	target := WithParams(req.Target, req.Params)

	hop := target
	if req.Shortener != "" {
		hop = req.Shortener
	}
	hop = stripScheme(hop)

	var fragment string
	if req.Obfuscate {
		fragment = obfuscate.Obfuscate(hop)
	} else {
		fragment = "//" + hop
	}

	return Link{
		URL:              placeholder.Fill(req.Redirector, placeholder.URL, fragment),
		TargetWithParams: target,
	}
}

// WithParams appends params to target as a query string, using '&' when the
// target already has a '?'.
func WithParams(target string, params []Param) string {
	if len(params) == 0 {
		return target
	}
	pairs := make([]string, len(params))
	for i, p := range params {
		pairs[i] = p.Key + "=" + p.Value
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + strings.Join(pairs, "&")
}

// ParseParams converts "key=value" strings into Params. Entries without '='
// are ignored. A repeated key keeps its first position and takes the last
// value.
func ParseParams(raw []string) []Param {
	var params []Param
	index := make(map[string]int)
	for _, entry := range raw {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if i, seen := index[key]; seen {
			params[i].Value = value
			continue
		}
		index[key] = len(params)
		params = append(params, Param{Key: key, Value: value})
	}
	return params
}

func stripScheme(s string) string {
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(s, scheme) {
			return s[len(scheme):]
		}
	}
	return s
}

// Roles of the hops returned by Chain.
const (
	RoleRedirector = "redirector"
	RoleShortener  = "shortener"
	RoleTarget     = "target"
)

// Hop is one step of the chain a recipient follows.
type Hop struct {
	Role   string
	Host   string
	Domain string
}

// Chain lists the hops a click on the composed link goes through, in order.
func Chain(req Request) []Hop {
	hops := []Hop{newHop(RoleRedirector, req.Redirector)}
	if req.Shortener != "" {
		hops = append(hops, newHop(RoleShortener, req.Shortener))
	}
	return append(hops, newHop(RoleTarget, req.Target))
}

func newHop(role, raw string) Hop {
	return Hop{Role: role, Host: util.Hostname(raw), Domain: util.RegistrableDomain(raw)}
}
