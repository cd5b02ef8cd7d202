package trace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/selimozcann/RedirectToolkit/internal/htmlscan"
	"github.com/selimozcann/RedirectToolkit/internal/model"
	"github.com/selimozcann/RedirectToolkit/internal/util"
)

const bodyLimit = 512 * 1024

// Options controls how far a trace goes and what counts as alive.
type Options struct {
	MaxChain      int
	ClientSide    bool
	AllowInternal bool
	Marker        *regexp.Regexp
}

// Tracer performs manual redirect tracing.
type Tracer struct {
	Client *http.Client
	opts   Options
}

// New creates a new Tracer. A nil marker never matches.
func New(c *http.Client, opts Options) *Tracer {
	if opts.MaxChain <= 0 {
		opts.MaxChain = 10
	}
	return &Tracer{Client: c, opts: opts}
}

// Trace follows HTTP and, if enabled, client-side redirects starting from
// target, and reports whether the page it lands on carries the marker.
func (t *Tracer) Trace(ctx context.Context, target string) model.Result {
	res := model.Result{Target: target, StartedAt: time.Now()}
	defer func() { res.DurationMs = time.Since(res.StartedAt).Milliseconds() }()

	current := target
	seen := make(map[string]struct{})
	via := "start"

	for i := 0; i < t.opts.MaxChain; i++ {
		if _, ok := seen[current]; ok {
			res.Error = "redirect loop at " + current
			return res
		}
		seen[current] = struct{}{}

		u, err := url.Parse(current)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		if !t.opts.AllowInternal && util.IsInternalHost(u.Hostname()) {
			res.Blocked = u.Host
			return res
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		start := time.Now()
		resp, err := t.Client.Do(req)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		hop := model.Hop{Index: i, URL: current, Status: resp.StatusCode, Via: via, TimeMs: time.Since(start).Milliseconds()}

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			loc := resp.Header.Get("Location")
			_ = resp.Body.Close()
			next, perr := url.Parse(loc)
			if loc == "" || perr != nil {
				hop.Final = true
				res.Chain = append(res.Chain, hop)
				return res
			}
			res.Chain = append(res.Chain, hop)
			current = u.ResolveReference(next).String()
			via = "http-location"
			continue
		}

		var body []byte
		if htmlscan.ShouldFetchBody(resp.Header.Get("Content-Type")) {
			body = htmlscan.ReadBody(resp.Body, bodyLimit)
		}
		_ = resp.Body.Close()
		hop.Size = int64(len(body))

		if t.opts.ClientSide {
			if next, how, ok := htmlscan.DetectRedirect(body, u); ok && !t.matches(body) {
				res.Chain = append(res.Chain, hop)
				current = next.String()
				via = how
				continue
			}
		}

		hop.Final = true
		res.Chain = append(res.Chain, hop)
		res.Alive = t.matches(body)
		return res
	}

	res.Error = fmt.Sprintf("chain longer than %d hops", t.opts.MaxChain)
	return res
}

func (t *Tracer) matches(body []byte) bool {
	return t.opts.Marker != nil && t.opts.Marker.Match(body)
}
