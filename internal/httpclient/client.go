package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"
)

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Config holds settings for the probe HTTP client.
type Config struct {
	Timeout   time.Duration
	Proxy     func(*http.Request) (*url.URL, error)
	Headers   http.Header
	UserAgent string
	Insecure  bool
	// Retries is the number of extra attempts after a network error or a
	// 5xx response. Zero disables retrying.
	Retries int
}

// probeTransport injects headers and retries transient failures.
type probeTransport struct {
	base      http.RoundTripper
	headers   http.Header
	userAgent string
	retries   int
	backoff   func(attempt int) time.Duration
}

func (p *probeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		r := req.Clone(req.Context())
		if req.Body != nil && req.GetBody != nil {
			if body, err := req.GetBody(); err == nil {
				r.Body = body
			}
		}
		for k, vs := range p.headers {
			r.Header.Del(k)
			for _, v := range vs {
				r.Header.Add(k, v)
			}
		}
		if r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", p.userAgent)
		}

		resp, err := p.base.RoundTrip(r)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if attempt >= p.retries || req.Context().Err() != nil {
			return resp, err
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(p.backoff(attempt)):
		}
	}
}

func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(100*(1<<attempt)) * time.Millisecond
}

// New returns a client that never follows redirects on its own; the tracer
// walks every hop itself.
func New(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy:           cfg.Proxy,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.Insecure}, // #nosec G402 -- opt-in flag
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &http.Client{
		Transport: &probeTransport{
			base:      transport,
			headers:   cfg.Headers,
			userAgent: ua,
			retries:   cfg.Retries,
			backoff:   exponentialBackoff,
		},
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
