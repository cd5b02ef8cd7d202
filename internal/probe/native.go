package probe

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/selimozcann/RedirectToolkit/internal/httpclient"
	"github.com/selimozcann/RedirectToolkit/internal/lineio"
	"github.com/selimozcann/RedirectToolkit/internal/output"
	"github.com/selimozcann/RedirectToolkit/internal/runner"
	"github.com/selimozcann/RedirectToolkit/internal/trace"
)

// Native probes candidates in-process with the redirect tracer and writes
// an ffuf-compatible CSV. It never reports itself unavailable.
type Native struct {
	opts   Options
	logger zerolog.Logger
}

// NewNative returns the in-process backend with the same defaults as ffuf.
func NewNative(opts Options, logger zerolog.Logger) *Native {
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	if opts.URLTemplate == "" {
		opts.URLTemplate = "FUZZ"
	}
	if opts.Threads <= 0 {
		opts.Threads = 20
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.MaxChain <= 0 {
		opts.MaxChain = 10
	}
	return &Native{opts: opts, logger: logger.With().Str("component", "native-probe").Logger()}
}

func (n *Native) Name() string { return BackendNative }

// Probe traces every non-blank candidate and keeps the ones whose landing
// page matches the marker.
func (n *Native) Probe(ctx context.Context, candidatesPath, resultsPath string) (bool, error) {
	marker, err := regexp.Compile(n.opts.Marker)
	if err != nil {
		return true, fmt.Errorf("compile marker: %w", err)
	}

	var payloads []string
	err = lineio.Each(candidatesPath, func(line string) error {
		if line = strings.TrimSpace(line); line != "" {
			payloads = append(payloads, line)
		}
		return nil
	})
	if err != nil {
		return true, err
	}
	targets := make([]string, len(payloads))
	for i, p := range payloads {
		targets[i] = strings.Replace(n.opts.URLTemplate, "FUZZ", p, 1)
	}

	client := httpclient.New(httpclient.Config{
		Timeout:   n.opts.Timeout,
		UserAgent: n.opts.UserAgent,
		Insecure:  n.opts.Insecure,
	})
	tracer := trace.New(client, trace.Options{
		MaxChain:      n.opts.MaxChain,
		ClientSide:    n.opts.ClientSide,
		AllowInternal: n.opts.AllowInternal,
		Marker:        marker,
	})

	start := time.Now()
	results := runner.New(runner.Config{Threads: n.opts.Threads, RateLimit: n.opts.RateLimit}, tracer).Run(ctx, targets)
	for i := range results {
		results[i].Payload = payloads[i]
		if results[i].Error != "" {
			n.logger.Debug().Str("target", results[i].Target).Str("error", results[i].Error).Msg("probe failed")
		}
	}

	f, err := os.Create(resultsPath)
	if err != nil {
		return true, fmt.Errorf("create %q: %w", resultsPath, err)
	}
	defer f.Close()
	alive, err := output.WriteCSV(f, results)
	if err != nil {
		return true, fmt.Errorf("write %q: %w", resultsPath, err)
	}
	n.logger.Debug().
		Int("candidates", len(targets)).
		Int("alive", alive).
		Dur("took", time.Since(start)).
		Msg("native probe finished")
	return true, f.Close()
}
