// Package probe checks which candidate redirectors are alive. A Prober reads
// a newline-delimited candidate file and writes a CSV result file whose second
// column is the URL of every live candidate.
package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMarker is the body text served by the neutralized redirect target.
const DefaultMarker = "Example Domain"

// Prober is a liveness-checking backend.
//
// Probe returns available == false when the backend cannot run at all (tool
// not installed); the caller then falls back to passing candidates through.
// An error with available == true means the backend ran but failed.
type Prober interface {
	Name() string
	Probe(ctx context.Context, candidatesPath, resultsPath string) (available bool, err error)
}

// Installer is implemented by backends that wrap an external tool and can
// tell the user how to install it.
type Installer interface {
	InstallHint() string
}

// Backend names accepted by New.
const (
	BackendFFUF   = "ffuf"
	BackendNative = "native"
	BackendNone   = "none"
)

// Options configures the concrete backends.
type Options struct {
	FFUFPath      string
	Marker        string
	URLTemplate   string
	Threads       int
	Timeout       time.Duration
	RateLimit     int
	MaxChain      int
	ClientSide    bool
	Insecure      bool
	AllowInternal bool
	UserAgent     string
}

// New returns the backend registered under name, or nil for "none".
func New(name string, opts Options, logger zerolog.Logger) (Prober, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BackendFFUF, "":
		return NewFFUF(opts, logger), nil
	case BackendNative:
		return NewNative(opts, logger), nil
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown probe backend %q (want %s, %s or %s)", name, BackendFFUF, BackendNative, BackendNone)
	}
}
