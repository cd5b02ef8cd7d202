package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// FFUF drives an installed ffuf binary. ffuf fetches every candidate, follows
// redirects and keeps the ones whose body matches the marker.
type FFUF struct {
	path     string
	marker   string
	threads  int
	timeout  time.Duration
	logger   zerolog.Logger
	lookPath func(string) (string, error)
}

// NewFFUF returns an ffuf backend. Zero values fall back to ffuf on PATH,
// the default marker, 20 threads and a 2 second timeout.
func NewFFUF(opts Options, logger zerolog.Logger) *FFUF {
	f := &FFUF{
		path:     opts.FFUFPath,
		marker:   opts.Marker,
		threads:  opts.Threads,
		timeout:  opts.Timeout,
		logger:   logger.With().Str("component", "ffuf").Logger(),
		lookPath: exec.LookPath,
	}
	if f.path == "" {
		f.path = "ffuf"
	}
	if f.marker == "" {
		f.marker = DefaultMarker
	}
	if f.threads <= 0 {
		f.threads = 20
	}
	if f.timeout <= 0 {
		f.timeout = 2 * time.Second
	}
	return f
}

func (f *FFUF) Name() string { return BackendFFUF }

func (f *FFUF) InstallHint() string {
	return "Install: go install github.com/ffuf/ffuf/v2@latest"
}

// Args returns the ffuf command line for one run.
func (f *FFUF) Args(candidatesPath, resultsPath string) []string {
	secs := int(math.Ceil(f.timeout.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return []string{
		"-w", candidatesPath,
		"-u", "FUZZ",
		"-r",
		"-mr", f.marker,
		"-o", resultsPath,
		"-of", "csv",
		"-timeout", strconv.Itoa(secs),
		"-t", strconv.Itoa(f.threads),
		"-s",
	}
}

// Probe runs ffuf to completion. The exit status is only logged: callers
// judge the run by the result file it leaves behind.
func (f *FFUF) Probe(ctx context.Context, candidatesPath, resultsPath string) (bool, error) {
	bin, err := f.lookPath(f.path)
	if err != nil {
		f.logger.Debug().Err(err).Str("path", f.path).Msg("ffuf not found")
		return false, nil
	}

	args := f.Args(candidatesPath, resultsPath)
	f.logger.Debug().Str("cmd", bin+" "+strings.Join(args, " ")).Msg("running ffuf")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		f.logger.Warn().
			Int("exit_code", exitErr.ExitCode()).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Msg("ffuf exited with non-zero status")
	case err != nil:
		return true, fmt.Errorf("run %s: %w", bin, err)
	}
	f.logger.Debug().Dur("took", time.Since(start)).Msg("ffuf finished")
	return true, nil
}
