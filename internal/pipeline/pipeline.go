// Package pipeline turns a raw URL list into redirector templates in five
// file-to-file stages: extract, neutralize, validate, normalize and collapse.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/selimozcann/RedirectToolkit/internal/lineio"
	"github.com/selimozcann/RedirectToolkit/internal/probe"
)

// ErrInputNotFound is returned by Run when the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// Stage names, in execution order.
const (
	StageExtract    = "extract"
	StageNeutralize = "neutralize"
	StageValidate   = "validate"
	StageNormalize  = "normalize"
	StageCollapse   = "collapse"
)

// StageCount is the number of stages Run executes.
const StageCount = 5

// Stats summarizes one batch run.
type Stats struct {
	Input     int
	Extracted int
	Replaced  int
	Validated int
	Sorted    int
	Output    int

	ProbeAvailable bool
	Duration       time.Duration
}

// Observer receives progress notifications. step is 1-based.
type Observer interface {
	StageStarted(step int, name string)
	StageFinished(step int, name string, count int)
	Warn(msg string)
	Info(msg string)
}

type nopObserver struct{}

func (nopObserver) StageStarted(int, string)       {}
func (nopObserver) StageFinished(int, string, int) {}
func (nopObserver) Warn(string)                    {}
func (nopObserver) Info(string)                    {}

// Options configures a Pipeline.
type Options struct {
	Rewriter Rewriter
	// ScratchDir is the parent of the per-run temporary directory. Empty
	// means os.TempDir.
	ScratchDir string
}

// Pipeline runs the batch stages. It is safe to reuse across runs but not
// concurrently.
type Pipeline struct {
	prober   probe.Prober
	opts     Options
	logger   zerolog.Logger
	observer Observer
}

// New returns a Pipeline. A nil prober skips validation; a nil observer
// discards progress.
func New(prober probe.Prober, opts Options, logger zerolog.Logger, observer Observer) *Pipeline {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Pipeline{
		prober:   prober,
		opts:     opts,
		logger:   logger.With().Str("component", "pipeline").Logger(),
		observer: observer,
	}
}

// Run processes input into output. Intermediate files live in a temporary
// directory that is removed before Run returns.
func (p *Pipeline) Run(ctx context.Context, input, output string) (Stats, error) {
	start := time.Now()
	var st Stats

	info, err := os.Stat(input)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return st, fmt.Errorf("%w: %s", ErrInputNotFound, input)
	}
	if err != nil {
		return st, fmt.Errorf("stat %q: %w", input, err)
	}

	if st.Input, err = lineio.Count(input, true); err != nil {
		return st, err
	}

	dir, err := os.MkdirTemp(p.opts.ScratchDir, "redirkit-")
	if err != nil {
		return st, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)
	p.logger.Debug().Str("dir", dir).Int("input_lines", st.Input).Msg("batch started")

	var (
		extracted = filepath.Join(dir, "extracted.txt")
		prepared  = filepath.Join(dir, "prepared.txt")
		tested    = filepath.Join(dir, "tested.csv")
		sorted    = filepath.Join(dir, "sorted.txt")
	)

	stages := []struct {
		name string
		run  func() (int, error)
	}{
		{StageExtract, func() (int, error) {
			n, err := Extract(input, extracted)
			st.Extracted = n
			return n, err
		}},
		{StageNeutralize, func() (int, error) {
			n, err := Neutralize(extracted, prepared)
			st.Replaced = n
			return n, err
		}},
		{StageValidate, func() (int, error) {
			n, ran, err := p.validate(ctx, prepared, tested)
			st.Validated, st.ProbeAvailable = n, ran
			return n, err
		}},
		{StageNormalize, func() (int, error) {
			n, err := Normalize(tested, sorted)
			st.Sorted = n
			return n, err
		}},
		{StageCollapse, func() (int, error) {
			n, err := Collapse(sorted, output, p.opts.Rewriter)
			st.Output = n
			return n, err
		}},
	}

	for i, s := range stages {
		p.observer.StageStarted(i+1, s.name)
		stageStart := time.Now()
		n, err := s.run()
		if err != nil {
			st.Duration = time.Since(start)
			return st, fmt.Errorf("stage %s: %w", s.name, err)
		}
		p.logger.Debug().Str("stage", s.name).Int("count", n).Dur("took", time.Since(stageStart)).Msg("stage finished")
		p.observer.StageFinished(i+1, s.name, n)
	}

	st.Duration = time.Since(start)
	return st, nil
}
