package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/selimozcann/RedirectToolkit/internal/lineio"
	"github.com/selimozcann/RedirectToolkit/internal/probe"
)

// validate runs the prober over in and leaves its results in out. When the
// prober is missing or fails, in is copied to out unchanged so the batch
// still produces templates. It returns the number of validated redirectors
// and whether a prober actually ran.
func (p *Pipeline) validate(ctx context.Context, in, out string) (int, bool, error) {
	if p.prober == nil {
		p.observer.Warn("no liveness prober configured; skipping validation")
		return 0, false, lineio.Copy(in, out)
	}

	log := p.logger.With().Str("prober", p.prober.Name()).Logger()
	available, err := p.prober.Probe(ctx, in, out)
	switch {
	case !available:
		p.observer.Warn(p.prober.Name() + " not available; skipping validation")
		if h, ok := p.prober.(probe.Installer); ok {
			p.observer.Info(h.InstallHint())
		}
		return 0, false, lineio.Copy(in, out)
	case err != nil:
		log.Warn().Err(err).Msg("probe failed")
		p.observer.Warn("validation failed (" + err.Error() + "); continuing with unvalidated candidates")
		return 0, true, lineio.Copy(in, out)
	}

	if _, err := os.Stat(out); errors.Is(err, fs.ErrNotExist) {
		p.observer.Warn("no working redirectors found")
		f, err := os.Create(out)
		if err != nil {
			return 0, true, err
		}
		return 0, true, f.Close()
	}

	lines, err := lineio.Count(out, false)
	if err != nil {
		return 0, true, err
	}
	// header row
	return max(0, lines-1), true, nil
}
