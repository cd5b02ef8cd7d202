package runner

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/selimozcann/RedirectToolkit/internal/model"
)

// Tracer traces a single target.
type Tracer interface {
	Trace(ctx context.Context, target string) model.Result
}

// Config holds settings for the runner.
type Config struct {
	Threads   int
	RateLimit int // requests per second, 0 = unlimited
}

// Runner coordinates concurrent probes.
type Runner struct {
	cfg    Config
	tracer Tracer
}

// New creates a new Runner.
func New(cfg Config, tracer Tracer) *Runner {
	if cfg.Threads <= 0 {
		cfg.Threads = 1
	}
	return &Runner{cfg: cfg, tracer: tracer}
}

// Run processes targets and returns results in input order. Position is the
// 1-based index of the target. Targets not reached before ctx is cancelled
// carry the context error.
func (r *Runner) Run(ctx context.Context, targets []string) []model.Result {
	out := make([]model.Result, len(targets))
	var limiter *rate.Limiter
	if r.cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.cfg.RateLimit), 1)
	}

	type job struct {
		idx    int
		target string
	}

	jobs := make(chan job)
	wg := sync.WaitGroup{}
	for i := 0; i < r.cfg.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jb := range jobs {
				var res model.Result
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						res = model.Result{Target: jb.target, Error: err.Error()}
					}
				}
				if res.Error == "" {
					res = r.tracer.Trace(ctx, jb.target)
				}
				res.Position = jb.idx + 1
				out[jb.idx] = res
			}
		}()
	}

	sent := 0
	for i, t := range targets {
		if ctx.Err() != nil {
			break
		}
		jobs <- job{idx: i, target: t}
		sent++
	}
	close(jobs)
	wg.Wait()

	for i := sent; i < len(targets); i++ {
		out[i] = model.Result{Position: i + 1, Target: targets[i], Error: ctx.Err().Error()}
	}
	return out
}
