package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/selimozcann/RedirectToolkit/internal/banner"
	"github.com/selimozcann/RedirectToolkit/internal/console"
	"github.com/selimozcann/RedirectToolkit/internal/lineio"
	"github.com/selimozcann/RedirectToolkit/internal/pipeline"
	"github.com/selimozcann/RedirectToolkit/internal/probe"
)

type batchOptions struct {
	shortener string
	obfuscate bool
	backend   string
}

func newBatchCommand(a *app) *cobra.Command {
	var opts batchOptions
	cmd := &cobra.Command{
		Use:   "batch <input_file> <output_file>",
		Short: "Batch process redirector URLs into templates",
		Example: `  redirkit batch input.txt output.txt
  redirkit batch input.txt output.txt -s tinyurl.com -o
  redirkit batch input.txt output.txt --probe native`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, a, opts, args[0], args[1])
		},
	}
	cmd.Flags().StringVarP(&opts.shortener, "shortener", "s", "", "URL shortener domain")
	cmd.Flags().BoolVarP(&opts.obfuscate, "obfuscate", "o", false, "Apply obfuscation to the shortener reference")
	cmd.Flags().StringVar(&opts.backend, "probe", "", "Liveness backend: ffuf, native or none (default from config)")
	return cmd
}

func runBatch(cmd *cobra.Command, a *app, opts batchOptions, input, output string) error {
	p := a.printer
	banner.Print(p, banner.ModeBatch)

	backend := opts.backend
	if backend == "" {
		backend = a.cfg.Probe.Backend
	}
	prober, err := probe.New(backend, a.cfg.ProbeOptions(), a.log)
	if err != nil {
		return err
	}

	settings := console.BatchSettings{
		Input:     input,
		Output:    output,
		Shortener: opts.shortener,
		Obfuscate: opts.obfuscate,
		Backend:   backend,
	}

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("%w: %s", pipeline.ErrInputNotFound, input)
	}
	inputLines, err := lineio.Count(input, true)
	if err != nil {
		return err
	}
	p.BatchConfig(settings, inputLines)

	p.Section("Processing", "🚀")
	pl := pipeline.New(prober, pipeline.Options{
		Rewriter:   pipeline.Rewriter{Shortener: opts.shortener, Obfuscate: opts.obfuscate},
		ScratchDir: a.cfg.ScratchDir,
	}, a.log, p)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	st, err := pl.Run(ctx, input, output)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	p.BatchSummary(settings, st)
	p.Blank()
	p.Success("Processing complete!")
	p.Blank()
	return nil
}
