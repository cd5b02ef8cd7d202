package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/selimozcann/RedirectToolkit/internal/config"
	"github.com/selimozcann/RedirectToolkit/internal/console"
	"github.com/selimozcann/RedirectToolkit/internal/logger"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	noColor    bool
	logLevel   string
	logFile    string

	out     io.Writer
	cfg     *config.Config
	log     zerolog.Logger
	closer  func() error
	printer *console.Printer
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.GetConfigPath(a.configPath))
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	lg, err := logger.New(cfg.Log, a.noColor)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = lg.Logger
	a.closer = lg.Close
	a.printer = console.New(a.out, a.noColor)
	return nil
}

// close releases the log file. It is safe to call more than once.
func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	closer := a.closer
	a.closer = nil
	return closer()
}

// newRoot builds the redirkit command tree writing to out.
func newRoot(out io.Writer) (*cobra.Command, *app) {
	a := &app{out: out}
	root := &cobra.Command{
		Use:   "redirkit",
		Short: "Turn open-redirect lists into reusable link templates",
		Long: `redirkit processes lists of open-redirector URLs into templates and
composes single links through a redirector, an optional shortener and a target.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default: $"+config.EnvConfigPath+" or ./"+config.DefaultFileName+")")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.logFile, "log-file", "", "Also write logs to this file")

	root.AddCommand(newBatchCommand(a), newGenerateCommand(a))
	return root, a
}

// run executes root and closes the log file whether or not it failed.
func run(root *cobra.Command, a *app) error {
	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

// Execute runs the root command and exits 1 on failure.
func Execute() {
	root, a := newRoot(os.Stdout)
	if err := run(root, a); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(1)
	}
}
