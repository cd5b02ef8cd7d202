package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/selimozcann/RedirectToolkit/internal/banner"
	"github.com/selimozcann/RedirectToolkit/internal/config"
	"github.com/selimozcann/RedirectToolkit/internal/console"
	"github.com/selimozcann/RedirectToolkit/internal/httpclient"
	"github.com/selimozcann/RedirectToolkit/internal/lineio"
	"github.com/selimozcann/RedirectToolkit/internal/logger"
	"github.com/selimozcann/RedirectToolkit/internal/model"
	"github.com/selimozcann/RedirectToolkit/internal/output"
	"github.com/selimozcann/RedirectToolkit/internal/probe"
	"github.com/selimozcann/RedirectToolkit/internal/runner"
	"github.com/selimozcann/RedirectToolkit/internal/trace"
)

type headerList []string

type options struct {
	url           string
	wordlist      string
	marker        string
	cookie        string
	headers       headerList
	proxy         string
	timeout       time.Duration
	retries       int
	threads       int
	rateLimit     int
	maxChain      int
	jsScan        bool
	insecure      bool
	allowInternal bool
	verbose       bool
	silent        bool
	noColor       bool
	outputCSV     string
	outputJSONL   string
	outputHTML    string
}

func main() {
	opts := parseFlags()
	p := console.New(os.Stdout, opts.noColor)
	if !opts.silent {
		banner.Print(p, banner.ModeProbe)
	}
	if err := run(opts, p); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.url, "u", "FUZZ", "Target URL (supports FUZZ)")
	flag.StringVar(&opts.wordlist, "w", "", "Wordlist of candidate redirectors (used when FUZZ is in URL)")
	flag.StringVar(&opts.marker, "mr", probe.DefaultMarker, "Regex the landing page body must match")
	flag.StringVar(&opts.cookie, "cookie", "", "Cookie header")
	flag.Var(&opts.headers, "H", "Extra HTTP header (repeatable)")
	flag.StringVar(&opts.proxy, "proxy", "", "HTTP(S) proxy URL")
	flag.DurationVar(&opts.timeout, "timeout", 2*time.Second, "Per-request timeout")
	flag.IntVar(&opts.retries, "retries", 0, "Retry count")
	flag.IntVar(&opts.threads, "t", 20, "Threads")
	flag.IntVar(&opts.rateLimit, "rl", 0, "Global rate limit (requests per second)")
	flag.IntVar(&opts.maxChain, "max-chain", 10, "Max redirect hops including JS/meta")
	flag.BoolVar(&opts.jsScan, "js-scan", false, "Follow JS/meta redirects")
	flag.BoolVar(&opts.insecure, "insecure", false, "Skip TLS verification")
	flag.BoolVar(&opts.allowInternal, "allow-internal", false, "Follow redirects to loopback and private hosts")
	flag.BoolVar(&opts.verbose, "v", false, "Enable verbose output")
	flag.BoolVar(&opts.silent, "silent", false, "Suppress banner and chain output")
	flag.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flag.StringVar(&opts.outputCSV, "o", "", "CSV output file (alive targets, batch-compatible)")
	flag.StringVar(&opts.outputJSONL, "jsonl", "", "JSONL output file (all targets)")
	flag.StringVar(&opts.outputHTML, "html", "", "HTML report output file")
	flag.Parse()
	return opts
}

func validate(opts options) error {
	if opts.url == "" {
		return errors.New("-u (target URL) is required")
	}
	if opts.threads <= 0 {
		return fmt.Errorf("-t must be greater than zero (got %d)", opts.threads)
	}
	if opts.retries < 0 {
		return fmt.Errorf("-retries must be >= 0 (got %d)", opts.retries)
	}
	if opts.rateLimit < 0 {
		return fmt.Errorf("-rl must be >= 0 (got %d)", opts.rateLimit)
	}
	if opts.timeout <= 0 {
		return fmt.Errorf("-timeout must be > 0 (got %s)", opts.timeout)
	}
	if opts.maxChain <= 0 {
		return fmt.Errorf("-max-chain must be > 0 (got %d)", opts.maxChain)
	}
	return nil
}

func run(opts options, p *console.Printer) error {
	if err := validate(opts); err != nil {
		return err
	}
	marker, err := regexp.Compile(opts.marker)
	if err != nil {
		return fmt.Errorf("invalid -mr regex: %w", err)
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logCfg := config.Default().Log
	logCfg.Level = level
	lg, err := logger.New(logCfg, opts.noColor)
	if err != nil {
		return err
	}
	defer lg.Close()
	log := lg.With().Str("component", "redirprobe").Logger()

	targets, payloads, err := buildTargets(opts.url, opts.wordlist)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return errors.New("no targets generated")
	}

	headerMap, err := toHeader(opts.headers)
	if err != nil {
		return err
	}
	if opts.cookie != "" {
		headerMap.Set("Cookie", opts.cookie)
	}

	var proxyFunc func(*http.Request) (*url.URL, error)
	if opts.proxy != "" {
		proxyURL, perr := url.Parse(opts.proxy)
		if perr != nil {
			return fmt.Errorf("invalid proxy URL: %w", perr)
		}
		proxyFunc = http.ProxyURL(proxyURL)
	}

	client := httpclient.New(httpclient.Config{
		Timeout:  opts.timeout,
		Proxy:    proxyFunc,
		Headers:  headerMap,
		Insecure: opts.insecure,
		Retries:  opts.retries,
	})
	tracer := trace.New(client, trace.Options{
		MaxChain:      opts.maxChain,
		ClientSide:    opts.jsScan,
		AllowInternal: opts.allowInternal,
		Marker:        marker,
	})
	runr := runner.New(runner.Config{Threads: opts.threads, RateLimit: opts.rateLimit}, tracer)

	log.Debug().
		Int("targets", len(targets)).
		Int("threads", opts.threads).
		Int("rate_limit", opts.rateLimit).
		Int("max_chain", opts.maxChain).
		Bool("js_scan", opts.jsScan).
		Msg("starting probe")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := runr.Run(ctx, targets)
	if len(results) != len(payloads) {
		return fmt.Errorf("internal error: results(%d) != payloads(%d)", len(results), len(payloads))
	}
	records := make([]output.Record, len(results))
	for i := range results {
		results[i].Payload = payloads[i]
		records[i] = output.BuildRecord(results[i])
	}
	summary := output.BuildSummary(results)

	if !opts.silent {
		printConsole(p, results, summary)
	}

	if opts.outputCSV != "" {
		if err := writeFile(opts.outputCSV, func(f *os.File) error {
			_, err := output.WriteCSV(f, results)
			return err
		}, log); err != nil {
			return err
		}
	}
	if opts.outputJSONL != "" {
		if err := writeFile(opts.outputJSONL, func(f *os.File) error {
			return output.WriteJSONL(f, records)
		}, log); err != nil {
			return err
		}
	}
	if opts.outputHTML != "" {
		page := output.PageData{
			Title:       "Redirector Probe Report",
			GeneratedAt: time.Now().UTC(),
			Params:      buildParamsMap(opts, len(targets)),
			Summary:     summary,
			Records:     records,
		}
		if err := writeFile(opts.outputHTML, func(f *os.File) error {
			return output.RenderHTML(f, page)
		}, log); err != nil {
			return err
		}
	}
	return nil
}

func buildTargets(urlStr, wordlist string) ([]string, []string, error) {
	hasFuzz := strings.Contains(urlStr, "FUZZ")
	switch {
	case hasFuzz && wordlist == "":
		return nil, nil, errors.New("URL contains FUZZ but no -w wordlist provided")
	case !hasFuzz && wordlist != "":
		return nil, nil, errors.New("-w supplied but target URL has no FUZZ placeholder")
	}

	if !hasFuzz {
		return []string{urlStr}, []string{""}, nil
	}

	words, err := loadWordlist(wordlist)
	if err != nil {
		return nil, nil, err
	}
	targets := make([]string, 0, len(words))
	payloads := make([]string, 0, len(words))
	for _, payload := range words {
		targets = append(targets, strings.Replace(urlStr, "FUZZ", payload, 1))
		payloads = append(payloads, payload)
	}
	if len(targets) == 0 {
		return nil, nil, fmt.Errorf("wordlist %q produced no payloads", wordlist)
	}
	return targets, payloads, nil
}

func loadWordlist(path string) ([]string, error) {
	var entries []string
	err := lineio.Each(path, func(line string) error {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("wordlist: %w", err)
	}
	return entries, nil
}

func toHeader(headers headerList) (http.Header, error) {
	hdr := make(http.Header)
	for _, h := range headers {
		key, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header %q (expected Key: Value)", h)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid header %q (empty key)", h)
		}
		hdr.Add(key, strings.TrimSpace(value))
	}
	return hdr, nil
}

func buildParamsMap(opts options, targetCount int) map[string]string {
	params := map[string]string{
		"target":            opts.url,
		"wordlist":          opts.wordlist,
		"marker":            opts.marker,
		"threads":           strconv.Itoa(opts.threads),
		"rate_limit":        strconv.Itoa(opts.rateLimit),
		"timeout":           opts.timeout.String(),
		"retries":           strconv.Itoa(opts.retries),
		"max_chain":         strconv.Itoa(opts.maxChain),
		"js_scan":           strconv.FormatBool(opts.jsScan),
		"insecure":          strconv.FormatBool(opts.insecure),
		"allow_internal":    strconv.FormatBool(opts.allowInternal),
		"targets_generated": strconv.Itoa(targetCount),
	}
	if opts.proxy != "" {
		params["proxy"] = opts.proxy
	}
	if len(opts.headers) > 0 {
		params["headers"] = strings.Join(opts.headers, "; ")
	}
	return params
}

func writeFile(path string, write func(*os.File) error, log zerolog.Logger) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("report written")
	return f.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func printConsole(p *console.Printer, results []model.Result, summary output.Summary) {
	for _, res := range results {
		p.Result(res)
	}
	p.Section("Summary", "✨")
	p.Stat("Targets", summary.TotalTargets, console.Cyan)
	p.Stat("Alive", summary.Alive, console.Green)
	p.Stat("Blocked", summary.Blocked, console.Yellow)
	p.Stat("Errors", summary.Errors, console.Magenta)
}

func (h *headerList) String() string {
	return strings.Join(*h, "; ")
}

func (h *headerList) Set(value string) error {
	*h = append(*h, value)
	return nil
}
