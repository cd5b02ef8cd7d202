package cmd

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/selimozcann/RedirectToolkit/internal/banner"
	"github.com/selimozcann/RedirectToolkit/internal/compose"
	"github.com/selimozcann/RedirectToolkit/internal/console"
	"github.com/selimozcann/RedirectToolkit/internal/output"
	"github.com/selimozcann/RedirectToolkit/internal/placeholder"
)

type generateOptions struct {
	redirector  string
	target      string
	shortener   string
	params      []string
	obfuscate   bool
	html        bool
	displayText string
}

func newGenerateCommand(a *app) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single link through a redirector",
		Example: `  redirkit generate -r "https://tags.example.net/site/35702?redir={{url}}" -t "https://mywebsite.com/offer"
  redirkit generate -r REDIRECTOR -t TARGET -s tinyurl.com/abc123 \
      -p email=john@example.com -p campaign=spring -o --html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(a, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.redirector, "redirector", "r", "", "Redirector URL with "+placeholder.URL+" placeholder")
	f.StringVarP(&opts.target, "target", "t", "", "Target URL (your actual destination link)")
	f.StringVarP(&opts.shortener, "shortener", "s", "", "URL shortener address")
	f.StringArrayVarP(&opts.params, "params", "p", nil, "Parameters appended to the target (key=value, repeatable)")
	f.BoolVarP(&opts.obfuscate, "obfuscate", "o", false, "Apply obfuscation")
	f.BoolVar(&opts.html, "html", false, "Generate HTML anchor tag")
	f.StringVarP(&opts.displayText, "display-text", "d", "", "Custom display text for HTML")
	_ = cmd.MarkFlagRequired("redirector")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func yesNo(on bool, yes, no string) (string, console.Tone) {
	if on {
		return yes, console.Green
	}
	return no, console.Dim
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func runGenerate(a *app, opts generateOptions) error {
	start := time.Now()
	p := a.printer
	banner.Print(p, banner.ModeGenerate)

	params := compose.ParseParams(opts.params)
	req := compose.Request{
		Redirector: opts.redirector,
		Target:     opts.target,
		Params:     params,
		Shortener:  opts.shortener,
		Obfuscate:  opts.obfuscate,
	}
	if !strings.Contains(req.Redirector, placeholder.URL) {
		a.log.Warn().Str("redirector", req.Redirector).Msg("redirector has no " + placeholder.URL + " placeholder; it is returned unchanged")
	}

	p.Section("Configuration", "⚙")
	p.Stat("Redirector", truncate(opts.redirector, 50), console.Cyan)
	p.Stat("Target URL", opts.target, console.Green)
	if opts.shortener != "" {
		p.Stat("Shortener", opts.shortener, console.Yellow)
		p.Note("Shortener should point to: " + compose.WithParams(opts.target, params))
	}
	if len(params) > 0 {
		p.Stat("Parameters", len(params), console.Magenta)
		for _, kv := range params {
			p.Bullet(kv.Key, kv.Value)
		}
	}
	label, tone := yesNo(opts.obfuscate, "ENABLED", "DISABLED")
	p.Stat("Obfuscation", label, tone)
	label, tone = yesNo(opts.html, "Yes", "No")
	p.Stat("HTML Output", label, tone)

	p.Section("Generating Link", "🚀")
	link := compose.Compose(req)

	if len(params) > 0 {
		p.Section("Final Target URL", "🎯")
		p.Box(link.TargetWithParams, console.Green, "")
	}
	p.Section("Generated Redirector URL", "✨")
	p.Box(link.URL, console.Cyan, "")

	if opts.html {
		p.Section("HTML Anchor Tag", "📦")
		p.Box(output.Anchor(link.URL, opts.displayText), console.Magenta, "")
	}

	p.Section("Analysis", "🛡️")
	p.Heading("URL Chain:")
	for _, hop := range compose.Chain(req) {
		switch hop.Role {
		case compose.RoleRedirector:
			p.AnalysisItem(fmt.Sprintf("User clicks: Redirector URL (%s)", hop.Domain), true)
		case compose.RoleShortener:
			p.AnalysisItem(fmt.Sprintf("Redirects to: Shortener (%s)", opts.shortener), true)
		case compose.RoleTarget:
			if opts.shortener != "" {
				p.AnalysisItem("Shortener redirects to: "+opts.target, true)
			} else {
				p.AnalysisItem("Redirects directly to: "+opts.target, true)
			}
		}
	}
	if len(params) > 0 {
		p.AnalysisItem(fmt.Sprintf("With parameters: %d parameter(s)", len(params)), true)
	}

	if opts.obfuscate {
		p.Blank()
		p.Heading("Obfuscation Applied:")
		p.AnalysisItem("Protocol removed (using //)", true)
		p.AnalysisItem("Domain dots encoded (%252e)", true)
		p.AnalysisItem("Port with leading zeros (:00443)", true)
	}

	p.Blank()
	p.Heading("Summary:")
	p.Stat("Final URL Length", utf8.RuneCountInString(link.URL), console.Cyan)
	if len(params) > 0 {
		p.Stat("Target URL Length", utf8.RuneCountInString(link.TargetWithParams), console.Cyan)
	}
	p.Stat("Generation Time", fmt.Sprintf("%.3fs", time.Since(start).Seconds()), console.Magenta)

	p.Blank()
	p.Success("Link generated successfully!")
	p.Blank()
	return nil
}
