package console

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"

	"github.com/selimozcann/RedirectToolkit/internal/model"
)

func statusAttr(status int) color.Attribute {
	switch {
	case status == http.StatusFound:
		return color.FgGreen
	case status >= 400:
		return color.FgRed
	default:
		return color.FgYellow
	}
}

// Status returns a colorized status code; 0 renders as a gray dash.
func (p *Printer) Status(status int) string {
	if status == 0 {
		return p.tone(Dim, false).Sprint("—")
	}
	return p.color(statusAttr(status)).Sprint(status)
}

// Result prints a traced chain, one hop per line, followed by its verdict.
func (p *Printer) Result(r model.Result) {
	p.println(fmt.Sprintf("[+] %s", r.Target))
	for _, h := range r.Chain {
		p.println(fmt.Sprintf("  [%d] %s %s via %s (%d ms)", h.Index, h.URL, p.Status(h.Status), h.Via, h.TimeMs))
	}
	switch {
	case r.Error != "":
		p.println("  " + p.color(color.FgRed).Sprintf("[!] Error: %s", r.Error))
	case r.Blocked != "":
		p.println("  " + p.color(color.FgYellow).Sprintf("[!] Stopped before internal host %s", r.Blocked))
	case r.Alive:
		p.println("  " + p.color(color.FgGreen).Sprintf("✔ Alive: %s", r.FinalURL()))
	default:
		p.println("  " + p.tone(Dim, false).Sprint("✘ Marker not found"))
	}
}
