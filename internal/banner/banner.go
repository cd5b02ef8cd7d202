package banner

import (
	"strings"

	"github.com/common-nighthawk/go-figure"

	"github.com/selimozcann/RedirectToolkit/internal/console"
)

// Mode selects the subtitle printed under the logo.
type Mode string

const (
	ModeMain     Mode = "main"
	ModeBatch    Mode = "batch"
	ModeGenerate Mode = "generate"
	ModeProbe    Mode = "probe"
)

var subtitles = map[Mode][2]string{
	ModeMain:     {"REDIRECTOR TOOLKIT", "Your Complete URL Processing Solution"},
	ModeBatch:    {"BATCH PROCESSOR", "Process Large Lists of Redirector URLs"},
	ModeGenerate: {"LINK GENERATOR", "Create Obfuscated Links with Ease"},
	ModeProbe:    {"REDIRECTOR PROBE", "Find Live Open Redirectors"},
}

// Text returns the banner for mode without color.
func Text(mode Mode) string {
	sub, ok := subtitles[mode]
	if !ok {
		sub = subtitles[ModeMain]
	}
	logo := figure.NewFigure("REDIRKIT", "doom", true).String()
	rule := strings.Repeat("═", 48)
	return strings.Join([]string{strings.TrimRight(logo, "\n"), rule, "    " + sub[0] + " | " + sub[1], rule}, "\n")
}

// Print writes the banner for mode through p.
func Print(p *console.Printer, mode Mode) {
	lines := strings.Split(Text(mode), "\n")
	p.Block(strings.Join(lines[:len(lines)-3], "\n"), console.Cyan)
	p.Block(lines[len(lines)-3], console.Cyan)
	p.Block(lines[len(lines)-2], console.Green)
	p.Block(lines[len(lines)-1], console.Cyan)
}
