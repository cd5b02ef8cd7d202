// Package console renders the human-facing output of redirkit. Color is a
// property of each Printer, so tests and --no-color never touch global state.
package console

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

const (
	iconCheck   = "✓"
	iconCross   = "✗"
	iconArrow   = "→"
	iconBullet  = "•"
	iconWarning = "⚠️"
	iconInfo    = "ℹ️"

	ruleWidth = 70
	barWidth  = 30
)

// Tone selects the color of a value.
type Tone int

const (
	Plain Tone = iota
	Cyan
	Green
	Yellow
	Magenta
	Dim
)

var toneAttrs = map[Tone][]color.Attribute{
	Plain:   {color.FgHiWhite},
	Cyan:    {color.FgHiCyan},
	Green:   {color.FgHiGreen},
	Yellow:  {color.FgHiYellow},
	Magenta: {color.FgHiMagenta},
	Dim:     {color.FgHiBlack},
}

// Printer writes formatted lines to an io.Writer.
type Printer struct {
	out     io.Writer
	noColor bool
}

// New returns a Printer writing to out. With noColor set no escape
// sequences are emitted.
func New(out io.Writer, noColor bool) *Printer {
	return &Printer{out: out, noColor: noColor}
}

// NoColor reports whether color output is disabled.
func (p *Printer) NoColor() bool { return p.noColor }

func (p *Printer) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.noColor {
		c.DisableColor()
	}
	return c
}

func (p *Printer) tone(t Tone, bold bool) *color.Color {
	attrs := append([]color.Attribute(nil), toneAttrs[t]...)
	if bold {
		attrs = append(attrs, color.Bold)
	}
	return p.color(attrs...)
}

func (p *Printer) println(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}

// Blank writes an empty line.
func (p *Printer) Blank() { p.println("") }

// Section prints a titled horizontal rule.
func (p *Printer) Section(title, icon string) {
	line := strings.Repeat("─", ruleWidth)
	p.Blank()
	p.println(p.color(color.FgHiBlue, color.Bold).Sprint(line))
	p.println(p.tone(Plain, true).Sprint(icon + " " + title))
	p.println(p.color(color.FgHiBlue).Sprint(line))
	p.Blank()
}

// Heading prints a bold label such as "Results:".
func (p *Printer) Heading(label string) {
	p.println(p.tone(Plain, true).Sprint(label))
}

// Step prints "[n/total] description" and a progress bar.
func (p *Printer) Step(n, total int, description string) {
	pct := 0
	if total > 0 {
		pct = n * 100 / total
	}
	filled := pct * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	p.println(p.tone(Cyan, true).Sprintf("[%d/%d]", n, total) + " " + p.tone(Plain, false).Sprint(description))
	p.println("     " + p.color(color.FgHiBlue).Sprintf("[%s]", bar) + " " + p.tone(Yellow, false).Sprintf("%d%%", pct))
}

// Stat prints "  → label: value".
func (p *Printer) Stat(label string, value any, t Tone) {
	p.println("  " + p.tone(Dim, false).Sprint(iconArrow) + " " +
		p.color(color.FgWhite).Sprint(label+":") + " " +
		p.tone(t, true).Sprint(value))
}

// Bullet prints an indented "• key = value" line.
func (p *Printer) Bullet(key, value string) {
	p.println("    " + p.tone(Dim, false).Sprint(iconBullet) + " " +
		p.color(color.FgWhite).Sprint(key) + " = " + p.tone(Yellow, false).Sprint(value))
}

// Note prints a dimmed informational line under a stat.
func (p *Printer) Note(msg string) {
	p.println("    " + p.tone(Dim, false).Sprint(iconInfo+" "+msg))
}

func (p *Printer) Success(msg string) {
	p.println(p.tone(Green, true).Sprint(iconCheck + " " + msg))
}

func (p *Printer) Error(msg string) {
	p.println(p.color(color.FgHiRed, color.Bold).Sprint(iconCross + " " + msg))
}

func (p *Printer) Warning(msg string) {
	p.println(p.tone(Yellow, true).Sprint(iconWarning + " " + msg))
}

func (p *Printer) Info(msg string) {
	p.println(p.tone(Cyan, false).Sprint(iconInfo + " " + msg))
}

// AnalysisItem prints a check or cross followed by label.
func (p *Printer) AnalysisItem(label string, ok bool) {
	icon := p.tone(Green, false).Sprint(iconCheck)
	if !ok {
		icon = p.color(color.FgHiRed).Sprint(iconCross)
	}
	p.println("  " + icon + " " + p.color(color.FgWhite).Sprint(label))
}

// Box frames content, one line per newline, at most 70 columns wide. Longer
// lines overflow the right border rather than being cut.
func (p *Printer) Box(content string, t Tone, title string) {
	lines := strings.Split(content, "\n")
	maxWidth := 0
	for _, l := range lines {
		maxWidth = max(maxWidth, utf8.RuneCountInString(l))
	}
	width := min(maxWidth+4, ruleWidth)
	border := p.tone(t, false)
	rule := strings.Repeat("─", width-2)

	p.Blank()
	p.println(border.Sprint("┌" + rule + "┐"))
	if title != "" {
		pad := max(0, width-utf8.RuneCountInString(title)-3)
		p.println(border.Sprint("│") + " " + p.color(color.Bold).Sprint(title) + strings.Repeat(" ", pad) + border.Sprint("│"))
		p.println(border.Sprint("├" + rule + "┤"))
	}
	for _, l := range lines {
		pad := max(0, width-utf8.RuneCountInString(l)-3)
		p.println(border.Sprint("│") + " " + l + strings.Repeat(" ", pad) + border.Sprint("│"))
	}
	p.println(border.Sprint("└" + rule + "┘"))
	p.Blank()
}

// Block prints preformatted multi-line text in a single tone.
func (p *Printer) Block(text string, t Tone) {
	c := p.tone(t, true)
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		p.println(c.Sprint(l))
	}
}
