package console

import (
	"fmt"

	"github.com/selimozcann/RedirectToolkit/internal/pipeline"
)

var stageText = map[string]struct{ step, stat string }{
	pipeline.StageExtract:    {"Extracting URLs with redirect parameters", "URLs with redirect params"},
	pipeline.StageNeutralize: {"Replacing redirect targets with example.com", "URLs prepared"},
	pipeline.StageValidate:   {"Checking for alive redirectors", "Working redirectors"},
	pipeline.StageNormalize:  {"Extracting and sorting unique URLs", "Unique URLs"},
	pipeline.StageCollapse:   {"Removing duplicate domains and applying templates", "Final unique redirectors"},
}

// StageStarted prints the progress line for a batch stage.
func (p *Printer) StageStarted(step int, name string) {
	p.Step(step, pipeline.StageCount, stageText[name].step)
}

// StageFinished prints the count a batch stage produced.
func (p *Printer) StageFinished(_ int, name string, count int) {
	t := Cyan
	if name == pipeline.StageCollapse {
		t = Green
	}
	p.Stat(stageText[name].stat, count, t)
}

// Warn prints a non-fatal batch warning.
func (p *Printer) Warn(msg string) { p.Warning(msg) }

// BatchSettings is what the batch command echoes before and after a run.
type BatchSettings struct {
	Input     string
	Output    string
	Shortener string
	Obfuscate bool
	Backend   string
}

func enabled(on bool) (string, Tone) {
	if on {
		return "Enabled", Yellow
	}
	return "Disabled", Dim
}

// BatchConfig prints the configuration section of a batch run.
func (p *Printer) BatchConfig(s BatchSettings, inputLines int) {
	p.Section("Configuration", "⚙")
	p.Stat("Input file", s.Input, Cyan)
	p.Stat("Output file", s.Output, Cyan)
	if s.Shortener != "" {
		p.Stat("Shortener", s.Shortener, Yellow)
	}
	label, t := enabled(s.Obfuscate)
	p.Stat("Obfuscation", label, t)
	if s.Backend != "" {
		p.Stat("Probe backend", s.Backend, Cyan)
	}
	p.Stat("Input URLs", inputLines, Cyan)
}

// BatchSummary prints the closing summary of a batch run.
func (p *Printer) BatchSummary(s BatchSettings, st pipeline.Stats) {
	p.Section("Processing Summary", "✨")

	p.Heading("Results:")
	p.Stat("Input URLs", st.Input, Cyan)
	p.Stat("Extracted", st.Extracted, Cyan)
	if st.ProbeAvailable {
		p.Stat("Validated", st.Validated, Cyan)
	} else {
		p.Stat("Validated", "N/A", Dim)
	}
	p.Stat("Final Output", st.Output, Green)

	if s.Shortener != "" {
		p.Blank()
		p.Heading("Enhancements:")
		p.Stat("Shortener", s.Shortener, Yellow)
		label, t := enabled(s.Obfuscate)
		p.Stat("Obfuscation", label, t)
	}

	p.Blank()
	p.Heading("Output:")
	p.Stat("File", s.Output, Cyan)
	p.Stat("Duration", fmt.Sprintf("%.2fs", st.Duration.Seconds()), Magenta)
}
