package output

import (
	"bufio"
	"encoding/json"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/selimozcann/RedirectToolkit/internal/model"
	"github.com/selimozcann/RedirectToolkit/internal/util"
)

// ResultType enumerates the classification of a probed candidate.
type ResultType string

const (
	ResultTypeAlive   ResultType = "alive"
	ResultTypeDead    ResultType = "dead"
	ResultTypeBlocked ResultType = "blocked"
	ResultTypeError   ResultType = "error"
)

// Record represents one line in the JSONL report.
type Record struct {
	Timestamp     string     `json:"timestamp"`
	Position      int        `json:"position"`
	InputURL      string     `json:"input_url"`
	Payload       string     `json:"payload,omitempty"`
	FinalURL      string     `json:"final_url"`
	Type          ResultType `json:"type"`
	CrossDomain   bool       `json:"cross_domain"`
	RedirectChain []string   `json:"redirect_chain"`
	StatusCode    int        `json:"status_code"`
	RespLen       int64      `json:"resp_len"`
	DurationMs    int64      `json:"duration_ms"`
	Blocked       string     `json:"blocked,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// Summary contains counters for the report header.
type Summary struct {
	TotalTargets int
	Alive        int
	Blocked      int
	Errors       int
}

// PageData provides the full context for the HTML report.
type PageData struct {
	Title         string
	GeneratedAt   time.Time
	Params        map[string]string
	OrderedParams []Param
	Summary       Summary
	Records       []Record
}

// Param represents a rendered CLI argument/value pair.
type Param struct {
	Key   string
	Value string
}

// BuildRecord converts a model.Result into a Record for JSONL output.
func BuildRecord(res model.Result) Record {
	last := res.Last()
	chain := make([]string, len(res.Chain))
	for i, hop := range res.Chain {
		chain[i] = hop.URL
	}
	final := res.FinalURL()
	return Record{
		Timestamp:     res.StartedAt.UTC().Format(time.RFC3339),
		Position:      res.Position,
		InputURL:      res.Target,
		Payload:       res.Payload,
		FinalURL:      final,
		Type:          DetermineType(res),
		CrossDomain:   util.RegistrableDomain(res.Target) != util.RegistrableDomain(final),
		RedirectChain: chain,
		StatusCode:    last.Status,
		RespLen:       last.Size,
		DurationMs:    res.DurationMs,
		Blocked:       res.Blocked,
		Error:         res.Error,
	}
}

// DetermineType classifies the given result into one of the ResultType values.
func DetermineType(res model.Result) ResultType {
	switch {
	case res.Error != "":
		return ResultTypeError
	case res.Blocked != "":
		return ResultTypeBlocked
	case res.Alive:
		return ResultTypeAlive
	default:
		return ResultTypeDead
	}
}

// BuildSummary derives high level counters from the results.
func BuildSummary(results []model.Result) Summary {
	sum := Summary{TotalTargets: len(results)}
	for _, res := range results {
		switch DetermineType(res) {
		case ResultTypeAlive:
			sum.Alive++
		case ResultTypeBlocked:
			sum.Blocked++
		case ResultTypeError:
			sum.Errors++
		}
	}
	return sum
}

// WriteJSONL writes each record as a JSON line to w.
func WriteJSONL(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin:24px; color:#111827; }
.table { width:100%; border-collapse:collapse; font-size:14px; }
.table th, .table td { border-bottom:1px solid #e5e7eb; padding:6px 8px; text-align:left; }
.alive { color:#15803d; font-weight:bold; }
.meta { color:#6b7280; font-size:12px; }
.url { font-family: ui-monospace, Menlo, Consolas, monospace; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated at {{.GeneratedAt.UTC.Format "2006-01-02T15:04:05Z07:00"}}</p>
<h2>Summary</h2>
<p>{{.Summary.TotalTargets}} targets, {{.Summary.Alive}} alive, {{.Summary.Blocked}} blocked, {{.Summary.Errors}} errors</p>
<h2>Parameters</h2>
<dl>
{{- range .OrderedParams }}
  <dt>{{.Key}}</dt>
  <dd><span class="url">{{.Value}}</span></dd>
{{- end }}
</dl>
<h2>Results</h2>
<table class="table">
  <thead><tr><th>#</th><th>Input</th><th>Final</th><th>Status</th><th>Result</th><th>Hops</th></tr></thead>
  <tbody>
  {{- range .Records }}
    <tr>
      <td>{{.Position}}</td>
      <td class="url">{{.InputURL}}</td>
      <td class="url">{{.FinalURL}}</td>
      <td>{{.StatusCode}}</td>
      <td{{if eq .Type "alive"}} class="alive"{{end}}>{{.Type}}{{if .Error}} <span class="meta">{{.Error}}</span>{{end}}</td>
      <td>{{len .RedirectChain}}</td>
    </tr>
  {{- end }}
  </tbody>
</table>
</body>
</html>
`))

// RenderHTML renders the HTML report using the provided data.
func RenderHTML(w io.Writer, data PageData) error {
	if data.Params != nil {
		keys := make([]string, 0, len(data.Params))
		for k := range data.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ordered := make([]Param, 0, len(keys))
		for _, k := range keys {
			ordered = append(ordered, Param{Key: k, Value: data.Params[k]})
		}
		data.OrderedParams = ordered
	}
	return htmlTemplate.Execute(w, data)
}
