package main

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/selimozcann/RedirectToolkit/internal/console"
)

func writeWordlist(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildTargets(t *testing.T) {
	t.Parallel()
	words := writeWordlist(t, "https://a.test/?u=x", "", "  https://b.test/?u=y  ")

	tests := []struct {
		name     string
		url      string
		wordlist string
		want     []string
		wantErr  bool
	}{
		{name: "single", url: "https://a.test/", want: []string{"https://a.test/"}},
		{name: "fuzz", url: "FUZZ", wordlist: words, want: []string{"https://a.test/?u=x", "https://b.test/?u=y"}},
		{name: "fuzzPrefix", url: "https://proxy.test/?to=FUZZ", wordlist: words, want: []string{"https://proxy.test/?to=https://a.test/?u=x", "https://proxy.test/?to=https://b.test/?u=y"}},
		{name: "fuzzWithoutWordlist", url: "FUZZ", wantErr: true},
		{name: "wordlistWithoutFuzz", url: "https://a.test/", wordlist: words, wantErr: true},
		{name: "missingWordlist", url: "FUZZ", wordlist: filepath.Join(t.TempDir(), "nope"), wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, payloads, err := buildTargets(tt.url, tt.wordlist)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Fatalf("targets = %v, want %v", got, tt.want)
			}
			if len(payloads) != len(got) {
				t.Fatalf("payloads = %d, targets = %d", len(payloads), len(got))
			}
		})
	}
}

func TestToHeader(t *testing.T) {
	t.Parallel()
	hdr, err := toHeader(headerList{"X-Test: 1", "Accept:text/html"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hdr.Get("X-Test") != "1" || hdr.Get("Accept") != "text/html" {
		t.Fatalf("unexpected headers: %v", hdr)
	}
	if _, err := toHeader(headerList{"broken"}); err == nil {
		t.Fatal("expected error for header without colon")
	}
	if _, err := toHeader(headerList{": value"}); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	base := options{url: "FUZZ", threads: 1, timeout: time.Second, maxChain: 1}
	if err := validate(base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []func(*options){
		func(o *options) { o.url = "" },
		func(o *options) { o.threads = 0 },
		func(o *options) { o.retries = -1 },
		func(o *options) { o.rateLimit = -1 },
		func(o *options) { o.timeout = 0 },
		func(o *options) { o.maxChain = 0 },
	}
	for i, mutate := range bad {
		o := base
		mutate(&o)
		if err := validate(o); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestRunWritesBatchCompatibleCSV(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/redir", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Query().Get("u"), http.StatusFound)
	})
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<title>Example Domain</title>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	alive := srv.URL + "/redir?u=/landing"
	opts := options{
		url:           "FUZZ",
		wordlist:      writeWordlist(t, alive, srv.URL+"/missing"),
		marker:        "Example Domain",
		timeout:       5 * time.Second,
		threads:       2,
		maxChain:      5,
		allowInternal: true,
		outputCSV:     filepath.Join(dir, "out", "alive.csv"),
		outputJSONL:   filepath.Join(dir, "all.jsonl"),
		outputHTML:    filepath.Join(dir, "report.html"),
	}

	var buf bytes.Buffer
	if err := run(opts, console.New(&buf, true)); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(opts.outputCSV)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][1] != alive {
		t.Fatalf("unexpected CSV rows: %v", rows)
	}

	jsonl, err := os.ReadFile(opts.outputJSONL)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(jsonl), "\n"); n != 2 {
		t.Fatalf("expected 2 JSONL records, got %d", n)
	}
	if _, err := os.Stat(opts.outputHTML); err != nil {
		t.Fatalf("html report missing: %v", err)
	}
	if !strings.Contains(buf.String(), "Alive: 1") {
		t.Fatalf("summary missing from console output:\n%s", buf.String())
	}
}
