package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimozcann/RedirectToolkit/internal/config"
	"github.com/selimozcann/RedirectToolkit/internal/pipeline"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeApp(t, args...)
	return out, err
}

func executeApp(t *testing.T, args ...string) (string, *app, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	chdir(t, t.TempDir())

	var out bytes.Buffer
	root, a := newRoot(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := run(root, a)
	return out.String(), a, err
}

func TestGenerate(t *testing.T) {
	out, err := execute(t, "generate",
		"-r", "https://tags.bluekai.com/site/35702?redir={{url}}",
		"-t", "https://mywebsite.com/offer",
		"-p", "email=john@example.com", "-p", "campaign=spring",
		"-o", "--html")
	require.NoError(t, err)

	assert.Contains(t, out, "https://tags.bluekai.com/site/35702?redir=//mywebsite%252ecom:00443/offer?email=john@example.com&campaign=spring")
	assert.Contains(t, out, "https://mywebsite.com/offer?email=john@example.com&campaign=spring")
	assert.Contains(t, out, `<a href="https://tags.bluekai.com/site/35702?redir=//mywebsite%252ecom:00443/offer?email=john@example.com&amp;campaign=spring">`)
	assert.Contains(t, out, "Domain dots encoded (%252e)")
	assert.Contains(t, out, "Link generated successfully!")
}

func TestGenerateWithShortener(t *testing.T) {
	out, err := execute(t, "generate",
		"-r", "https://r.test/go?u={{url}}",
		"-t", "https://target.test/landing",
		"-s", "https://tinyurl.com/abc123")
	require.NoError(t, err)

	assert.Contains(t, out, "https://r.test/go?u=//tinyurl.com/abc123")
	assert.Contains(t, out, "Shortener should point to: https://target.test/landing")
	assert.Contains(t, out, "Shortener redirects to: https://target.test/landing")
}

func TestGenerateRequiresFlags(t *testing.T) {
	_, err := execute(t, "generate", "-t", "https://target.test")
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte(strings.Join([]string{
		"https://a.test/r?u=https://x.test",
		"https://b.test/plain",
		"7|https://c.test/go?next=http://y.test&ref=1",
	}, "\n")+"\n"), 0o644))

	console, err := execute(t, "batch", in, out, "--probe", "none", "-s", "tinyurl.com")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"https://a.test/r?u=//tinyurl.com/{{short_code}}?{{params}}\nhttps://c.test/go?next=//tinyurl.com/{{short_code}}?{{params}}&ref=1\n",
		string(data))
	assert.Contains(t, console, "Input URLs: 3")
	assert.Contains(t, console, "Validated: N/A")
	assert.Contains(t, console, "Processing complete!")
}

func TestBatchMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "batch", filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.txt"), "--probe", "none")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipeline.ErrInputNotFound))
}

func TestBatchFailureReportedOnceAndLogClosed(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("https://r.test/go?u=https://x.test\n"), 0o644))
	logFile := filepath.Join(dir, "redirkit.log")

	console, a, err := executeApp(t, "--log-file", logFile,
		"batch", in, filepath.Join(dir, "missing-dir", "out.txt"), "--probe", "none")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "processing failed")
	assert.NotContains(t, console, "Processing failed")
	assert.NotContains(t, console, "✗")
	assert.Nil(t, a.closer)
}

func TestBatchUnknownProbe(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, nil, 0o644))
	_, err := execute(t, "batch", in, filepath.Join(dir, "out.txt"), "--probe", "curl")
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "generate", "-r", "{{url}}", "-t", "https://a.test")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
