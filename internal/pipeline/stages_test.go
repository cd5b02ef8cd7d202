package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func outPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "out.txt")
}

func TestExtract(t *testing.T) {
	in := writeFile(t, strings.Join([]string{
		"https://a.test/r?u=https://x.test",
		"https://b.test/plain",
		"",
		"17| https://c.test/go?next=http://y.test ",
		"18|https://d.test/none",
		"https://e.test/?u=HTTP://upper.test",
	}, "\n"))
	out := outPath(t)

	n, err := Extract(in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "https://a.test/r?u=https://x.test\nhttps://c.test/go?next=http://y.test\n", readFile(t, out))
}

func TestExtractSkipsInvalidUTF8(t *testing.T) {
	in := writeFile(t, "https://a.test/?u=\xffhttps://x.test\n")
	out := outPath(t)

	n, err := Extract(in, out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "https://a.test/?u=https://x.test\n", readFile(t, out))
}

func TestExtractLongLine(t *testing.T) {
	long := "https://big.test/?u=https://x.test&pad=" + strings.Repeat("a", 1100*1024)
	in := writeFile(t, "https://a.test/r?u=https://x.test\n"+long+"\nhttps://c.test/?n=http://y.test\n")
	out := outPath(t)

	n, err := Extract(in, out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	lines := strings.Split(strings.TrimSuffix(readFile(t, out), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, long, lines[1])
	assert.Equal(t, "https://c.test/?n=http://y.test", lines[2])
}

func TestExtractMissingInput(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing"), outPath(t))
	assert.Error(t, err)
}

func TestNeutralize(t *testing.T) {
	in := writeFile(t, "https://a.test/?u=https://evil.test/x&v=http://other.test\nhttps://b.test/nothing\n")
	out := outPath(t)

	n, err := Neutralize(in, out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t,
		"https://a.test/?u=https://example.com%23evil.test/x&v=https://example.com%23other.test\nhttps://b.test/nothing\n",
		readFile(t, out))
}

func TestNeutralizeIsIdempotent(t *testing.T) {
	in := writeFile(t, "https://a.test/?u=https://evil.test&w=http://x.test\n")
	once, twice := outPath(t), outPath(t)

	_, err := Neutralize(in, once)
	require.NoError(t, err)
	n, err := Neutralize(once, twice)
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.Equal(t, readFile(t, once), readFile(t, twice))
}

func TestNormalizeCSV(t *testing.T) {
	in := writeFile(t, strings.Join([]string{
		"FUZZ,url,redirectlocation,position,status_code",
		"x,https://b.test/?u=1,,2,200",
		`y," https://a.test/?u=1 ",,1,200`,
		"z,https://b.test/?u=1,,3,200",
		"broken",
		"",
	}, "\n"))
	out := outPath(t)

	n, err := Normalize(in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "https://a.test/?u=1\nhttps://b.test/?u=1\n", readFile(t, out))
}

func TestNormalizeCSVStrayQuotes(t *testing.T) {
	in := writeFile(t, strings.Join([]string{
		"FUZZ,url,redirectlocation,position,status_code",
		`w,"https://c.test/?a=1,b",,4,200`,
		`v,https://d.test/?a=1",,5,200`,
	}, "\n"))
	out := outPath(t)

	n, err := Normalize(in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "https://c.test/?a=1\nhttps://d.test/?a=1\n", readFile(t, out))
}

func TestNormalizePlain(t *testing.T) {
	in := writeFile(t, "https://c.test/\n  https://a.test/  \n\nhttps://c.test/\n")
	out := outPath(t)

	n, err := Normalize(in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "https://a.test/\nhttps://c.test/\n", readFile(t, out))
}

func TestNormalizeRoundTrip(t *testing.T) {
	in := writeFile(t, "https://z.test/\nhttps://m.test/\nhttps://z.test/\n")
	first, second := outPath(t), outPath(t)

	_, err := Normalize(in, first)
	require.NoError(t, err)
	_, err = Normalize(first, second)
	require.NoError(t, err)
	assert.Equal(t, readFile(t, first), readFile(t, second))
}

func TestNormalizeEmpty(t *testing.T) {
	out := outPath(t)
	n, err := Normalize(writeFile(t, ""), out)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, readFile(t, out))
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "adjacent prefix duplicate",
			input: "http://a.com/path/x?id=1\nhttp://a.com/path/x?id=2\nhttp://b.com/y\n",
			want:  "http://a.com/path/x?id=2\nhttp://b.com/y\n",
		},
		{
			name:  "single line",
			input: "https://only.test/?u=https://example.com%23\n",
			want:  "https://only.test/?u={{url}}\n",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "short next line",
			input: "abcdef\nabc\n",
			want:  "abc\n",
		},
		{
			name:  "short next line inside previous",
			input: "abcdef\nbcd\n",
			want:  "bcd\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			out := outPath(t)
			n, err := Collapse(writeFile(t, tt.input), out, Rewriter{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, readFile(t, out))
			assert.Equal(t, strings.Count(tt.want, "\n"), n)
		})
	}
}

func TestRewriter(t *testing.T) {
	line := "https://r.test/go?u=https://example.com%23evil.test/x&ref=1"
	tests := []struct {
		name string
		rw   Rewriter
		want string
	}{
		{"placeholder", Rewriter{}, "https://r.test/go?u={{url}}&ref=1"},
		{"obfuscate ignored without shortener", Rewriter{Obfuscate: true}, "https://r.test/go?u={{url}}&ref=1"},
		{"shortener", Rewriter{Shortener: "tinyurl.com"}, "https://r.test/go?u=//tinyurl.com/{{short_code}}?{{params}}&ref=1"},
		{"obfuscated shortener", Rewriter{Shortener: "tinyurl.com", Obfuscate: true}, "https://r.test/go?u=//tinyurl%252ecom:00443/{{short_code}}?{{params}}&ref=1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rw.Rewrite(line))
		})
	}
}

func TestRewriterFirstMatchOnly(t *testing.T) {
	line := "https://r.test/?a=https://example.com%23&b=https://example.com%23"
	assert.Equal(t, "https://r.test/?a={{url}}&b=https://example.com%23", Rewriter{}.Rewrite(line))
	assert.Equal(t, "https://r.test/plain", Rewriter{}.Rewrite("https://r.test/plain"))
}
