// Package obfuscate disguises the destination of a link: the host's dots are
// double percent-encoded and a zero-padded port is appended, producing a
// protocol-relative URL.
package obfuscate

import "strings"

const (
	encodedDot = "%252e"
	fakePort   = ":00443"
)

// Obfuscate rewrites "host/path" (with or without leading slashes) into
// "//host%252e...:00443/path". It is a pure function of its input; feeding
// already obfuscated output back in encodes it twice.
func Obfuscate(raw string) string {
	raw = strings.TrimLeft(raw, "/")

	domain, path := raw, ""
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		domain, path = raw[:i], raw[i:]
	}

	return "//" + strings.ReplaceAll(domain, ".", encodedDot) + fakePort + path
}
