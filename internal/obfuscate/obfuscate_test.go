package obfuscate

import "testing"

func TestObfuscate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"host and path", "evil.example.com/path?x=1", "//evil%252eexample%252ecom:00443/path?x=1"},
		{"host only", "plain.com", "//plain%252ecom:00443"},
		{"protocol relative", "//tinyurl.com/{{short_code}}?{{params}}", "//tinyurl%252ecom:00443/{{short_code}}?{{params}}"},
		{"dots in path kept", "a.b/c.d", "//a%252eb:00443/c.d"},
		{"empty", "", "//:00443"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Obfuscate(tt.in); got != tt.want {
				t.Fatalf("Obfuscate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestObfuscateIsDeterministic(t *testing.T) {
	in := "sub.domain.test/a/b"
	if Obfuscate(in) != Obfuscate(in) {
		t.Fatal("expected identical output for identical input")
	}
}
