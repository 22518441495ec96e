package extractor

import (
	"strings"
	"testing"
)

func TestCleanWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already clean", "hello world", "hello world"},
		{"collapses spaces", "hello    world", "hello world"},
		{"strips tabs", "hello\tworld", "hello world"},
		{"strips carriage returns", "hello\r\nworld", "hello\nworld"},
		{"bare carriage return", "hello\rworld", "hello\nworld"},
		{"trims lines", "  hello  \n  world  ", "hello\nworld"},
		{"collapses blank lines", "a\n\n\n\nb", "a\n\nb"},
		{"trims leading blanks", "\n\n\na", "a"},
		{"trims trailing blanks", "a\n\n\n", "a"},
		{"non-breaking space", "hello  world", "hello world"},
		{"only whitespace", " \t \r\n \n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanWhitespace(tt.in); got != tt.want {
				t.Errorf("CleanWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanWhitespace_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"hello world",
		"  hello \t world \r\n\r\n\r\n next  paragraph  ",
		"a\n\n\nb\n\n\nc",
	}
	for _, in := range inputs {
		once := CleanWhitespace(in)
		twice := CleanWhitespace(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCleanWhitespace_Invariants(t *testing.T) {
	got := CleanWhitespace("a\t\tb  \r\n   c    d\n\n\n\ne")
	if strings.ContainsAny(got, "\t\r") {
		t.Errorf("output contains tab or CR: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("output contains a run of spaces: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("output contains a run of blank lines: %q", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"below one token floors to one", "ab", 1},
		{"ascii", strings.Repeat("a", 300), 100},
		{"runes not bytes", strings.Repeat("世", 30), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.in); got != tt.want {
				t.Errorf("EstimateTokens(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
