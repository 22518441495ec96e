package extractor

import (
	"strings"
	"unicode/utf8"
)

// CleanWhitespace normalizes extracted text: tab and carriage-return
// characters are stripped, runs of spaces collapse to a single space, runs
// of blank lines collapse to one, and both ends are trimmed.
//
// The routine is idempotent: applying it twice yields the same string as
// applying it once. The output contains no tab/CR characters and no run of
// two or more literal spaces.
func CleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		collapsed := strings.TrimSpace(collapseSpaces(line))
		if collapsed == "" {
			// Keep at most one consecutive blank line.
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, collapsed)
	}
	// Trim trailing blank line left by the loop.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// collapseSpaces reduces runs of horizontal whitespace to single spaces.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == ' ' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}

// EstimateTokens provides a fast token count estimate without importing a
// tokenizer.
//
// Heuristic: utf8 rune count / 3.
//
//   - English text averages ~4 chars/token, CJK text averages ~1.5 chars/token.
//   - Dividing by 3 is a reasonable middle-ground for mixed-language content.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	est := n / 3
	if est < 1 {
		return 1
	}
	return est
}
