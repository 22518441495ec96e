package synthesizer

import (
	"fmt"
	"strings"
)

// maxInputChars bounds the page text handed to the generator so prompts stay
// inside provider token limits. Truncation is silent: the synthesizer
// optimizes for best effort from what fits, not completeness.
const maxInputChars = 10000

// truncationMarker is appended when input text is cut.
const truncationMarker = "..."

// truncateText cuts text to maxInputChars runes, appending the marker when
// anything was dropped.
func truncateText(text string) string {
	runes := []rune(text)
	if len(runes) <= maxInputChars {
		return text
	}
	return string(runes[:maxInputChars]) + truncationMarker
}

// buildPrompt constructs the single generation instruction. The required
// count is stated twice — once as the instruction and once as a restated
// constraint at the end — because providers are observed to under- and
// over-generate when told only once.
func buildPrompt(text string, count int) string {
	var sb strings.Builder
	sb.WriteString("You are an expert content analyst who writes FAQ sections for websites.\n\n")
	fmt.Fprintf(&sb, "Read the page content below and produce exactly %d frequently asked questions with answers.\n\n", count)
	sb.WriteString("Requirements for every item:\n")
	sb.WriteString("- The question is concise and phrased the way a real visitor would ask it.\n")
	sb.WriteString("- The answer is grounded in the page content, specific rather than generic, and 2-4 sentences long.\n")
	sb.WriteString("- No two questions cover the same point.\n\n")
	sb.WriteString("Respond with JSON only, in exactly this shape, with no prose and no code fences:\n")
	sb.WriteString(`{"faqs": [{"question": "...", "answer": "..."}]}`)
	sb.WriteString("\n\nPage content:\n")
	sb.WriteString(text)
	fmt.Fprintf(&sb, "\n\nRemember: the faqs array must contain exactly %d items.", count)
	return sb.String()
}
