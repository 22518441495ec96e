package synthesizer

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/faqforge/faqforge/models"
)

// rawFAQ is the decode target for a single generated item.
type rawFAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// decodeStrategy attempts one way of recovering the item array from
// generator text. Strategies are tried in order; each is independently
// testable. ok reports whether the strategy could decode at all (a decoded
// empty array still counts as success).
type decodeStrategy func(s string) (items []rawFAQ, ok bool)

var decodeStrategies = []decodeStrategy{
	decodeArray,
	decodeWrappedObject,
	decodeBracketedSubstring,
}

// parseFAQs turns raw generator output into validated question/answer pairs.
//
// The pipeline: strip markdown code fences, then try each decode strategy in
// sequence. Structural validation rejects the whole call — no partial
// acceptance — when any item lacks a non-empty question or answer. A
// ParseError carries the offending fragment's length, never its content.
func parseFAQs(raw string) ([]models.FAQPair, error) {
	cleaned := stripCodeFences(raw)

	var items []rawFAQ
	decoded := false
	for _, strategy := range decodeStrategies {
		if got, ok := strategy(cleaned); ok {
			items = got
			decoded = true
			break
		}
	}
	if !decoded {
		return nil, &models.ParseError{
			Detail:      "response is not a decodable FAQ array",
			FragmentLen: len(cleaned),
			ItemIndex:   -1,
		}
	}

	pairs := make([]models.FAQPair, 0, len(items))
	for i, item := range items {
		q := strings.TrimSpace(item.Question)
		a := strings.TrimSpace(item.Answer)
		if q == "" || a == "" {
			return nil, &models.ParseError{
				Detail:      "item is missing a non-empty question or answer",
				FragmentLen: len(cleaned),
				ItemIndex:   i,
			}
		}
		pairs = append(pairs, models.FAQPair{Question: q, Answer: a})
	}
	return pairs, nil
}

// stripCodeFences removes a wrapping markdown code fence (``` or ```json),
// which providers add despite instructions not to.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop a language tag on the opening fence line.
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		first := strings.TrimSpace(trimmed[:idx])
		if first == "" || isFenceLanguage(first) {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

func isFenceLanguage(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// decodeArray handles a bare top-level JSON array.
func decodeArray(s string) ([]rawFAQ, bool) {
	var items []rawFAQ
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, false
	}
	return items, true
}

// decodeWrappedObject handles an object with an array-valued field holding
// the items, e.g. {"faqs": [...]}. Well-known field names are preferred;
// remaining fields are tried in sorted order so the unwrap is deterministic.
func decodeWrappedObject(s string) ([]rawFAQ, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}

	tryField := func(key string) ([]rawFAQ, bool) {
		rawField, present := obj[key]
		if !present {
			return nil, false
		}
		var items []rawFAQ
		if err := json.Unmarshal(rawField, &items); err != nil {
			return nil, false
		}
		return items, true
	}

	for _, key := range []string{"faqs", "items", "questions"} {
		if items, ok := tryField(key); ok {
			return items, true
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if items, ok := tryField(key); ok {
			return items, true
		}
	}
	return nil, false
}

var bracketedArray = regexp.MustCompile(`(?s)\[.*\]`)

// decodeBracketedSubstring is the last-resort repair: locate the first
// bracketed array substring by pattern match and decode that.
func decodeBracketedSubstring(s string) ([]rawFAQ, bool) {
	fragment := bracketedArray.FindString(s)
	if fragment == "" {
		return nil, false
	}
	var items []rawFAQ
	if err := json.Unmarshal([]byte(fragment), &items); err != nil {
		return nil, false
	}
	return items, true
}
