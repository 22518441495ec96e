package extractor

import (
	"strings"
	"testing"
)

func TestApplyCSSSelector(t *testing.T) {
	html := `<html><body>
	  <div class="faq"><p>First question block with enough text.</p></div>
	  <div class="other"><p>Unrelated sidebar text that should vanish.</p></div>
	  <div class="faq"><p>Second question block with enough text.</p></div>
	</body></html>`

	scoped, err := ApplyCSSSelector(html, "div.faq")
	if err != nil {
		t.Fatalf("ApplyCSSSelector returned error: %v", err)
	}
	if !strings.Contains(scoped, "First question block") || !strings.Contains(scoped, "Second question block") {
		t.Errorf("matched blocks missing from output: %q", scoped)
	}
	if strings.Contains(scoped, "Unrelated sidebar") {
		t.Errorf("unmatched block leaked into output: %q", scoped)
	}
}

func TestApplyCSSSelector_NoMatch(t *testing.T) {
	html := `<html><body><p>content stays as-is</p></body></html>`
	scoped, err := ApplyCSSSelector(html, ".does-not-exist")
	if err != nil {
		t.Fatalf("ApplyCSSSelector returned error: %v", err)
	}
	if scoped != html {
		t.Errorf("no-match should return the input unchanged, got %q", scoped)
	}
}

func TestApplyCSSSelector_Invalid(t *testing.T) {
	if _, err := ApplyCSSSelector("<html></html>", "p["); err == nil {
		t.Error("invalid selector should return an error")
	}
}
