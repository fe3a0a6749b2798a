package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/yachtscore/internal/score"
)

func TestRenderFooterFormats(t *testing.T) {
	m, reg := newTestModel(t, Options{}, "Alice", "Bob")
	if err := reg.ApplyScore("Bob", score.Score(score.Choice, 22)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	m.setError("Unknown player \"Cara\"")
	out := m.renderFooter()
	if !containsAll(out, []string{HelpHint, "Leader Bob (22)", "Unknown player \"Cara\""}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterWithoutScores(t *testing.T) {
	m, _ := newTestModel(t, Options{}, "Alice")
	out := m.renderFooter()
	if out == "" || strings.Contains(out, "Leader") {
		t.Fatalf("unexpected footer: %q", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
