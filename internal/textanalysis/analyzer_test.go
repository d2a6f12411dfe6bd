package textanalysis

import (
	"strings"
	"testing"

	"github.com/xn_chatbot/backend/internal/models"
)

func TestCleanCollapsesWhitespaceAndStripsSymbols(t *testing.T) {
	a := NewAnalyzer()
	got := a.Clean("  I'm   so  stressed!!  @#$%  ")
	if strings.Contains(got, "@") || strings.Contains(got, "$") {
		t.Fatalf("symbols not stripped: %q", got)
	}
	if strings.HasPrefix(got, " ") {
		t.Fatalf("leading whitespace not trimmed: %q", got)
	}
	if !strings.Contains(got, "I'm") {
		t.Fatalf("apostrophe should survive cleaning: %q", got)
	}
}

func TestAssessSeverityCrisisKeywordWins(t *testing.T) {
	a := NewAnalyzer()
	text := "I want to kill myself"
	if got := a.AssessSeverity(text, a.ExtractKeywords(text)); got != models.SeverityCrisis {
		t.Fatalf("expected crisis, got %s", got)
	}
}

func TestAssessSeverityCascade(t *testing.T) {
	a := NewAnalyzer()
	cases := []struct {
		text string
		want models.SeverityLevel
	}{
		{"I feel desperate and hopeless", models.SeverityHigh},
		{"I am anxious and stressed about everything", models.SeverityModerate},
		{"having a panic attack", models.SeverityModerate},
		{"I have an exam tomorrow", models.SeverityLow},
		{"hello there", models.SeverityLow},
	}
	for _, tc := range cases {
		if got := a.AssessSeverity(tc.text, a.ExtractKeywords(tc.text)); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.text, tc.want, got)
		}
	}
}

func TestSeverityMonotonicity(t *testing.T) {
	a := NewAnalyzer()
	base := "I feel anxious"
	baseSeverity := a.AssessSeverity(base, a.ExtractKeywords(base))

	extended := base + " and stressed and hopeless and desperate"
	extSeverity := a.AssessSeverity(extended, a.ExtractKeywords(extended))
	if extSeverity < baseSeverity {
		t.Fatalf("severity decreased after adding keywords: %s -> %s", baseSeverity, extSeverity)
	}
}

func TestCategorizeConcernFallback(t *testing.T) {
	a := NewAnalyzer()
	got := a.CategorizeConcern("the weather is nice today")
	if len(got) != 1 || got[0] != "general_mental_health" {
		t.Fatalf("expected general_mental_health fallback, got %v", got)
	}
}

func TestCategorizeConcernMultiple(t *testing.T) {
	a := NewAnalyzer()
	got := a.CategorizeConcern("I'm lonely and my exam went badly")
	hasAcademic, hasSocial := false, false
	for _, c := range got {
		if c == "academic_stress" {
			hasAcademic = true
		}
		if c == "social_isolation" {
			hasSocial = true
		}
	}
	if !hasAcademic || !hasSocial {
		t.Fatalf("expected academic_stress and social_isolation, got %v", got)
	}
}

func TestExtractEmotions(t *testing.T) {
	a := NewAnalyzer()
	got := a.ExtractEmotions("I feel so sad and anxious and completely overwhelmed")
	want := map[string]bool{"sad": true, "anxious": true, "overwhelmed": true}
	for _, e := range got {
		delete(want, e)
	}
	if len(want) != 0 {
		t.Fatalf("missing emotions %v in %v", want, got)
	}
}

func TestDetectCrisisIndicators(t *testing.T) {
	a := NewAnalyzer()
	matched, indicators := a.DetectCrisisIndicators("I am going to end it tonight")
	if !matched {
		t.Fatalf("expected crisis pattern to fire")
	}
	found := false
	for _, ind := range indicators {
		if ind == "suicidal_ideation" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected suicidal_ideation indicator, got %v", indicators)
	}

	if matched, _ := a.DetectCrisisIndicators("I enjoy long walks"); matched {
		t.Fatalf("expected no crisis indicators on benign text")
	}
}

func TestAnalyzeNoKeywords(t *testing.T) {
	a := NewAnalyzer()
	res := a.Analyze("what a lovely morning")
	if res.Severity != models.SeverityLow {
		t.Fatalf("expected low severity, got %s", res.Severity)
	}
	if len(res.Keywords) != 0 {
		t.Fatalf("expected no keywords, got %v", res.Keywords)
	}
	if len(res.Categories) != 1 || res.Categories[0] != "general_mental_health" {
		t.Fatalf("expected general fallback category, got %v", res.Categories)
	}
}
