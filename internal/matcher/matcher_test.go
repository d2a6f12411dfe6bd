package matcher

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xn_chatbot/backend/internal/catalog"
	"github.com/xn_chatbot/backend/internal/crisis"
	"github.com/xn_chatbot/backend/internal/models"
	"github.com/xn_chatbot/backend/internal/textanalysis"
)

func newTestMatcher() *Matcher {
	analyzer := textanalysis.NewAnalyzer()
	return New(
		analyzer,
		crisis.NewAssessor(analyzer, zerolog.Nop()),
		catalog.NewScenarioCatalog(),
		catalog.NewResourceCatalog(),
		zerolog.Nop(),
	)
}

func TestAnalyzeLonelyInput(t *testing.T) {
	m := newTestMatcher()
	a := m.AnalyzeUserInput("I feel so lonely and isolated, I have no friends here", nil)

	if a.RequiresAttention {
		t.Fatalf("loneliness should not trigger crisis")
	}
	found := false
	for _, c := range a.Categories {
		if c == "social_isolation" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected social_isolation category, got %v", a.Categories)
	}
	if len(a.MatchedScenarios) == 0 || len(a.MatchedScenarios) > 5 {
		t.Fatalf("expected 1..5 scenarios, got %d", len(a.MatchedScenarios))
	}
	if a.MatchedScenarios[0].ID != "loneliness_isolation" {
		t.Fatalf("expected loneliness_isolation first, got %s", a.MatchedScenarios[0].ID)
	}

	hasPeer := false
	for _, r := range a.Recommendations {
		if r.ResourceID == "northeastern_peer_support" {
			hasPeer = true
		}
	}
	if !hasPeer {
		t.Fatalf("expected peer support recommendation, got %v", recIDs(a.Recommendations))
	}
}

func TestAnalyzeCrisisInput(t *testing.T) {
	m := newTestMatcher()
	a := m.AnalyzeUserInput("I want to kill myself", nil)

	if !a.RequiresAttention {
		t.Fatalf("expected crisis attention flag")
	}
	if len(a.Recommendations) < 3 {
		t.Fatalf("expected at least 3 crisis recommendations, got %d", len(a.Recommendations))
	}
	for i := 0; i < 3; i++ {
		r := a.Recommendations[i]
		if !r.IsImmediate {
			t.Fatalf("recommendation %d should be immediate", i)
		}
		if r.Priority != i+1 {
			t.Fatalf("recommendation %d has priority %d", i, r.Priority)
		}
		if r.RelevanceScore != 1.0 {
			t.Fatalf("crisis recommendation relevance should be 1.0, got %f", r.RelevanceScore)
		}
	}
}

func TestRecommendationsCappedAndUnique(t *testing.T) {
	m := newTestMatcher()
	a := m.AnalyzeUserInput("I'm lonely, stressed about exams, homesick and my confidence is gone", nil)

	if len(a.Recommendations) > 6 {
		t.Fatalf("expected at most 6 recommendations, got %d", len(a.Recommendations))
	}
	seen := map[string]bool{}
	for _, r := range a.Recommendations {
		if seen[r.ResourceID] {
			t.Fatalf("duplicate recommendation %s", r.ResourceID)
		}
		seen[r.ResourceID] = true
	}
}

func TestBaselineCounselingAlwaysConsidered(t *testing.T) {
	m := newTestMatcher()
	a := m.AnalyzeUserInput("just saying hello", nil)

	hasNortheastern, hasMindbridge := false, false
	for _, r := range a.Recommendations {
		if r.ResourceID == "northeastern_counseling" {
			hasNortheastern = true
			if r.RelevanceScore != 0.7 {
				t.Fatalf("baseline relevance should be 0.7, got %f", r.RelevanceScore)
			}
		}
		if r.ResourceID == "mindbridge_counseling" {
			hasMindbridge = true
		}
	}
	if !hasNortheastern || !hasMindbridge {
		t.Fatalf("expected both baseline counseling resources, got %v", recIDs(a.Recommendations))
	}
}

func TestResourceRelevanceBonuses(t *testing.T) {
	m := newTestMatcher()
	crisisRes, _ := m.resources.ByID("mindbridge_crisis_support")

	low := m.resourceRelevance(crisisRes, nil, models.SeverityLow)
	high := m.resourceRelevance(crisisRes, nil, models.SeverityHigh)
	if high <= low {
		t.Fatalf("crisis resource should score higher at high severity: %f vs %f", low, high)
	}
	if high > 1.0 {
		t.Fatalf("relevance must be clamped to 1.0, got %f", high)
	}
}

func TestFormatRecommendationsFallback(t *testing.T) {
	m := newTestMatcher()
	text := m.FormatRecommendations(nil)
	if !strings.Contains(text, "(617) 373-2772") || !strings.Contains(text, "1-800-MINDBRIDGE") {
		t.Fatalf("fallback text missing contact numbers:\n%s", text)
	}
}

func TestFormatRecommendationsTopFour(t *testing.T) {
	m := newTestMatcher()
	a := m.AnalyzeUserInput("I'm lonely, stressed about exams, homesick and my confidence is gone", nil)
	text := m.FormatRecommendations(a.Recommendations)

	if !strings.Contains(text, "**Recommended Resources:**") {
		t.Fatalf("missing header:\n%s", text)
	}
	if strings.Contains(text, "5.") {
		t.Fatalf("display should stop at 4 entries:\n%s", text)
	}
}

func TestContextualRecommendations(t *testing.T) {
	m := newTestMatcher()
	recs := m.ContextualRecommendations([]string{"academic_stress"}, []string{"exam"}, models.SeverityModerate)
	if len(recs) == 0 {
		t.Fatalf("expected contextual recommendations")
	}
	hasAcademic := false
	for _, r := range recs {
		if r.ResourceID == "northeastern_academic_support" || r.ResourceID == "mindbridge_academic_coaching" {
			hasAcademic = true
		}
	}
	if !hasAcademic {
		t.Fatalf("expected an academic resource, got %v", recIDs(recs))
	}
}

func recIDs(recs []models.Recommendation) []string {
	var out []string
	for _, r := range recs {
		out = append(out, r.ResourceID)
	}
	return out
}
