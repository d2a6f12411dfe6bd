package crisis

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xn_chatbot/backend/internal/models"
	"github.com/xn_chatbot/backend/internal/textanalysis"
)

func TestRenderCrisisResponse(t *testing.T) {
	a := NewAssessor(textanalysis.NewAnalyzer(), zerolog.Nop())
	r := NewResponder()

	assessment := a.AssessRisk("I want to kill myself", nil)
	text := r.Render(assessment)

	for _, want := range []string{"CRISIS SUPPORT NEEDED", "988", "911", "(617) 373-3333"} {
		if !strings.Contains(text, want) {
			t.Fatalf("crisis response missing %q:\n%s", want, text)
		}
	}
	if !strings.Contains(text, "First step: ") {
		t.Fatalf("expected first immediate action to be interpolated")
	}
}

func TestRenderHighRiskResponse(t *testing.T) {
	r := NewResponder()
	text := r.Render(models.CrisisAssessment{
		RiskLevel:        models.SeverityHigh,
		ImmediateActions: []string{"Contact Northeastern CAPS: (617) 373-2772"},
	})
	if !strings.Contains(text, "URGENT SUPPORT RECOMMENDED") {
		t.Fatalf("missing high-risk header:\n%s", text)
	}
	if !strings.Contains(text, "(617) 373-2772") || !strings.Contains(text, "988") {
		t.Fatalf("missing contact numbers:\n%s", text)
	}
}

func TestRenderModerateResponse(t *testing.T) {
	r := NewResponder()
	text := r.Render(models.CrisisAssessment{RiskLevel: models.SeverityModerate})
	if strings.Contains(text, "CRISIS SUPPORT NEEDED") || strings.Contains(text, "URGENT SUPPORT RECOMMENDED") {
		t.Fatalf("moderate tier should not use crisis headers:\n%s", text)
	}
	if !strings.Contains(text, "988") {
		t.Fatalf("moderate tier should still list the lifeline:\n%s", text)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewResponder()
	assessment := models.CrisisAssessment{RiskLevel: models.SeverityCrisis}
	if r.Render(assessment) != r.Render(assessment) {
		t.Fatalf("crisis rendering must be deterministic")
	}
}
