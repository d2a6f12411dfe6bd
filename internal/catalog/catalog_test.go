package catalog

import (
	"testing"

	"github.com/xn_chatbot/backend/internal/models"
)

func TestScenarioLookup(t *testing.T) {
	c := NewScenarioCatalog()
	s, ok := c.ByID("suicidal_ideation")
	if !ok {
		t.Fatalf("expected suicidal_ideation scenario")
	}
	if s.Severity != models.SeverityCrisis {
		t.Fatalf("expected crisis severity, got %s", s.Severity)
	}
	if _, ok := c.ByID("nope"); ok {
		t.Fatalf("unexpected scenario for unknown id")
	}
}

func TestScenarioCatalogComplete(t *testing.T) {
	c := NewScenarioCatalog()
	if len(c.ordered) != 14 {
		t.Fatalf("expected 14 scenarios, got %d", len(c.ordered))
	}

	s, ok := c.ByID("relationship_breakup")
	if !ok {
		t.Fatalf("expected relationship_breakup scenario")
	}
	if s.Severity != models.SeverityModerate || s.Category != "relationships" {
		t.Fatalf("unexpected scenario data: severity %s category %s", s.Severity, s.Category)
	}
	if got := c.SearchByKeywords([]string{"breakup"}); len(got) != 1 || got[0].ID != "relationship_breakup" {
		t.Fatalf("breakup keyword should find the scenario, got %v", got)
	}

	// No curated resource mapping; the counseling pair is the fallback.
	r := NewResourceCatalog()
	fallback := r.ForScenario("relationship_breakup")
	if len(fallback) != 2 || fallback[0].ID != "northeastern_counseling" {
		t.Fatalf("unexpected resources: %v", ids(fallback))
	}
}

func TestScenarioByCategory(t *testing.T) {
	c := NewScenarioCatalog()
	got := c.ByCategory("academic_stress")
	if len(got) != 2 {
		t.Fatalf("expected 2 academic scenarios, got %d", len(got))
	}
}

func TestScenarioSearchSortsBySeverity(t *testing.T) {
	c := NewScenarioCatalog()
	// "anxiety" hits both exam anxiety (moderate) and panic attacks (high).
	got := c.SearchByKeywords([]string{"anxiety"})
	if len(got) < 2 {
		t.Fatalf("expected at least 2 matches, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Severity > got[i-1].Severity {
			t.Fatalf("results not sorted by severity: %v before %v", got[i-1].ID, got[i].ID)
		}
	}
	if got[0].ID != "panic_attacks" {
		t.Fatalf("expected panic_attacks first, got %s", got[0].ID)
	}
}

func TestResourceLookupAndCrisisFilter(t *testing.T) {
	c := NewResourceCatalog()
	r, ok := c.ByID("crisis_hotline")
	if !ok || !r.IsCrisisResource {
		t.Fatalf("expected crisis hotline resource")
	}
	for _, cr := range c.CrisisResources() {
		if !cr.IsCrisisResource {
			t.Fatalf("non-crisis resource %s in crisis list", cr.ID)
		}
	}
}

func TestResourceSearchTypePriority(t *testing.T) {
	c := NewResourceCatalog()
	// "support" matches resources across several types.
	got := c.SearchByKeywords([]string{"support"}, true)
	if len(got) < 3 {
		t.Fatalf("expected several matches, got %d", len(got))
	}
	last := -1
	for _, r := range got {
		p, ok := searchTypePriority[r.Type]
		if !ok {
			p = 6
		}
		if p < last {
			t.Fatalf("results not sorted by type priority")
		}
		last = p
	}
}

func TestResourceSearchExcludesCrisis(t *testing.T) {
	c := NewResourceCatalog()
	got := c.SearchByKeywords([]string{"crisis"}, false)
	for _, r := range got {
		if r.IsCrisisResource {
			t.Fatalf("crisis resource %s returned with includeCrisis=false", r.ID)
		}
	}
}

func TestForScenarioMappingAndFallback(t *testing.T) {
	c := NewResourceCatalog()
	got := c.ForScenario("suicidal_ideation")
	if len(got) != 3 || got[0].ID != "crisis_hotline" {
		t.Fatalf("unexpected crisis scenario resources: %v", ids(got))
	}

	fallback := c.ForScenario("unknown_scenario")
	if len(fallback) != 2 || fallback[0].ID != "northeastern_counseling" || fallback[1].ID != "mindbridge_counseling" {
		t.Fatalf("unexpected fallback resources: %v", ids(fallback))
	}
}

func ids(rs []*models.Resource) []string {
	var out []string
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}
