package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xn_chatbot/backend/internal/catalog"
	"github.com/xn_chatbot/backend/internal/crisis"
	"github.com/xn_chatbot/backend/internal/models"
	"github.com/xn_chatbot/backend/internal/textanalysis"
)

// Analysis is the full verdict for one user turn. Consumers read fields
// directly; nothing here is mutated after AnalyzeUserInput returns.
type Analysis struct {
	OriginalInput     string
	CleanedInput      string
	Keywords          []string
	Severity          models.SeverityLevel
	Categories        []string
	Emotions          []string
	CrisisAssessment  models.CrisisAssessment
	MatchedScenarios  []*models.Scenario
	Recommendations   []models.Recommendation
	RequiresAttention bool
}

// Matcher combines the text analyzer, crisis assessor and the catalogs into
// per-turn analysis plus resource recommendations.
type Matcher struct {
	analyzer  *textanalysis.Analyzer
	assessor  *crisis.Assessor
	scenarios *catalog.ScenarioCatalog
	resources *catalog.ResourceCatalog
	logger    zerolog.Logger

	severityWeights map[models.SeverityLevel]float64
}

func New(analyzer *textanalysis.Analyzer, assessor *crisis.Assessor,
	scenarios *catalog.ScenarioCatalog, resources *catalog.ResourceCatalog,
	logger zerolog.Logger) *Matcher {
	return &Matcher{
		analyzer:  analyzer,
		assessor:  assessor,
		scenarios: scenarios,
		resources: resources,
		logger:    logger,
		severityWeights: map[models.SeverityLevel]float64{
			models.SeverityCrisis:   1.0,
			models.SeverityHigh:     0.8,
			models.SeverityModerate: 0.6,
			models.SeverityLow:      0.4,
		},
	}
}

// AnalyzeUserInput runs the whole per-turn pipeline: clean, extract, assess,
// match scenarios, and build recommendations.
func (m *Matcher) AnalyzeUserInput(input string, history []string) Analysis {
	cleaned := m.analyzer.Clean(input)
	keywords := m.analyzer.ExtractKeywords(cleaned)
	severity := m.analyzer.AssessSeverity(cleaned, keywords)
	categories := m.analyzer.CategorizeConcern(cleaned)
	emotions := m.analyzer.ExtractEmotions(cleaned)

	assessment := m.assessor.AssessRisk(cleaned, history)
	scenarios := m.findMatchingScenarios(keywords, categories, severity)
	recommendations := m.generateRecommendations(scenarios, keywords, categories, severity, assessment)

	m.logger.Debug().
		Str("severity", severity.String()).
		Strs("categories", categories).
		Int("scenarios", len(scenarios)).
		Int("recommendations", len(recommendations)).
		Msg("input analyzed")

	return Analysis{
		OriginalInput:     input,
		CleanedInput:      cleaned,
		Keywords:          keywords,
		Severity:          severity,
		Categories:        categories,
		Emotions:          emotions,
		CrisisAssessment:  assessment,
		MatchedScenarios:  scenarios,
		Recommendations:   recommendations,
		RequiresAttention: assessment.RequiresImmediateIntervention,
	}
}

type scoredScenario struct {
	scenario *models.Scenario
	score    float64
}

// findMatchingScenarios tries category candidates first; when no category
// candidate clears the relevance threshold it falls back to a plain keyword
// search capped at three. Returns at most five scenarios, best first.
func (m *Matcher) findMatchingScenarios(keywords, categories []string, severity models.SeverityLevel) []*models.Scenario {
	var scored []scoredScenario

	for _, category := range categories {
		for _, s := range m.scenarios.ByCategory(category) {
			score := m.scenarioRelevance(s, keywords, severity)
			if score > 0.3 {
				scored = append(scored, scoredScenario{s, score})
			}
		}
	}

	if len(scored) == 0 {
		fallback := m.scenarios.SearchByKeywords(keywords)
		if len(fallback) > 3 {
			fallback = fallback[:3]
		}
		for _, s := range fallback {
			scored = append(scored, scoredScenario{s, m.scenarioRelevance(s, keywords, severity)})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > 5 {
		scored = scored[:5]
	}
	out := make([]*models.Scenario, len(scored))
	for i, sc := range scored {
		out[i] = sc.scenario
	}
	return out
}

// scenarioRelevance weights keyword overlap at 0.4, severity proximity at
// 0.3, plus the flat 0.3 candidacy bonus. Keyword overlap counts fuzzy
// substring matches in either direction.
func (m *Matcher) scenarioRelevance(s *models.Scenario, keywords []string, severity models.SeverityLevel) float64 {
	matches := 0
	for _, kw := range keywords {
		lowerKw := strings.ToLower(kw)
		for _, sk := range s.Keywords {
			lowerSk := strings.ToLower(sk)
			if strings.Contains(lowerKw, lowerSk) || strings.Contains(lowerSk, lowerKw) {
				matches++
				break
			}
		}
	}
	keywordScore := float64(matches) / float64(len(s.Keywords))
	if keywordScore > 1.0 {
		keywordScore = 1.0
	}

	scenarioWeight := m.severityWeights[s.Severity]
	userWeight := m.severityWeights[severity]
	diff := scenarioWeight - userWeight
	if diff < 0 {
		diff = -diff
	}

	return keywordScore*0.4 + (1.0-diff)*0.3 + 0.3
}

var categoryResourceIDs = map[string][]string{
	"academic_stress":      {"northeastern_academic_support", "mindbridge_academic_coaching"},
	"social_isolation":     {"northeastern_peer_support", "mindbridge_peer_support"},
	"cultural_adjustment":  {"northeastern_international", "mindbridge_counseling"},
	"self_esteem":          {"northeastern_counseling", "mindbridge_counseling"},
	"crisis":               {"crisis_hotline", "northeastern_emergency", "mindbridge_crisis_support"},
	"anxiety":              {"northeastern_counseling", "mindbridge_counseling"},
	"family_relationships": {"northeastern_counseling", "mindbridge_counseling"},
	"financial_stress":     {"northeastern_academic_support", "mindbridge_wellness_programs"},
}

// generateRecommendations builds the ordered recommendation list: crisis
// resources first when intervention is required, then the top two scenarios'
// curated resources, then category-mapped resources, then the two general
// counseling baselines. Deduplicated by resource id, capped at six.
func (m *Matcher) generateRecommendations(scenarios []*models.Scenario, keywords, categories []string,
	severity models.SeverityLevel, assessment models.CrisisAssessment) []models.Recommendation {
	var recs []models.Recommendation
	have := func(id string) bool {
		for _, r := range recs {
			if r.ResourceID == id {
				return true
			}
		}
		return false
	}

	if assessment.RequiresImmediateIntervention {
		crisisResources := m.resources.CrisisResources()
		if len(crisisResources) > 3 {
			crisisResources = crisisResources[:3]
		}
		for i, r := range crisisResources {
			recs = append(recs, models.Recommendation{
				ResourceID:      r.ID,
				ResourceName:    r.Name,
				RelevanceScore:  1.0,
				Reasoning:       "Immediate crisis support needed",
				Priority:        i + 1,
				IsImmediate:     true,
				FollowUpActions: []string{"Contact immediately", "Ensure safety"},
			})
		}
	}

	topScenarios := scenarios
	if len(topScenarios) > 2 {
		topScenarios = topScenarios[:2]
	}
	for _, s := range topScenarios {
		for _, r := range m.resources.ForScenario(s.ID) {
			if have(r.ID) {
				continue
			}
			recs = append(recs, models.Recommendation{
				ResourceID:      r.ID,
				ResourceName:    r.Name,
				RelevanceScore:  m.resourceRelevance(r, keywords, severity),
				Reasoning:       "Recommended for " + strings.ToLower(s.Title),
				Priority:        len(recs) + 1,
				FollowUpActions: followUpActions(r, severity),
			})
		}
	}

	for _, r := range m.categoryResources(categories) {
		if have(r.ID) {
			continue
		}
		recs = append(recs, models.Recommendation{
			ResourceID:      r.ID,
			ResourceName:    r.Name,
			RelevanceScore:  m.resourceRelevance(r, keywords, severity),
			Reasoning:       "Relevant for " + strings.Join(categories, ", "),
			Priority:        len(recs) + 1,
			FollowUpActions: followUpActions(r, severity),
		})
	}

	for _, id := range []string{"northeastern_counseling", "mindbridge_counseling"} {
		if have(id) {
			continue
		}
		if r, ok := m.resources.ByID(id); ok {
			recs = append(recs, models.Recommendation{
				ResourceID:      r.ID,
				ResourceName:    r.Name,
				RelevanceScore:  0.7,
				Reasoning:       "General mental health support",
				Priority:        len(recs) + 1,
				FollowUpActions: []string{"Schedule appointment", "Discuss concerns"},
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority < recs[j].Priority
		}
		return recs[i].RelevanceScore > recs[j].RelevanceScore
	})
	if len(recs) > 6 {
		recs = recs[:6]
	}
	return recs
}

// resourceRelevance starts at the 0.5 base and adds bonuses for crisis fit,
// partner and university resources, and description keyword hits. Clamped
// to 1.0.
func (m *Matcher) resourceRelevance(r *models.Resource, keywords []string, severity models.SeverityLevel) float64 {
	score := 0.5

	if r.IsCrisisResource && severity >= models.SeverityHigh {
		score += 0.4
	}
	lowerID := strings.ToLower(r.ID)
	if strings.Contains(lowerID, "mindbridge") {
		score += 0.2
	}
	if strings.Contains(lowerID, "northeastern") {
		score += 0.1
	}

	haystack := strings.ToLower(r.Name + " " + r.Description)
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			matches++
		}
	}
	bonus := float64(matches) * 0.1
	if bonus > 0.3 {
		bonus = 0.3
	}
	score += bonus

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (m *Matcher) categoryResources(categories []string) []*models.Resource {
	var out []*models.Resource
	seen := map[string]bool{}
	for _, category := range categories {
		for _, id := range categoryResourceIDs[category] {
			if seen[id] {
				continue
			}
			if r, ok := m.resources.ByID(id); ok {
				seen[id] = true
				out = append(out, r)
			}
		}
	}
	return out
}

func followUpActions(r *models.Resource, severity models.SeverityLevel) []string {
	switch {
	case r.IsCrisisResource:
		return []string{"Contact immediately", "Prioritize safety", "Follow crisis protocol"}
	case severity == models.SeverityHigh:
		return []string{"Contact within 24 hours", "Schedule urgent appointment", "Monitor symptoms"}
	case severity == models.SeverityModerate:
		return []string{"Schedule appointment this week", "Prepare questions to ask", "Consider ongoing support"}
	default:
		return []string{"Contact when ready", "Explore available services", "Consider preventive support"}
	}
}

// ContextualRecommendations rebuilds recommendations from already-known
// concerns, used when later turns stay on established topics.
func (m *Matcher) ContextualRecommendations(concerns, keywords []string, severity models.SeverityLevel) []models.Recommendation {
	scenarios := m.findMatchingScenarios(keywords, concerns, severity)
	return m.generateRecommendations(scenarios, keywords, concerns, severity, models.CrisisAssessment{})
}

// FormatRecommendations renders the top recommendations for display. Empty
// input gets a generic referral line.
func (m *Matcher) FormatRecommendations(recs []models.Recommendation) string {
	if len(recs) == 0 {
		return "I'd recommend reaching out to Northeastern CAPS at (617) 373-2772 or MindBridge Care at 1-800-MINDBRIDGE for personalized support."
	}

	parts := []string{"**Recommended Resources:**", ""}
	display := recs
	if len(display) > 4 {
		display = display[:4]
	}
	for i, rec := range display {
		r, ok := m.resources.ByID(rec.ResourceID)
		if !ok {
			continue
		}
		marker := fmt.Sprintf("%d.", i+1)
		if rec.IsImmediate {
			marker = "[URGENT]"
		}
		parts = append(parts, fmt.Sprintf("%s **%s**", marker, r.Name))
		if phone := r.ContactInfo["phone"]; phone != "" {
			parts = append(parts, "   Phone: "+phone)
		}
		if site := r.ContactInfo["website"]; site != "" {
			parts = append(parts, "   Website: "+site)
		}
		parts = append(parts, "   "+rec.Reasoning, "")
	}
	return strings.Join(parts, "\n")
}
