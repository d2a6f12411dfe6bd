package catalog

import (
	"sort"
	"strings"

	"github.com/xn_chatbot/backend/internal/models"
)

// ScenarioCatalog holds the predefined situation templates. Built once at
// startup and read-only afterwards, so it is safe to share across sessions.
type ScenarioCatalog struct {
	byID    map[string]*models.Scenario
	ordered []*models.Scenario
}

func NewScenarioCatalog() *ScenarioCatalog {
	c := &ScenarioCatalog{byID: map[string]*models.Scenario{}}
	for _, s := range scenarioData() {
		c.byID[s.ID] = s
		c.ordered = append(c.ordered, s)
	}
	return c
}

func (c *ScenarioCatalog) ByID(id string) (*models.Scenario, bool) {
	s, ok := c.byID[id]
	return s, ok
}

func (c *ScenarioCatalog) ByCategory(category string) []*models.Scenario {
	var out []*models.Scenario
	for _, s := range c.ordered {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

func (c *ScenarioCatalog) CrisisScenarios() []*models.Scenario {
	var out []*models.Scenario
	for _, s := range c.ordered {
		if s.Severity == models.SeverityCrisis {
			out = append(out, s)
		}
	}
	return out
}

// SearchByKeywords returns every scenario whose keyword set contains one of
// the query keywords (exact, case-insensitive), most severe first. Ties keep
// insertion order.
func (c *ScenarioCatalog) SearchByKeywords(keywords []string) []*models.Scenario {
	var out []*models.Scenario
	for _, s := range c.ordered {
		if scenarioKeywordMatch(s, keywords) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity > out[j].Severity
	})
	return out
}

func scenarioKeywordMatch(s *models.Scenario, keywords []string) bool {
	for _, q := range keywords {
		for _, k := range s.Keywords {
			if strings.EqualFold(q, k) {
				return true
			}
		}
	}
	return false
}

func scenarioData() []*models.Scenario {
	return []*models.Scenario{
		{
			ID:          "academic_exam_anxiety",
			Title:       "Exam Anxiety and Academic Pressure",
			Description: "Student experiencing severe anxiety about upcoming exams and academic performance",
			Keywords:    []string{"exam", "test", "anxiety", "academic", "pressure", "grade", "study"},
			Severity:    models.SeverityModerate,
			Category:    "academic_stress",
			CommonTriggers: []string{"upcoming exams", "poor grades", "time pressure", "competition"},
			RecommendedResourceIDs: []string{"northeastern_counseling", "mindbridge_academic_coaching", "northeastern_academic_support"},
			ResponseTemplates: []string{
				"I understand exam anxiety can feel overwhelming. Let's explore some strategies to help you manage this stress.",
				"Academic pressure is common among college students. There are effective ways to cope with exam anxiety.",
			},
		},
		{
			ID:          "academic_failure_fear",
			Title:       "Fear of Academic Failure",
			Description: "Student worried about failing classes or not meeting academic expectations",
			Keywords:    []string{"failing", "failure", "academic", "disappointed", "expectations", "parents"},
			Severity:    models.SeverityModerate,
			Category:    "academic_stress",
			CommonTriggers: []string{"poor performance", "family expectations", "scholarship concerns"},
			RecommendedResourceIDs: []string{"northeastern_counseling", "mindbridge_counseling", "northeastern_academic_support"},
			ResponseTemplates: []string{
				"Fear of failure can be paralyzing, but remember that setbacks are part of learning.",
				"Let's talk about realistic expectations and strategies to improve your academic situation.",
			},
		},
		{
			ID:          "loneliness_isolation",
			Title:       "Loneliness and Social Isolation",
			Description: "Student feeling lonely and having difficulty making connections",
			Keywords:    []string{"lonely", "alone", "isolated", "friends", "social", "connection"},
			Severity:    models.SeverityModerate,
			Category:    "social_isolation",
			CommonTriggers: []string{"new environment", "social anxiety", "introversion", "rejection"},
			RecommendedResourceIDs: []string{"northeastern_peer_support", "mindbridge_peer_support", "northeastern_counseling"},
			ResponseTemplates: []string{
				"Feeling lonely in college is more common than you might think. Many students struggle with this.",
				"Building connections takes time. Let's explore some ways to help you meet like-minded people.",
			},
		},
		{
			ID:          "roommate_conflict",
			Title:       "Roommate and Living Situation Conflicts",
			Description: "Student experiencing stress from roommate conflicts or living arrangements",
			Keywords:    []string{"roommate", "living", "conflict", "dorm", "apartment", "housing"},
			Severity:    models.SeverityLow,
			Category:    "social_isolation",
			CommonTriggers: []string{"personality differences", "lifestyle conflicts", "boundaries"},
			RecommendedResourceIDs: []string{"northeastern_peer_support", "northeastern_counseling"},
			ResponseTemplates: []string{
				"Roommate conflicts can significantly impact your well-being. Let's discuss some resolution strategies.",
				"Living with others requires compromise and communication. I can help you navigate this situation.",
			},
		},
		{
			ID:          "homesickness_cultural",
			Title:       "Homesickness and Cultural Adjustment",
			Description: "International student struggling with homesickness and cultural adaptation",
			Keywords:    []string{"homesick", "home", "culture", "international", "family", "country", "adjustment"},
			Severity:    models.SeverityModerate,
			Category:    "cultural_adjustment",
			CommonTriggers: []string{"distance from family", "cultural differences", "language barriers"},
			RecommendedResourceIDs: []string{"northeastern_international", "mindbridge_counseling", "northeastern_counseling"},
			ResponseTemplates: []string{
				"Homesickness is a natural response to being far from home. Many international students experience this.",
				"Cultural adjustment takes time. Let's explore resources specifically designed for international students.",
			},
		},
		{
			ID:          "language_academic_barrier",
			Title:       "Language Barriers in Academic Settings",
			Description: "Student struggling with language barriers affecting academic performance",
			Keywords:    []string{"language", "english", "communication", "academic", "understanding", "barrier"},
			Severity:    models.SeverityModerate,
			Category:    "cultural_adjustment",
			CommonTriggers: []string{"complex academic language", "participation anxiety", "comprehension issues"},
			RecommendedResourceIDs: []string{"northeastern_international", "northeastern_academic_support"},
			ResponseTemplates: []string{
				"Language barriers in academic settings can be challenging. There are specific resources to help you succeed.",
				"Many international students face similar challenges. Let's find the right support for your language needs.",
			},
		},
		{
			ID:          "low_self_esteem",
			Title:       "Low Self-Esteem and Confidence Issues",
			Description: "Student struggling with self-worth and confidence",
			Keywords:    []string{"confidence", "self-esteem", "worth", "inadequate", "failure", "imposter"},
			Severity:    models.SeverityModerate,
			Category:    "self_esteem",
			CommonTriggers: []string{"comparison with others", "past failures", "perfectionism"},
			RecommendedResourceIDs: []string{"northeastern_counseling", "mindbridge_counseling", "northeastern_peer_support"},
			ResponseTemplates: []string{
				"Self-esteem issues are common among college students. You're not alone in feeling this way.",
				"Building confidence is a process. Let's explore strategies to help you recognize your strengths.",
			},
		},
		{
			ID:          "imposter_syndrome",
			Title:       "Imposter Syndrome",
			Description: "Student feeling like they don't belong or deserve their achievements",
			Keywords:    []string{"imposter", "don't belong", "fraud", "deserve", "luck", "fake"},
			Severity:    models.SeverityModerate,
			Category:    "self_esteem",
			CommonTriggers: []string{"academic success", "competitive environment", "high expectations"},
			RecommendedResourceIDs: []string{"northeastern_counseling", "northeastern_peer_support"},
			ResponseTemplates: []string{
				"Imposter syndrome affects many high-achieving students. Your feelings are valid and addressable.",
				"You've earned your place here. Let's work on recognizing your legitimate accomplishments.",
			},
		},
		{
			ID:          "suicidal_ideation",
			Title:       "Suicidal Thoughts and Crisis",
			Description: "Student expressing suicidal thoughts or in mental health crisis",
			Keywords:    []string{"suicide", "kill myself", "end it all", "not worth living", "die", "harm myself"},
			Severity:    models.SeverityCrisis,
			Category:    "crisis",
			CommonTriggers: []string{"overwhelming stress", "hopelessness", "isolation", "trauma"},
			RecommendedResourceIDs: []string{"crisis_hotline", "northeastern_emergency", "mindbridge_crisis_support"},
			ResponseTemplates: []string{
				"I'm very concerned about what you're sharing. Your life has value and there is help available.",
				"This sounds like a crisis situation. Let me connect you with immediate professional support.",
			},
		},
		{
			ID:          "panic_attacks",
			Title:       "Panic Attacks and Severe Anxiety",
			Description: "Student experiencing panic attacks or severe anxiety episodes",
			Keywords:    []string{"panic", "attack", "can't breathe", "heart racing", "overwhelming", "anxiety"},
			Severity:    models.SeverityHigh,
			Category:    "anxiety",
			CommonTriggers: []string{"stress", "academic pressure", "social situations", "health anxiety"},
			RecommendedResourceIDs: []string{"northeastern_counseling", "mindbridge_crisis_support", "northeastern_emergency"},
			ResponseTemplates: []string{
				"Panic attacks can be frightening, but they are treatable. Let's get you connected with appropriate support.",
				"You're experiencing something very real and manageable with the right help.",
			},
		},
		{
			ID:          "family_pressure",
			Title:       "Family Pressure and Expectations",
			Description: "Student struggling with family expectations and pressure",
			Keywords:    []string{"family", "parents", "pressure", "expectations", "disappointed", "career"},
			Severity:    models.SeverityModerate,
			Category:    "family_relationships",
			CommonTriggers: []string{"career choices", "academic performance", "cultural expectations"},
			RecommendedResourceIDs: []string{"northeastern_counseling", "mindbridge_counseling"},
			ResponseTemplates: []string{
				"Family pressure can be intense, especially when it conflicts with your own goals.",
				"Balancing family expectations with personal autonomy is challenging but manageable.",
			},
		},
		{
			ID:          "relationship_breakup",
			Title:       "Relationship Issues and Breakups",
			Description: "Student dealing with relationship problems or recent breakup",
			Keywords:    []string{"relationship", "breakup", "boyfriend", "girlfriend", "dating", "heartbreak"},
			Severity:    models.SeverityModerate,
			Category:    "relationships",
			CommonTriggers: []string{"breakup", "conflict", "long-distance", "trust issues"},
			RecommendedResourceIDs: []string{"northeastern_counseling", "northeastern_peer_support", "mindbridge_counseling"},
			ResponseTemplates: []string{
				"Relationship difficulties can significantly impact your emotional well-being.",
				"Breakups are painful, but they're also opportunities for growth and self-discovery.",
			},
		},
		{
			ID:          "financial_stress",
			Title:       "Financial Stress and Money Worries",
			Description: "Student experiencing stress related to financial concerns",
			Keywords:    []string{"money", "financial", "debt", "tuition", "job", "work", "afford"},
			Severity:    models.SeverityModerate,
			Category:    "financial_stress",
			CommonTriggers: []string{"tuition costs", "living expenses", "job loss", "family financial issues"},
			RecommendedResourceIDs: []string{"northeastern_academic_support", "mindbridge_wellness_programs"},
			ResponseTemplates: []string{
				"Financial stress is a major concern for many college students. There are resources to help.",
				"Money worries can affect your mental health and academic performance. Let's explore your options.",
			},
		},
		{
			ID:          "provider_search_request",
			Title:       "Finding Mental Health Providers",
			Description: "Student requesting help finding mental health providers in their area",
			Keywords:    []string{"find provider", "find therapist", "need help finding", "therapy near me", "mental health provider"},
			Severity:    models.SeverityModerate,
			Category:    "provider_search",
			CommonTriggers: []string{"need ongoing support", "want professional help", "insurance coverage"},
			RecommendedResourceIDs: []string{"mindbridge_provider_network"},
			ResponseTemplates: []string{
				"I'd be happy to help you find mental health providers that match your needs and insurance.",
				"Let me help you find qualified therapists and counselors in your area.",
			},
		},
	}
}
