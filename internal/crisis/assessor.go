package crisis

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xn_chatbot/backend/internal/models"
	"github.com/xn_chatbot/backend/internal/textanalysis"
)

type keywordFamily struct {
	name    string
	phrases []string
}

// Assessor turns one input (plus optional conversation history) into a
// CrisisAssessment. Pure over its inputs; no I/O.
type Assessor struct {
	analyzer *textanalysis.Analyzer
	logger   zerolog.Logger
	families []keywordFamily
	now      func() time.Time
}

func NewAssessor(analyzer *textanalysis.Analyzer, logger zerolog.Logger) *Assessor {
	return &Assessor{
		analyzer: analyzer,
		logger:   logger,
		now:      time.Now,
		families: []keywordFamily{
			{"immediate_danger", []string{
				"kill myself", "killing myself", "end my life", "suicide", "want to die",
				"better off dead", "not worth living", "end it all", "take my life",
			}},
			{"self_harm", []string{
				"hurt myself", "harm myself", "cut myself", "self-harm",
				"hurting myself", "harming myself",
			}},
			{"hopelessness", []string{
				"no point", "hopeless", "helpless", "trapped", "no way out",
				"can't go on", "give up", "nothing matters",
			}},
			{"emergency_requests", []string{
				"emergency", "crisis", "help me", "need help now", "urgent",
			}},
		},
	}
}

// AssessRisk scans the keyword families in fixed order; escalation is only
// ever upward. History can force CRISIS but never lowers a verdict from the
// current turn.
func (a *Assessor) AssessRisk(text string, history []string) models.CrisisAssessment {
	lower := strings.ToLower(text)
	risk := models.SeverityLow
	var indicators []string

	for _, fam := range a.families {
		for _, phrase := range fam.phrases {
			if !strings.Contains(lower, phrase) {
				continue
			}
			indicators = append(indicators, fmt.Sprintf("%s: %s", fam.name, phrase))
			switch {
			case fam.name == "immediate_danger":
				risk = models.SeverityCrisis
			case fam.name == "self_harm" && risk != models.SeverityCrisis:
				risk = models.SeverityHigh
			case risk == models.SeverityLow:
				risk = models.SeverityModerate
			}
		}
	}

	if matched, patternIndicators := a.analyzer.DetectCrisisIndicators(text); matched {
		indicators = append(indicators, patternIndicators...)
		if risk == models.SeverityLow {
			risk = models.SeverityHigh
		}
	}

	if len(history) > 0 {
		recent := history
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		joined := strings.Join(recent, " ")
		if a.analyzer.AssessSeverity(joined, a.analyzer.ExtractKeywords(joined)) == models.SeverityCrisis {
			risk = models.SeverityCrisis
		}
	}

	assessment := models.CrisisAssessment{
		RiskLevel:                     risk,
		DetectedIndicators:            indicators,
		ImmediateActions:              immediateActions(risk),
		RecommendedContacts:           recommendedContacts(risk),
		RequiresImmediateIntervention: risk == models.SeverityCrisis,
		Timestamp:                     a.now(),
	}

	if risk >= models.SeverityHigh {
		a.logger.Warn().
			Str("risk_level", risk.String()).
			Int("indicators", len(indicators)).
			Msg("crisis risk detected")
	}
	return assessment
}

func immediateActions(risk models.SeverityLevel) []string {
	switch risk {
	case models.SeverityCrisis:
		return []string{
			"Contact crisis hotline immediately (988)",
			"If in immediate danger, call 911",
			"Reach out to Northeastern emergency services: (617) 373-3333",
			"Contact MindBridge Care crisis support: 1-800-CRISIS-MB",
			"Stay with someone you trust or go to emergency room",
		}
	case models.SeverityHigh:
		return []string{
			"Contact Northeastern CAPS: (617) 373-2772",
			"Call 988 if thoughts become more intense",
			"Reach out to MindBridge Care counseling",
			"Talk to a trusted friend, family member, or advisor",
			"Consider visiting CAPS for same-day consultation",
		}
	case models.SeverityModerate:
		return []string{
			"Schedule appointment with Northeastern CAPS",
			"Contact MindBridge Care for counseling support",
			"Reach out to peer support resources",
			"Practice self-care and stress management techniques",
		}
	default:
		return []string{
			"Consider talking to a counselor about your concerns",
			"Contact MindBridge Care wellness programs",
			"Connect with peer support groups",
		}
	}
}

func recommendedContacts(risk models.SeverityLevel) []string {
	switch risk {
	case models.SeverityCrisis:
		return []string{
			"988 - Suicide & Crisis Lifeline (24/7)",
			"911 - Emergency Services",
			"(617) 373-3333 - Northeastern Emergency",
			"1-800-CRISIS-MB - MindBridge Crisis Support",
		}
	case models.SeverityHigh:
		return []string{
			"988 - Suicide & Crisis Lifeline (24/7)",
			"(617) 373-2772 - Northeastern CAPS",
			"1-800-MINDBRIDGE - MindBridge Care",
			"(617) 373-3333 - Northeastern Emergency (if needed)",
		}
	default:
		return []string{
			"(617) 373-2772 - Northeastern CAPS",
			"1-800-MINDBRIDGE - MindBridge Care",
			"988 - Crisis Lifeline (if needed)",
		}
	}
}

// SafetyPlanSuggestions returns the fixed safety planning checklist.
func SafetyPlanSuggestions() []string {
	return []string{
		"Identify warning signs when you're starting to feel worse",
		"List people you can contact when you need support",
		"Remove or secure items that could be used for self-harm",
		"Identify safe places you can go during difficult times",
		"List activities that help you feel better or distract you",
		"Write down professional contacts and crisis numbers",
		"Practice grounding techniques (5-4-3-2-1 sensory method)",
		"Keep a list of reasons for living and future goals",
	}
}
