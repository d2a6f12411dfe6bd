package textanalysis

import (
	"regexp"
	"strings"

	"github.com/xn_chatbot/backend/internal/models"
)

// Result bundles everything the analyzer derives from one raw input.
type Result struct {
	CleanedText string
	Keywords    []string
	Severity    models.SeverityLevel
	Categories  []string
	Emotions    []string
}

type crisisPattern struct {
	re        *regexp.Regexp
	indicator string
}

type emotionFamily struct {
	name  string
	terms []string
}

// Analyzer does keyword and pattern based text analysis. It holds only fixed
// vocabulary and compiled patterns, so a single instance is safe to share.
type Analyzer struct {
	crisisKeywords        []string
	highKeywords          []string
	moderateKeywords      []string
	academicKeywords      []string
	socialKeywords        []string
	internationalKeywords []string
	selfEsteemIndicators  []string

	allKeywords     []string
	emotionFamilies []emotionFamily
	crisisPatterns  []crisisPattern

	whitespaceRe *regexp.Regexp
	stripRe      *regexp.Regexp
}

func NewAnalyzer() *Analyzer {
	a := &Analyzer{
		crisisKeywords: []string{
			"suicide", "kill myself", "killing myself", "end it all", "not worth living",
			"better off dead", "suicidal", "harm myself", "hurt myself", "end my life",
			"want to die", "wish i was dead", "no point in living", "take my life",
		},
		highKeywords: []string{
			"panic attack", "can't breathe", "overwhelming", "breakdown", "crisis",
			"emergency", "desperate", "hopeless", "trapped", "unbearable",
		},
		moderateKeywords: []string{
			"anxious", "worried", "stressed", "depressed", "sad", "lonely",
			"overwhelmed", "struggling", "difficult", "hard time", "upset",
		},
		academicKeywords: []string{
			"exam", "test", "grade", "study", "homework", "assignment", "class",
			"professor", "academic", "school", "college", "university", "semester",
		},
		socialKeywords: []string{
			"friends", "lonely", "isolated", "social", "relationship", "dating",
			"roommate", "family", "homesick", "miss home", "alone",
		},
		internationalKeywords: []string{
			"international", "foreign", "homesick", "culture", "language",
			"visa", "home country", "cultural", "adjustment", "different culture",
		},
		selfEsteemIndicators: []string{
			"confidence", "self-worth", "inadequate", "failure", "imposter",
		},
		emotionFamilies: []emotionFamily{
			{"sad", []string{"sad", "sadness", "down", "blue", "melancholy"}},
			{"anxious", []string{"anxious", "anxiety", "nervous", "worried", "tense"}},
			{"angry", []string{"angry", "mad", "furious", "irritated", "frustrated"}},
			{"lonely", []string{"lonely", "alone", "isolated", "disconnected"}},
			{"overwhelmed", []string{"overwhelmed", "swamped", "too much", "can't handle"}},
			{"hopeless", []string{"hopeless", "helpless", "stuck", "trapped", "no way out"}},
		},
		crisisPatterns: []crisisPattern{
			{regexp.MustCompile(`\b(want to|going to|plan to) (die|kill myself|end it)\b`), "suicidal_ideation"},
			{regexp.MustCompile(`\b(hurt|harm) myself\b`), "self_harm"},
			{regexp.MustCompile(`\b(no point|not worth) (living|it)\b`), "hopelessness"},
			{regexp.MustCompile(`\b(can't|cannot) (go on|continue|take it)\b`), "desperation"},
			{regexp.MustCompile(`\b(emergency|crisis|help me)\b`), "immediate_help_needed"},
		},
		whitespaceRe: regexp.MustCompile(`\s+`),
		stripRe:      regexp.MustCompile(`[^\w\s.?!,\-']`),
	}

	// Union of every family, deduplicated, insertion order kept so keyword
	// extraction is deterministic.
	seen := map[string]bool{}
	for _, set := range [][]string{
		a.crisisKeywords, a.highKeywords, a.moderateKeywords,
		a.academicKeywords, a.socialKeywords, a.internationalKeywords,
	} {
		for _, kw := range set {
			if !seen[kw] {
				seen[kw] = true
				a.allKeywords = append(a.allKeywords, kw)
			}
		}
	}
	return a
}

// Analyze runs the whole pipeline over one raw input.
func (a *Analyzer) Analyze(raw string) Result {
	cleaned := a.Clean(raw)
	keywords := a.ExtractKeywords(cleaned)
	return Result{
		CleanedText: cleaned,
		Keywords:    keywords,
		Severity:    a.AssessSeverity(cleaned, keywords),
		Categories:  a.CategorizeConcern(cleaned),
		Emotions:    a.ExtractEmotions(cleaned),
	}
}

// Clean collapses whitespace and strips everything outside word characters,
// whitespace and basic punctuation.
func (a *Analyzer) Clean(text string) string {
	text = a.whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	return a.stripRe.ReplaceAllString(text, "")
}

// ExtractKeywords returns every keyword literal contained in the text.
func (a *Analyzer) ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	var keywords []string
	for _, kw := range a.allKeywords {
		if strings.Contains(lower, kw) {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// AssessSeverity applies the precedence cascade: any crisis literal wins
// outright, two high-severity cues make HIGH, one high or two moderate cues
// make MODERATE, anything else with a keyword is LOW.
func (a *Analyzer) AssessSeverity(text string, keywords []string) models.SeverityLevel {
	lower := strings.ToLower(text)

	for _, kw := range a.crisisKeywords {
		if strings.Contains(lower, kw) {
			return models.SeverityCrisis
		}
	}

	highCount := countContained(lower, a.highKeywords)
	if highCount >= 2 {
		return models.SeverityHigh
	}

	moderateCount := countContained(lower, a.moderateKeywords)
	if moderateCount >= 2 || highCount >= 1 {
		return models.SeverityModerate
	}

	return models.SeverityLow
}

// CategorizeConcern returns every matching category tag, or the generic
// fallback when nothing matches.
func (a *Analyzer) CategorizeConcern(text string) []string {
	lower := strings.ToLower(text)
	var categories []string

	if anyContained(lower, a.academicKeywords) {
		categories = append(categories, "academic_stress")
	}
	if anyContained(lower, a.socialKeywords) {
		categories = append(categories, "social_isolation")
	}
	if anyContained(lower, a.internationalKeywords) {
		categories = append(categories, "cultural_adjustment")
	}
	if anyContained(lower, a.selfEsteemIndicators) {
		categories = append(categories, "self_esteem")
	}

	if len(categories) == 0 {
		categories = append(categories, "general_mental_health")
	}
	return categories
}

// ExtractEmotions returns the matching emotion tags.
func (a *Analyzer) ExtractEmotions(text string) []string {
	lower := strings.ToLower(text)
	var emotions []string
	for _, fam := range a.emotionFamilies {
		if anyContained(lower, fam.terms) {
			emotions = append(emotions, fam.name)
		}
	}
	return emotions
}

// DetectCrisisIndicators scans the fixed crisis phrase patterns. This is a
// second signal independent of plain keyword containment.
func (a *Analyzer) DetectCrisisIndicators(text string) (bool, []string) {
	lower := strings.ToLower(text)
	var indicators []string
	for _, p := range a.crisisPatterns {
		if p.re.MatchString(lower) {
			indicators = append(indicators, p.indicator)
		}
	}
	return len(indicators) > 0, indicators
}

func countContained(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}

func anyContained(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
