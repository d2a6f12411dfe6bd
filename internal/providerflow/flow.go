package providerflow

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xn_chatbot/backend/internal/catalog"
	"github.com/xn_chatbot/backend/internal/models"
)

// Flow is the five-step provider search sub-state-machine. The step cursor
// and the preferences scratch object live on the session's UserProfile, so
// the flow itself is stateless and shareable.
type Flow struct {
	directory *catalog.ProviderDirectory
	logger    zerolog.Logger
}

func New(directory *catalog.ProviderDirectory, logger zerolog.Logger) *Flow {
	return &Flow{directory: directory, logger: logger}
}

// Start initializes the search state on the profile and returns the opening
// prompt.
func (f *Flow) Start(profile *models.UserProfile) string {
	profile.ProviderSearchActive = true
	profile.ProviderSearchStep = models.StepLocation
	profile.SearchPreferences = models.NewUserPreferences()

	return `I'd be happy to help you find mental health providers that match your needs!

To give you the best recommendations, I'll need to ask you a few questions about:
1. **Your location** (for in-person appointments)
2. **Your insurance coverage**
3. **What type of care** you're looking for
4. **Any specific preferences** you have

Let's start: **What city or zip code are you located in?** (This helps me find providers near you)

*You can also say "telehealth only" if you prefer online appointments.*`
}

// Process advances the flow one step. The bool result reports whether the
// flow finished this turn. An unrecognized step value resets to the start
// instead of failing.
func (f *Flow) Process(profile *models.UserProfile, input string) (string, bool) {
	if profile.SearchPreferences == nil {
		profile.SearchPreferences = models.NewUserPreferences()
	}

	switch profile.ProviderSearchStep {
	case models.StepLocation:
		return f.processLocation(profile, input), false
	case models.StepInsurance:
		return f.processInsurance(profile, input), false
	case models.StepCareType:
		return f.processCareType(profile, input), false
	case models.StepSpecialties:
		return f.processSpecialties(profile, input), false
	case models.StepFinalPreferences:
		return f.processFinalPreferences(profile, input), true
	default:
		f.logger.Warn().
			Str("step", string(profile.ProviderSearchStep)).
			Msg("unknown provider search step, restarting flow")
		return f.Start(profile), false
	}
}

// Approximate coordinates for common Boston-area answers. Unrecognized input
// defaults to central Boston.
var locationTable = map[string]models.Location{
	"boston":     {City: "Boston", State: "MA", Latitude: 42.3601, Longitude: -71.0589},
	"cambridge":  {City: "Cambridge", State: "MA", Latitude: 42.3736, Longitude: -71.1097},
	"somerville": {City: "Somerville", State: "MA", Latitude: 42.3876, Longitude: -71.0995},
	"brookline":  {City: "Brookline", State: "MA", Latitude: 42.3317, Longitude: -71.1211},
	"02115":      {City: "Boston", State: "MA", ZipCode: "02115", Latitude: 42.3398, Longitude: -71.0892},
	"02116":      {City: "Boston", State: "MA", ZipCode: "02116", Latitude: 42.3505, Longitude: -71.0621},
	"02139":      {City: "Cambridge", State: "MA", ZipCode: "02139", Latitude: 42.3656, Longitude: -71.1040},
}

func parseLocation(input string) *models.Location {
	lower := strings.ToLower(strings.TrimSpace(input))
	for key, loc := range locationTable {
		if strings.Contains(lower, key) {
			l := loc
			return &l
		}
	}
	return &models.Location{City: strings.TrimSpace(input), State: "MA", Latitude: 42.3601, Longitude: -71.0589}
}

func (f *Flow) processLocation(profile *models.UserProfile, input string) string {
	prefs := profile.SearchPreferences
	lower := strings.ToLower(strings.TrimSpace(input))
	profile.ProviderSearchStep = models.StepInsurance

	if strings.Contains(lower, "telehealth") || strings.Contains(lower, "online") {
		prefs.Telehealth = models.TelehealthRequired
		return `Perfect! Since you prefer telehealth, you'll have access to providers who offer online sessions.

**What insurance do you have?** This helps me find providers that accept your coverage.

Common options:
- **MindBridge Care** (if you have this through your school)
- Blue Cross Blue Shield
- Harvard Pilgrim
- Aetna
- Cigna
- UnitedHealthcare
- No insurance / Self-pay
- Not sure

Just tell me your insurance name or say "not sure" if you need help figuring it out.`
	}

	prefs.Location = parseLocation(input)
	return fmt.Sprintf(`Great! I'll look for providers in the **%s** area.

**What insurance do you have?** This helps me find providers that accept your coverage.

Common options:
- Blue Cross Blue Shield
- Harvard Pilgrim
- Aetna
- Cigna
- UnitedHealthcare
- **MindBridge Care** (if you have this through your school)
- No insurance / Self-pay
- Not sure

Just tell me your insurance name or say "not sure" if you need help figuring it out.`, strings.TrimSpace(input))
}

// Canonical insurer names keyed by the substring users actually type.
// Ordered so the longer variants match before their prefixes.
var insuranceMappings = []struct {
	key  string
	name string
}{
	{"blue cross", "Blue Cross Blue Shield"},
	{"bcbs", "Blue Cross Blue Shield"},
	{"harvard pilgrim", "Harvard Pilgrim"},
	{"mindbridge", "MindBridge Care"},
	{"mind bridge", "MindBridge Care"},
	{"aetna", "Aetna"},
	{"cigna", "Cigna"},
	{"unitedhealthcare", "UnitedHealthcare"},
	{"united", "UnitedHealthcare"},
}

func (f *Flow) processInsurance(profile *models.UserProfile, input string) string {
	prefs := profile.SearchPreferences
	lower := strings.ToLower(strings.TrimSpace(input))

	var plan string
	for _, m := range insuranceMappings {
		if strings.Contains(lower, m.key) {
			plan = m.name
			break
		}
	}
	if plan == "" && !strings.Contains(lower, "no insurance") && !strings.Contains(lower, "self-pay") &&
		!strings.Contains(lower, "not sure") {
		plan = strings.TrimSpace(input)
	}
	prefs.InsurancePlan = plan
	profile.ProviderSearchStep = models.StepCareType

	display := plan
	if display == "" {
		display = "self-pay"
	}
	return fmt.Sprintf(`Perfect! I'll look for providers that accept **%s**.

**What type of mental health care are you looking for?**

- **Therapy/Counseling** - Talk therapy with a therapist or counselor
- **Psychiatry** - Medication evaluation and management with a psychiatrist
- **Both** - Therapy and potential medication support
- **Not sure** - I can help you figure out what might be best

What sounds most helpful for your situation?`, display)
}

func (f *Flow) processCareType(profile *models.UserProfile, input string) string {
	prefs := profile.SearchPreferences
	lower := strings.ToLower(strings.TrimSpace(input))

	switch {
	case strings.Contains(lower, "both"):
		prefs.PreferredProviderTypes = []string{"therapist", "counselor", "psychiatrist", "LCSW", "LMHC", "MD"}
	case strings.Contains(lower, "psychiatr"):
		prefs.PreferredProviderTypes = []string{"psychiatrist", "MD"}
	default:
		// Therapy, counseling, or unsure all route to talk therapy.
		prefs.PreferredProviderTypes = []string{"therapist", "counselor", "LCSW", "LMHC"}
	}
	profile.ProviderSearchStep = models.StepSpecialties

	return `Great choice!

**Are there any specific areas you'd like your provider to specialize in?** (Optional)

For example:
- Anxiety or panic attacks
- Depression
- Academic stress or performance
- Social anxiety or isolation
- Relationship issues
- Cultural adjustment or international student support
- LGBTQ+ issues
- Trauma or PTSD

You can mention multiple areas, or say "no specific preference" if you're open to a general practitioner.`
}

var specialtyKeywords = []struct {
	key       string
	specialty string
}{
	{"anxiety", "Anxiety"},
	{"panic", "Anxiety"},
	{"depression", "Depression"},
	{"academic", "Academic Stress"},
	{"stress", "Stress Management"},
	{"social", "Social Anxiety"},
	{"relationship", "Relationship Issues"},
	{"cultural", "Cultural Adjustment"},
	{"international", "International Students"},
	{"lgbtq", "LGBTQ+ Issues"},
	{"trauma", "Trauma"},
	{"ptsd", "PTSD"},
}

func (f *Flow) processSpecialties(profile *models.UserProfile, input string) string {
	prefs := profile.SearchPreferences
	lower := strings.ToLower(strings.TrimSpace(input))

	var specialties []string
	seen := map[string]bool{}
	for _, sk := range specialtyKeywords {
		if strings.Contains(lower, sk.key) && !seen[sk.specialty] {
			seen[sk.specialty] = true
			specialties = append(specialties, sk.specialty)
		}
	}
	prefs.PreferredSpecialties = specialties
	profile.ProviderSearchStep = models.StepFinalPreferences

	return `Perfect! Just a couple more quick questions:

**Do you have any preference for:**
- **Distance**: How far are you willing to travel? (e.g., "within 5 miles", "no preference")
- **Languages**: Do you need a provider who speaks a specific language?
- **Telehealth**: Do you prefer in-person, telehealth, or either?

You can answer all at once or say "no other preferences" to see your recommendations!`
}

var distanceRe = regexp.MustCompile(`(\d+)\s*mile`)

var languageNames = []string{"spanish", "mandarin", "chinese", "french", "arabic", "korean"}

func (f *Flow) processFinalPreferences(profile *models.UserProfile, input string) string {
	prefs := profile.SearchPreferences
	lower := strings.ToLower(strings.TrimSpace(input))

	if m := distanceRe.FindStringSubmatch(lower); m != nil {
		var miles int
		fmt.Sscanf(m[1], "%d", &miles)
		prefs.MaxDistanceMiles = miles
	}

	for _, lang := range languageNames {
		if strings.Contains(lower, lang) {
			prefs.PreferredLanguages = append(prefs.PreferredLanguages, capitalize(lang))
		}
	}

	if strings.Contains(lower, "telehealth") || strings.Contains(lower, "online") {
		if strings.Contains(lower, "prefer") {
			prefs.Telehealth = models.TelehealthPreferred
		} else if strings.Contains(lower, "only") {
			prefs.Telehealth = models.TelehealthRequired
		}
	} else if strings.Contains(lower, "in-person") || strings.Contains(lower, "in person") {
		prefs.Telehealth = models.TelehealthInPersonOnly
	}

	profile.ProviderSearchStep = models.StepComplete
	profile.ProviderSearchActive = false

	matches := f.directory.MatchProviders(prefs, 5)
	f.logger.Info().Int("matches", len(matches)).Msg("provider search complete")

	if len(matches) == 0 {
		return noMatchesResponse()
	}
	return matchesResponse(matches, prefs)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func matchesResponse(matches []models.ProviderMatch, prefs *models.UserPreferences) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Great! I found %d mental health providers that match your preferences:**\n\n", len(matches))

	for i, match := range matches {
		p := match.Provider
		fmt.Fprintf(&b, "**%d. %s, %s**\n", i+1, p.Name, p.Title)

		if len(p.Specialties) > 0 {
			fmt.Fprintf(&b, "   **Specializes in:** %s\n", strings.Join(p.Specialties, ", "))
		}
		switch {
		case match.DistanceMiles != nil:
			fmt.Fprintf(&b, "   **Location:** %s, %s (%.1f miles)\n", p.Location.Address, p.Location.City, *match.DistanceMiles)
		case p.Location != nil:
			fmt.Fprintf(&b, "   **Location:** %s, %s\n", p.Location.Address, p.Location.City)
		default:
			b.WriteString("   **Telehealth Only**\n")
		}
		if phone := p.ContactInfo["phone"]; phone != "" {
			fmt.Fprintf(&b, "   **Phone:** %s\n", phone)
		}
		if prefs.InsurancePlan != "" {
			for _, n := range p.InsuranceNetworks {
				if n == prefs.InsurancePlan {
					fmt.Fprintf(&b, "   **Accepts your insurance:** %s\n", prefs.InsurancePlan)
					break
				}
			}
		}
		if len(p.Languages) > 1 || (len(p.Languages) == 1 && p.Languages[0] != "English") {
			fmt.Fprintf(&b, "   **Languages:** %s\n", strings.Join(p.Languages, ", "))
		}
		if p.TelehealthAvailable {
			b.WriteString("   **Telehealth available**\n")
		}
		if p.Availability != "" {
			fmt.Fprintf(&b, "   **Availability:** %s\n", p.Availability)
		}
		if len(match.MatchReasons) > 0 {
			reasons := match.MatchReasons
			if len(reasons) > 3 {
				reasons = reasons[:3]
			}
			fmt.Fprintf(&b, "   **Why this matches:** %s\n", strings.Join(reasons, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString(`**Next Steps:**
1. **Call the provider** that seems like the best fit
2. **Mention you're a student** (many offer student rates)
3. **Ask about availability** for new patients
4. **Confirm they accept your insurance** before your first appointment

**Need immediate support?** Remember these resources are always available:
- **MindBridge Care Crisis Line:** 1-800-CRISIS-MB
- **988 Suicide & Crisis Lifeline:** Call or text 988
- **Northeastern CAPS:** (617) 373-2772

Would you like me to help you with anything else, such as questions to ask when calling providers?`)
	return b.String()
}

func noMatchesResponse() string {
	return `I wasn't able to find providers that exactly match all your preferences, but don't worry! Here are some options:

**Let's try expanding your search:**
- **Increase distance** if you specified a small radius
- **Consider telehealth** options for more flexibility
- **Try different insurance** options or ask about sliding scale fees

**Direct Resources:**
- **MindBridge Care Provider Line:** 1-800-MINDBRIDGE (they can help find in-network providers)
- **Your Insurance:** Call the number on your card for a provider directory
- **Psychology Today:** psychologytoday.com has a provider search tool

**Immediate Support:**
- **Northeastern CAPS:** (617) 373-2772 (free for students)
- **MindBridge Care Crisis Line:** 1-800-CRISIS-MB
- **988 Suicide & Crisis Lifeline:** Call or text 988

Would you like me to help you search again with different preferences?`
}
