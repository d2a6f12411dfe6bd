package catalog

import (
	"sort"
	"strings"

	"github.com/xn_chatbot/backend/internal/models"
)

// ResourceCatalog holds the support resource records. Like the scenario
// catalog it is immutable after construction.
type ResourceCatalog struct {
	byID    map[string]*models.Resource
	ordered []*models.Resource
}

func NewResourceCatalog() *ResourceCatalog {
	c := &ResourceCatalog{byID: map[string]*models.Resource{}}
	for _, r := range resourceData() {
		c.byID[r.ID] = r
		c.ordered = append(c.ordered, r)
	}
	return c
}

func (c *ResourceCatalog) ByID(id string) (*models.Resource, bool) {
	r, ok := c.byID[id]
	return r, ok
}

func (c *ResourceCatalog) All() []*models.Resource {
	out := make([]*models.Resource, len(c.ordered))
	copy(out, c.ordered)
	return out
}

func (c *ResourceCatalog) CrisisResources() []*models.Resource {
	var out []*models.Resource
	for _, r := range c.ordered {
		if r.IsCrisisResource {
			out = append(out, r)
		}
	}
	return out
}

func (c *ResourceCatalog) ByType(t models.ResourceType) []*models.Resource {
	var out []*models.Resource
	for _, r := range c.ordered {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// PartnerResources returns every MindBridge Care benefit.
func (c *ResourceCatalog) PartnerResources() []*models.Resource {
	return c.ByType(models.ResourcePartnerBenefit)
}

// UniversityResources returns every Northeastern-operated resource.
func (c *ResourceCatalog) UniversityResources() []*models.Resource {
	var out []*models.Resource
	for _, r := range c.ordered {
		if strings.Contains(strings.ToLower(r.ID), "northeastern") {
			out = append(out, r)
		}
	}
	return out
}

// searchTypePriority orders search results: crisis support first, then
// counseling, partner benefits, academic, peer, wellness.
var searchTypePriority = map[models.ResourceType]int{
	models.ResourceCrisisSupport:   0,
	models.ResourceCounseling:      1,
	models.ResourcePartnerBenefit:  2,
	models.ResourceAcademicSupport: 3,
	models.ResourcePeerSupport:     4,
	models.ResourceWellness:        5,
}

// SearchByKeywords matches keywords against resource name and description
// (case-insensitive substring). includeCrisis=false filters crisis resources
// out of the candidate set before matching.
func (c *ResourceCatalog) SearchByKeywords(keywords []string, includeCrisis bool) []*models.Resource {
	var out []*models.Resource
	for _, r := range c.ordered {
		if r.IsCrisisResource && !includeCrisis {
			continue
		}
		haystack := strings.ToLower(r.Name + " " + r.Description)
		for _, kw := range keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				out = append(out, r)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, ok := searchTypePriority[out[i].Type]
		if !ok {
			pi = 6
		}
		pj, ok := searchTypePriority[out[j].Type]
		if !ok {
			pj = 6
		}
		return pi < pj
	})
	return out
}

var scenarioResourceIDs = map[string][]string{
	"academic_exam_anxiety": {"northeastern_counseling", "mindbridge_academic_coaching", "northeastern_academic_support"},
	"academic_failure_fear": {"northeastern_counseling", "mindbridge_counseling", "northeastern_academic_support"},
	"loneliness_isolation":  {"northeastern_peer_support", "mindbridge_peer_support", "northeastern_counseling"},
	"homesickness_cultural": {"northeastern_international", "mindbridge_counseling", "northeastern_counseling"},
	"low_self_esteem":       {"northeastern_counseling", "mindbridge_counseling", "northeastern_peer_support"},
	"suicidal_ideation":     {"crisis_hotline", "northeastern_emergency", "mindbridge_crisis_support"},
	"panic_attacks":         {"northeastern_counseling", "mindbridge_crisis_support", "northeastern_emergency"},
	"financial_stress":      {"northeastern_academic_support", "mindbridge_wellness_programs"},
}

// ForScenario returns the curated resource list for a scenario, falling back
// to the general counseling pair when the scenario has no curated entry.
func (c *ResourceCatalog) ForScenario(scenarioID string) []*models.Resource {
	ids, ok := scenarioResourceIDs[scenarioID]
	if !ok {
		ids = []string{"northeastern_counseling", "mindbridge_counseling"}
	}
	var out []*models.Resource
	for _, id := range ids {
		if r, found := c.byID[id]; found {
			out = append(out, r)
		}
	}
	return out
}

func resourceData() []*models.Resource {
	return []*models.Resource{
		{
			ID:               "crisis_hotline",
			Name:             "988 Suicide & Crisis Lifeline",
			Description:      "24/7 free and confidential support for people in distress",
			Type:             models.ResourceCrisisSupport,
			ContactInfo:      map[string]string{"phone": "988", "text": "Text HOME to 741741"},
			Availability:     "24/7",
			Cost:             "Free",
			IsCrisisResource: true,
		},
		{
			ID:               "northeastern_emergency",
			Name:             "Northeastern Emergency Mental Health",
			Description:      "24/7 emergency mental health support for Northeastern students",
			Type:             models.ResourceCrisisSupport,
			ContactInfo:      map[string]string{"phone": "(617) 373-3333", "location": "Northeastern University Police"},
			Availability:     "24/7",
			Cost:             "Free",
			Eligibility:      []string{"Northeastern students"},
			IsCrisisResource: true,
		},
		{
			ID:          "northeastern_counseling",
			Name:        "Northeastern University Counseling and Psychological Services (CAPS)",
			Description: "Professional counseling services for Northeastern students",
			Type:        models.ResourceCounseling,
			ContactInfo: map[string]string{
				"phone":    "(617) 373-2772",
				"location": "346 Huntington Avenue, Suite 506",
				"email":    "counseling@northeastern.edu",
			},
			Availability: "Monday-Friday 8:30 AM - 5:00 PM",
			Cost:         "Free",
			Eligibility:  []string{"Northeastern students"},
			Website:      "https://www.northeastern.edu/uhcs/caps/",
		},
		{
			ID:           "northeastern_group_therapy",
			Name:         "CAPS Group Therapy Programs",
			Description:  "Various group therapy options including anxiety, depression, and social skills groups",
			Type:         models.ResourceCounseling,
			ContactInfo:  map[string]string{"phone": "(617) 373-2772"},
			Availability: "Various times throughout semester",
			Cost:         "Free",
			Eligibility:  []string{"Northeastern students"},
		},
		{
			ID:           "northeastern_academic_support",
			Name:         "Academic Success Coaching",
			Description:  "Support for academic challenges, study skills, and time management",
			Type:         models.ResourceAcademicSupport,
			ContactInfo:  map[string]string{"phone": "(617) 373-4430", "location": "Academic Success Center"},
			Availability: "Monday-Friday 9:00 AM - 5:00 PM",
			Cost:         "Free",
			Eligibility:  []string{"Northeastern students"},
		},
		{
			ID:           "northeastern_disability_services",
			Name:         "Disability Resource Center",
			Description:  "Academic accommodations and support for students with disabilities",
			Type:         models.ResourceAcademicSupport,
			ContactInfo:  map[string]string{"phone": "(617) 373-2675", "email": "drc@northeastern.edu"},
			Availability: "Monday-Friday 8:30 AM - 5:00 PM",
			Cost:         "Free",
			Eligibility:  []string{"Northeastern students with documented disabilities"},
		},
		{
			ID:          "northeastern_international",
			Name:        "International Student & Scholar Institute (ISSI)",
			Description: "Support services specifically for international students",
			Type:        models.ResourcePeerSupport,
			ContactInfo: map[string]string{
				"phone":    "(617) 373-2310",
				"location": "Steast Hall, Suite 200",
				"email":    "issi@northeastern.edu",
			},
			Availability: "Monday-Friday 8:30 AM - 5:00 PM",
			Cost:         "Free",
			Eligibility:  []string{"International students"},
		},
		{
			ID:           "mindbridge_counseling",
			Name:         "MindBridge Care Counseling Network",
			Description:  "Access to licensed therapists and counselors through MindBridge Care",
			Type:         models.ResourcePartnerBenefit,
			ContactInfo:  map[string]string{"website": "mindbridge.care", "phone": "1-800-MINDBRIDGE"},
			Availability: "Flexible scheduling, including evenings and weekends",
			Cost:         "Covered by MindBridge Care benefits",
			Eligibility:  []string{"Students with MindBridge Care coverage"},
		},
		{
			ID:               "mindbridge_crisis_support",
			Name:             "MindBridge Care Crisis Intervention",
			Description:      "24/7 crisis support and intervention services",
			Type:             models.ResourcePartnerBenefit,
			ContactInfo:      map[string]string{"phone": "1-800-CRISIS-MB", "text": "Text CRISIS to 555-MIND"},
			Availability:     "24/7",
			Cost:             "Covered by MindBridge Care benefits",
			Eligibility:      []string{"Students with MindBridge Care coverage"},
			IsCrisisResource: true,
		},
		{
			ID:           "mindbridge_academic_coaching",
			Name:         "MindBridge Care Academic Success Coaching",
			Description:  "Personalized academic coaching and study skills development",
			Type:         models.ResourcePartnerBenefit,
			ContactInfo:  map[string]string{"website": "mindbridge.care/academic", "phone": "1-800-MINDBRIDGE"},
			Availability: "Flexible scheduling",
			Cost:         "Covered by MindBridge Care benefits",
			Eligibility:  []string{"Students with MindBridge Care coverage"},
		},
		{
			ID:           "mindbridge_peer_support",
			Name:         "MindBridge Care Peer Support Network",
			Description:  "Connect with trained peer supporters who understand college challenges",
			Type:         models.ResourcePartnerBenefit,
			ContactInfo:  map[string]string{"website": "mindbridge.care/peers", "app": "MindBridge Connect"},
			Availability: "24/7 through app, scheduled sessions available",
			Cost:         "Covered by MindBridge Care benefits",
			Eligibility:  []string{"Students with MindBridge Care coverage"},
		},
		{
			ID:           "mindbridge_wellness_programs",
			Name:         "MindBridge Care Wellness Programs",
			Description:  "Stress management, mindfulness, and wellness workshops",
			Type:         models.ResourcePartnerBenefit,
			ContactInfo:  map[string]string{"website": "mindbridge.care/wellness"},
			Availability: "Various times, online and in-person options",
			Cost:         "Covered by MindBridge Care benefits",
			Eligibility:  []string{"Students with MindBridge Care coverage"},
		},
		{
			ID:           "northeastern_peer_support",
			Name:         "Northeastern Peer Support Programs",
			Description:  "Student-led support groups and peer mentoring programs",
			Type:         models.ResourcePeerSupport,
			ContactInfo:  map[string]string{"email": "peersupport@northeastern.edu"},
			Availability: "Various times throughout week",
			Cost:         "Free",
			Eligibility:  []string{"Northeastern students"},
		},
		{
			ID:           "northeastern_wellness_center",
			Name:         "Northeastern Wellness Center",
			Description:  "Holistic wellness programs including fitness, nutrition, and stress management",
			Type:         models.ResourceWellness,
			ContactInfo:  map[string]string{"phone": "(617) 373-2772", "location": "Marino Center"},
			Availability: "Monday-Friday 6:00 AM - 11:00 PM",
			Cost:         "Free for students",
			Eligibility:  []string{"Northeastern students"},
		},
		{
			ID:               "boston_area_crisis",
			Name:             "Boston Area Crisis Services",
			Description:      "Local crisis intervention and mental health emergency services",
			Type:             models.ResourceCrisisSupport,
			ContactInfo:      map[string]string{"phone": "(617) 626-9300"},
			Availability:     "24/7",
			Cost:             "Varies by insurance",
			IsCrisisResource: true,
		},
		{
			ID:           "massachusetts_mental_health",
			Name:         "Massachusetts Mental Health Resources",
			Description:  "State-provided mental health services and resources",
			Type:         models.ResourceCounseling,
			ContactInfo:  map[string]string{"website": "mass.gov/mental-health", "phone": "211"},
			Availability: "Varies by provider",
			Cost:         "Varies by insurance and income",
		},
	}
}
