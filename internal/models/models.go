package models

import "time"

// SeverityLevel is the ordinal distress classification assigned per user turn.
// The numeric ordering is relied on for max-severity aggregation.
type SeverityLevel int

const (
	SeverityLow SeverityLevel = iota
	SeverityModerate
	SeverityHigh
	SeverityCrisis
)

func (s SeverityLevel) String() string {
	switch s {
	case SeverityCrisis:
		return "crisis"
	case SeverityHigh:
		return "high"
	case SeverityModerate:
		return "moderate"
	default:
		return "low"
	}
}

type ResourceType string

const (
	ResourceCounseling      ResourceType = "counseling"
	ResourceCrisisSupport   ResourceType = "crisis_support"
	ResourceAcademicSupport ResourceType = "academic_support"
	ResourcePeerSupport     ResourceType = "peer_support"
	ResourceWellness        ResourceType = "wellness"
	ResourcePartnerBenefit  ResourceType = "partner_benefit"
)

type ResponseType string

const (
	ResponseGeneral                ResponseType = "general"
	ResponseCrisis                 ResponseType = "crisis"
	ResponseUrgentSupport          ResponseType = "urgent_support"
	ResponseResourceRecommendation ResponseType = "resource_recommendation"
)

// Scenario is a predefined situation template matched against user input.
// Loaded once at startup, never mutated.
type Scenario struct {
	ID                     string        `json:"id"`
	Title                  string        `json:"title"`
	Description            string        `json:"description"`
	Keywords               []string      `json:"keywords"`
	Severity               SeverityLevel `json:"severity"`
	Category               string        `json:"category"`
	CommonTriggers         []string      `json:"common_triggers,omitempty"`
	RecommendedResourceIDs []string      `json:"recommended_resources,omitempty"`
	ResponseTemplates      []string      `json:"response_templates,omitempty"`
}

type Location struct {
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	ZipCode   string  `json:"zip_code,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Provider is an individual practitioner record. Providers are shared by
// reference: the same *Provider may be embedded in several Resource networks.
type Provider struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	Title                string            `json:"title"`
	Specialties          []string          `json:"specialties,omitempty"`
	InsuranceNetworks    []string          `json:"insurance_networks,omitempty"`
	Location             *Location         `json:"location,omitempty"`
	ContactInfo          map[string]string `json:"contact_info,omitempty"`
	Availability         string            `json:"availability,omitempty"`
	Languages            []string          `json:"languages"`
	TelehealthAvailable  bool              `json:"telehealth_available"`
	AcceptingNewPatients bool              `json:"accepting_new_patients"`
}

type Resource struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Description         string            `json:"description"`
	Type                ResourceType      `json:"resource_type"`
	ContactInfo         map[string]string `json:"contact_info,omitempty"`
	Availability        string            `json:"availability,omitempty"`
	Cost                string            `json:"cost,omitempty"`
	Eligibility         []string          `json:"eligibility,omitempty"`
	Website             string            `json:"website,omitempty"`
	IsCrisisResource    bool              `json:"is_crisis_resource"`
	Location            *Location         `json:"location,omitempty"`
	InsuranceNetworks   []string          `json:"insurance_networks,omitempty"`
	Providers           []*Provider       `json:"providers,omitempty"`
	ServiceArea         []string          `json:"service_area,omitempty"`
	TelehealthAvailable bool              `json:"telehealth_available"`
}

// UserMessage is one turn of input, immutable after creation.
type UserMessage struct {
	Content            string        `json:"content"`
	Timestamp          time.Time     `json:"timestamp"`
	DetectedKeywords   []string      `json:"detected_keywords,omitempty"`
	Severity           SeverityLevel `json:"severity"`
	MatchedScenarioIDs []string      `json:"matched_scenarios,omitempty"`
}

type BotResponse struct {
	Content                   string       `json:"content"`
	Timestamp                 time.Time    `json:"timestamp"`
	Type                      ResponseType `json:"response_type"`
	RecommendedResourceIDs    []string     `json:"recommended_resources,omitempty"`
	FollowUpQuestions         []string     `json:"follow_up_questions,omitempty"`
	RequiresHumanIntervention bool         `json:"requires_human_intervention"`
}

type TelehealthPreference string

const (
	TelehealthNoPreference TelehealthPreference = "no_preference"
	TelehealthRequired     TelehealthPreference = "required"
	TelehealthPreferred    TelehealthPreference = "preferred"
	TelehealthInPersonOnly TelehealthPreference = "in_person_only"
)

// UserPreferences is the scratch object the provider recommendation flow
// fills in step by step. Fields are only ever added, never cleared.
type UserPreferences struct {
	Location               *Location            `json:"location,omitempty"`
	InsurancePlan          string               `json:"insurance_plan,omitempty"`
	PreferredProviderTypes []string             `json:"preferred_provider_type,omitempty"`
	PreferredSpecialties   []string             `json:"preferred_specialties,omitempty"`
	PreferredLanguages     []string             `json:"preferred_languages"`
	Telehealth             TelehealthPreference `json:"telehealth_preference"`
	MaxDistanceMiles       int                  `json:"max_distance_miles,omitempty"`
}

func NewUserPreferences() *UserPreferences {
	return &UserPreferences{
		PreferredLanguages: []string{"English"},
		Telehealth:         TelehealthNoPreference,
	}
}

type ProviderMatch struct {
	Provider      *Provider `json:"provider"`
	Resource      *Resource `json:"resource"`
	MatchScore    float64   `json:"match_score"`
	MatchReasons  []string  `json:"match_reasons,omitempty"`
	DistanceMiles *float64  `json:"distance_miles,omitempty"`
}

type ProviderSearchStep string

const (
	StepNone             ProviderSearchStep = ""
	StepLocation         ProviderSearchStep = "location_collection"
	StepInsurance        ProviderSearchStep = "insurance_collection"
	StepCareType         ProviderSearchStep = "care_type_collection"
	StepSpecialties      ProviderSearchStep = "specialties_collection"
	StepFinalPreferences ProviderSearchStep = "final_preferences"
	StepComplete         ProviderSearchStep = "complete"
)

// UserProfile holds per-session derived state. Every field the conversation
// manager or provider flow reads or writes is named here; there is no
// open-ended scratch map.
type UserProfile struct {
	IsInternational       bool                 `json:"is_international,omitempty"`
	HighRisk              bool                 `json:"high_risk,omitempty"`
	PrimaryConcerns       []string             `json:"primary_concerns,omitempty"`
	AskedQuestions        map[string]bool      `json:"asked_questions,omitempty"`
	ProviderSearchActive  bool                 `json:"provider_search_active,omitempty"`
	ProviderSearchStep    ProviderSearchStep   `json:"provider_search_step,omitempty"`
	ProviderSearchOffered bool                 `json:"provider_search_offered,omitempty"`
	SearchPreferences     *UserPreferences     `json:"search_preferences,omitempty"`
	LastActivity          time.Time            `json:"last_activity,omitempty"`
	MessageCount          int                  `json:"message_count,omitempty"`
}

// ConversationSession is the aggregate root for one conversation. Responses
// are index-aligned 1:1 with Messages.
type ConversationSession struct {
	SessionID              string        `json:"session_id"`
	StartTime              time.Time     `json:"start_time"`
	Messages               []UserMessage `json:"messages"`
	Responses              []BotResponse `json:"responses"`
	Profile                UserProfile   `json:"user_profile"`
	IdentifiedConcerns     []string      `json:"identified_concerns,omitempty"`
	RecommendedResourceIDs []string      `json:"recommended_resources,omitempty"`
	CrisisFlags            []string      `json:"crisis_flags,omitempty"`
	IsActive               bool          `json:"is_active"`
}

// CrisisAssessment is the per-turn risk verdict.
type CrisisAssessment struct {
	RiskLevel                     SeverityLevel `json:"risk_level"`
	DetectedIndicators            []string      `json:"detected_indicators,omitempty"`
	ImmediateActions              []string      `json:"immediate_actions,omitempty"`
	RecommendedContacts           []string      `json:"recommended_contacts,omitempty"`
	RequiresImmediateIntervention bool          `json:"requires_immediate_intervention"`
	Timestamp                     time.Time     `json:"timestamp"`
}

type Recommendation struct {
	ResourceID      string   `json:"resource_id"`
	ResourceName    string   `json:"resource_name"`
	RelevanceScore  float64  `json:"relevance_score"`
	Reasoning       string   `json:"reasoning"`
	Priority        int      `json:"priority"`
	IsImmediate     bool     `json:"is_immediate"`
	FollowUpActions []string `json:"follow_up_actions,omitempty"`
}
