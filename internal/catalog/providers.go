package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xn_chatbot/backend/internal/models"
	"github.com/xn_chatbot/backend/internal/utils"
)

// ProviderDirectory holds individual practitioners and the network resources
// that carry them. Provider records are shared by pointer across networks,
// so a directory-wide update would be visible through every network.
type ProviderDirectory struct {
	providers []*models.Provider
	byID      map[string]*models.Provider
	networks  []*models.Resource
}

func NewProviderDirectory() *ProviderDirectory {
	d := &ProviderDirectory{byID: map[string]*models.Provider{}}
	for _, p := range providerData() {
		d.providers = append(d.providers, p)
		d.byID[p.ID] = p
	}
	d.networks = d.buildNetworks()
	return d
}

func (d *ProviderDirectory) buildNetworks() []*models.Resource {
	all := make([]*models.Provider, len(d.providers))
	copy(all, d.providers)

	// The consortium lists only providers with a physical office.
	var inPerson []*models.Provider
	for _, p := range d.providers {
		if p.Location != nil {
			inPerson = append(inPerson, p)
		}
	}

	return []*models.Resource{
		{
			ID:          "mindbridge_provider_network",
			Name:        "MindBridge Care Provider Network",
			Description: "Network of licensed mental health professionals covered by MindBridge Care",
			Type:        models.ResourcePartnerBenefit,
			ContactInfo: map[string]string{
				"phone":   "1-800-MINDBRIDGE",
				"website": "mindbridge.care/find-provider",
			},
			Availability:        "Flexible scheduling, including evenings and weekends",
			Cost:                "Covered by MindBridge Care benefits",
			Eligibility:         []string{"Students with MindBridge Care coverage"},
			ServiceArea:         []string{"Boston", "Cambridge", "Somerville", "Brookline", "Newton"},
			TelehealthAvailable: true,
			InsuranceNetworks:   []string{"MindBridge Care"},
			Providers:           all,
		},
		{
			ID:          "boston_mental_health_consortium",
			Name:        "Boston Area Mental Health Consortium",
			Description: "Collaborative network of mental health providers in the Boston area",
			Type:        models.ResourceCounseling,
			ContactInfo: map[string]string{
				"phone":   "(617) 555-BMHC",
				"website": "bostonmentalhealth.org",
			},
			Availability:        "Varies by provider",
			Cost:                "Varies by insurance",
			ServiceArea:         []string{"Boston", "Cambridge", "Somerville", "Brookline"},
			TelehealthAvailable: true,
			InsuranceNetworks:   []string{"Blue Cross Blue Shield", "Harvard Pilgrim", "Aetna", "Cigna"},
			Providers:           inPerson,
		},
	}
}

func (d *ProviderDirectory) ByID(id string) (*models.Provider, bool) {
	p, ok := d.byID[id]
	return p, ok
}

func (d *ProviderDirectory) Networks() []*models.Resource {
	out := make([]*models.Resource, len(d.networks))
	copy(out, d.networks)
	return out
}

func (d *ProviderDirectory) BySpecialty(specialty string) []*models.Provider {
	var out []*models.Provider
	for _, p := range d.providers {
		for _, s := range p.Specialties {
			if strings.EqualFold(s, specialty) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func (d *ProviderDirectory) ByInsurance(insurance string) []*models.Provider {
	var out []*models.Provider
	for _, p := range d.providers {
		for _, n := range p.InsuranceNetworks {
			if n == insurance {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func (d *ProviderDirectory) TelehealthProviders() []*models.Provider {
	var out []*models.Provider
	for _, p := range d.providers {
		if p.TelehealthAvailable {
			out = append(out, p)
		}
	}
	return out
}

// Distance returns miles between two locations, or false when either side is
// missing coordinates.
func Distance(a, b *models.Location) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if (a.Latitude == 0 && a.Longitude == 0) || (b.Latitude == 0 && b.Longitude == 0) {
		return 0, false
	}
	return utils.HaversineMiles(a.Latitude, a.Longitude, b.Latitude, b.Longitude), true
}

// MatchProviders scores every provider slot across all networks against the
// preferences. Insurance, max distance, and telehealth requirements are hard
// filters; everything else is additive scoring. Candidates scoring 10 or
// below are dropped. A provider appearing in several networks is scored once
// per network, matching the directory's network-centric view.
func (d *ProviderDirectory) MatchProviders(prefs *models.UserPreferences, maxResults int) []models.ProviderMatch {
	var matches []models.ProviderMatch

	for _, network := range d.networks {
		for _, provider := range network.Providers {
			score := 0.0
			var reasons []string
			var distance *float64

			if prefs.InsurancePlan != "" {
				if !containsString(provider.InsuranceNetworks, prefs.InsurancePlan) {
					continue
				}
				score += 30
				reasons = append(reasons, fmt.Sprintf("Accepts %s", prefs.InsurancePlan))
			}

			if prefs.Location != nil && provider.Location != nil {
				if miles, ok := Distance(prefs.Location, provider.Location); ok {
					if prefs.MaxDistanceMiles > 0 {
						if miles > float64(prefs.MaxDistanceMiles) {
							continue
						}
						score += 25 - (miles/float64(prefs.MaxDistanceMiles))*10
					} else {
						score += max0(15 - miles*0.5)
					}
					reasons = append(reasons, fmt.Sprintf("%.1f miles away", miles))
					m := miles
					distance = &m
				}
			}

			switch prefs.Telehealth {
			case models.TelehealthRequired:
				if !provider.TelehealthAvailable {
					continue
				}
			case models.TelehealthInPersonOnly:
				if provider.Location == nil {
					continue
				}
			case models.TelehealthPreferred:
				if provider.TelehealthAvailable {
					score += 10
					reasons = append(reasons, "Offers telehealth")
				}
			}

			if len(prefs.PreferredSpecialties) > 0 {
				shared := intersect(prefs.PreferredSpecialties, provider.Specialties)
				if len(shared) > 0 {
					score += float64(len(shared)) * 15
					reasons = append(reasons, "Specializes in: "+strings.Join(shared, ", "))
				}
			}

			if len(prefs.PreferredLanguages) > 0 {
				shared := intersect(prefs.PreferredLanguages, provider.Languages)
				if len(shared) > 0 {
					score += float64(len(shared)) * 10
					reasons = append(reasons, "Speaks: "+strings.Join(shared, ", "))
				}
			}

			for _, prefType := range prefs.PreferredProviderTypes {
				if strings.Contains(strings.ToLower(provider.Title), strings.ToLower(prefType)) {
					score += 15
					reasons = append(reasons, "Matches preferred type: "+prefType)
				}
			}

			if provider.AcceptingNewPatients {
				score += 5
				reasons = append(reasons, "Accepting new patients")
			}

			if score <= 10 {
				continue
			}
			matches = append(matches, models.ProviderMatch{
				Provider:      provider,
				Resource:      network,
				MatchScore:    score,
				MatchReasons:  reasons,
				DistanceMiles: distance,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// intersect keeps the order of the first slice.
func intersect(a, b []string) []string {
	var out []string
	for _, x := range a {
		if containsString(b, x) {
			out = append(out, x)
		}
	}
	return out
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func providerData() []*models.Provider {
	return []*models.Provider{
		{
			ID:                "dr_sarah_chen",
			Name:              "Dr. Sarah Chen",
			Title:             "Licensed Clinical Social Worker (LCSW)",
			Specialties:       []string{"Anxiety", "Depression", "Academic Stress", "Young Adults"},
			InsuranceNetworks: []string{"Blue Cross Blue Shield", "Aetna", "Harvard Pilgrim", "MindBridge Care"},
			Location: &models.Location{
				Address:   "123 Boylston Street, Suite 400",
				City:      "Boston",
				State:     "MA",
				ZipCode:   "02116",
				Latitude:  42.3505,
				Longitude: -71.0621,
			},
			ContactInfo: map[string]string{
				"phone": "(617) 555-0123",
				"email": "schen@bostontherapy.com",
			},
			Availability:         "Monday-Friday 9 AM - 6 PM, some evening appointments",
			Languages:            []string{"English", "Mandarin"},
			TelehealthAvailable:  true,
			AcceptingNewPatients: true,
		},
		{
			ID:                "dr_michael_rodriguez",
			Name:              "Dr. Michael Rodriguez",
			Title:             "Psychiatrist (MD)",
			Specialties:       []string{"Depression", "Anxiety", "ADHD", "Medication Management"},
			InsuranceNetworks: []string{"Blue Cross Blue Shield", "Cigna", "UnitedHealthcare", "MindBridge Care"},
			Location: &models.Location{
				Address:   "456 Commonwealth Avenue",
				City:      "Boston",
				State:     "MA",
				ZipCode:   "02215",
				Latitude:  42.3505,
				Longitude: -71.0956,
			},
			ContactInfo: map[string]string{
				"phone": "(617) 555-0456",
				"email": "mrodriguez@bostonpsych.com",
			},
			Availability:         "Tuesday-Thursday 10 AM - 4 PM",
			Languages:            []string{"English", "Spanish"},
			TelehealthAvailable:  true,
			AcceptingNewPatients: true,
		},
		{
			ID:                "lisa_thompson",
			Name:              "Lisa Thompson",
			Title:             "Licensed Mental Health Counselor (LMHC)",
			Specialties:       []string{"Social Anxiety", "Relationship Issues", "International Students", "Cultural Adjustment"},
			InsuranceNetworks: []string{"Harvard Pilgrim", "Tufts Health Plan", "MindBridge Care"},
			Location: &models.Location{
				Address:   "789 Huntington Avenue, Suite 200",
				City:      "Boston",
				State:     "MA",
				ZipCode:   "02115",
				Latitude:  42.3398,
				Longitude: -71.0892,
			},
			ContactInfo: map[string]string{
				"phone": "(617) 555-0789",
				"email": "lthompson@culturalcounseling.com",
			},
			Availability:         "Monday, Wednesday, Friday 11 AM - 7 PM",
			Languages:            []string{"English", "French", "Arabic"},
			TelehealthAvailable:  true,
			AcceptingNewPatients: true,
		},
		{
			ID:                "dr_james_kim",
			Name:              "Dr. James Kim",
			Title:             "Clinical Psychologist (PhD)",
			Specialties:       []string{"Academic Performance", "Test Anxiety", "Perfectionism", "Stress Management"},
			InsuranceNetworks: []string{"Blue Cross Blue Shield", "Aetna", "MindBridge Care"},
			Location: &models.Location{
				Address:   "321 Newbury Street, Floor 3",
				City:      "Boston",
				State:     "MA",
				ZipCode:   "02115",
				Latitude:  42.3505,
				Longitude: -71.0821,
			},
			ContactInfo: map[string]string{
				"phone": "(617) 555-0321",
				"email": "jkim@academicwellness.com",
			},
			Availability:         "Monday-Friday 8 AM - 5 PM",
			Languages:            []string{"English", "Korean"},
			TelehealthAvailable:  false,
			AcceptingNewPatients: true,
		},
		{
			ID:                "dr_emily_watson",
			Name:              "Dr. Emily Watson",
			Title:             "Licensed Clinical Social Worker (LCSW)",
			Specialties:       []string{"Depression", "Trauma", "LGBTQ+ Issues", "Young Adults"},
			InsuranceNetworks: []string{"Harvard Pilgrim", "Blue Cross Blue Shield", "MindBridge Care"},
			Location: &models.Location{
				Address:   "567 Massachusetts Avenue",
				City:      "Cambridge",
				State:     "MA",
				ZipCode:   "02139",
				Latitude:  42.3656,
				Longitude: -71.1040,
			},
			ContactInfo: map[string]string{
				"phone": "(617) 555-0567",
				"email": "ewatson@cambridgecounseling.com",
			},
			Availability:         "Tuesday-Saturday 10 AM - 8 PM",
			Languages:            []string{"English"},
			TelehealthAvailable:  true,
			AcceptingNewPatients: true,
		},
		{
			ID:                "dr_maria_gonzalez",
			Name:              "Dr. Maria Gonzalez",
			Title:             "Licensed Professional Counselor (LPC)",
			Specialties:       []string{"Anxiety", "Depression", "Bilingual Therapy", "Family Issues"},
			InsuranceNetworks: []string{"MindBridge Care", "Aetna", "Cigna"},
			Location:          nil,
			ContactInfo: map[string]string{
				"phone":   "(800) 555-TELE",
				"email":   "mgonzalez@teletherapy.com",
				"website": "teletherapy.com/maria-gonzalez",
			},
			Availability:         "Monday-Friday 7 AM - 9 PM, Saturday 9 AM - 5 PM",
			Languages:            []string{"English", "Spanish"},
			TelehealthAvailable:  true,
			AcceptingNewPatients: true,
		},
	}
}
