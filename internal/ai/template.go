package ai

import (
	"context"
	"strings"
)

// TemplateResponder is the rule-based fallback. It never errors, so it is
// always safe as the last responder in a chain.
type TemplateResponder struct{}

func NewTemplateResponder() *TemplateResponder {
	return &TemplateResponder{}
}

var (
	crisisTriggers        = []string{"suicide", "kill myself", "want to die", "end it all", "harm myself"}
	academicTriggers      = []string{"exam", "test", "grade", "study", "academic", "homework"}
	socialTriggers        = []string{"lonely", "alone", "friends", "social", "isolated"}
	internationalTriggers = []string{"homesick", "home", "international", "culture", "family"}
	anxietyTriggers       = []string{"anxious", "anxiety", "worried", "stressed", "panic", "overwhelmed"}
)

func (t *TemplateResponder) Respond(_ context.Context, userInput string, rc Context) (string, error) {
	lower := strings.ToLower(userInput)

	switch {
	case rc.CrisisDetected || containsAny(lower, crisisTriggers):
		return crisisFallback, nil
	case containsAny(lower, academicTriggers):
		return academicFallback, nil
	case containsAny(lower, socialTriggers):
		return socialFallback, nil
	case containsAny(lower, internationalTriggers):
		return internationalFallback, nil
	case containsAny(lower, anxietyTriggers):
		return anxietyFallback, nil
	default:
		return generalFallback, nil
	}
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

const crisisFallback = `I'm very concerned about what you're sharing. Your safety is the most important thing right now.

**Please contact immediately:**
- **988** - Suicide & Crisis Lifeline (24/7)
- **911** - If in immediate danger
- **(617) 373-3333** - Northeastern Emergency

You are not alone, and there are people who want to help you through this.`

const academicFallback = `Academic stress is really common among college students - you're not alone in feeling this way. It sounds like you're dealing with a lot of pressure right now.

**Resources that can help:**
- **Northeastern CAPS:** (617) 373-2772 for counseling support
- **Academic Success Center:** (617) 373-4430 for study strategies
- **MindBridge Care:** 1-800-MINDBRIDGE for academic coaching

Would you like help connecting with any of these resources?`

const socialFallback = `Feeling lonely or isolated in college is more common than you might think. Many students struggle with making connections, especially in a new environment.

**Support options:**
- **Northeastern CAPS:** (617) 373-2772 for counseling
- **Peer Support Programs:** peersupport@northeastern.edu
- **MindBridge Care Peer Network:** Connect through their app

Building friendships takes time. What kind of social connections are you hoping to make?`

const internationalFallback = `Homesickness and cultural adjustment are natural parts of the international student experience. It's completely normal to miss home and feel overwhelmed by cultural differences.

**Specialized support:**
- **International Student Services:** (617) 373-2310
- **Northeastern CAPS:** (617) 373-2772 (culturally sensitive counseling)
- **MindBridge Care:** 1-800-MINDBRIDGE

Many international students find it helpful to connect with others who understand their experience. Would you like information about cultural groups or international student communities?`

const anxietyFallback = `Anxiety can feel overwhelming, but it's very treatable with the right support. What you're experiencing is valid, and there are effective ways to manage these feelings.

**Immediate support:**
- **Northeastern CAPS:** (617) 373-2772
- **MindBridge Care:** 1-800-MINDBRIDGE
- **Crisis Lifeline:** 988 (if anxiety becomes overwhelming)

In the meantime, try some grounding techniques like deep breathing or the 5-4-3-2-1 method (name 5 things you see, 4 you hear, 3 you touch, 2 you smell, 1 you taste).`

const generalFallback = `Thank you for sharing what's on your mind. It takes courage to reach out when you're struggling. Whatever you're going through, you don't have to face it alone.

**Available support:**
- **Northeastern CAPS:** (617) 373-2772
- **MindBridge Care:** 1-800-MINDBRIDGE
- **Crisis support:** 988 (available 24/7)

Would you like to tell me more about what's been bothering you? I'm here to listen and help connect you with the right resources.`
