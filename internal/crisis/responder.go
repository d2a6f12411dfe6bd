package crisis

import (
	"strings"

	"github.com/xn_chatbot/backend/internal/models"
)

// Supportive message pools. Lines are picked by fixed index so that crisis
// messaging stays predictable and testable, never randomly.
var (
	immediateSafetyLines = []string{
		"I'm very concerned about what you're sharing with me. Your safety is the most important thing right now.",
		"What you're feeling is serious, and I want to make sure you get the help you need immediately.",
		"I hear that you're in a lot of pain right now. There are people who can help you through this crisis.",
	}
	professionalHelpLines = []string{
		"This sounds like a situation where professional help is needed right away.",
		"I strongly encourage you to reach out to a crisis counselor who can provide immediate support.",
		"A trained crisis counselor can help you work through these feelings safely.",
	}
	notAloneLines = []string{
		"You are not alone in this. Many people have felt this way and found help.",
		"These feelings can be overwhelming, but they are temporary and treatable.",
		"Your life has value, and there are people who want to help you.",
	}
)

// Responder renders a CrisisAssessment into user-facing text, one fixed
// template per risk tier.
type Responder struct{}

func NewResponder() *Responder {
	return &Responder{}
}

func (r *Responder) Render(a models.CrisisAssessment) string {
	switch {
	case a.RiskLevel == models.SeverityCrisis:
		return r.renderCrisis(a)
	case a.RiskLevel == models.SeverityHigh:
		return r.renderHighRisk(a)
	default:
		return r.renderModerateRisk(a)
	}
}

func (r *Responder) renderCrisis(a models.CrisisAssessment) string {
	parts := []string{
		"**CRISIS SUPPORT NEEDED**",
		"",
		immediateSafetyLines[0],
		"",
		"**IMMEDIATE ACTIONS:**",
		"- **Call 988** (Suicide & Crisis Lifeline) - Available 24/7",
		"- **If in immediate danger, call 911**",
		"- **Northeastern Emergency:** (617) 373-3333",
		"- **MindBridge Crisis Support:** 1-800-CRISIS-MB",
		"",
		notAloneLines[0],
		"",
		"**Please reach out to one of these resources RIGHT NOW. Your safety is the priority.**",
	}
	if len(a.ImmediateActions) > 0 {
		parts = append(parts, "", "First step: "+a.ImmediateActions[0])
	}
	return strings.Join(parts, "\n")
}

func (r *Responder) renderHighRisk(a models.CrisisAssessment) string {
	parts := []string{
		"**URGENT SUPPORT RECOMMENDED**",
		"",
		"I'm concerned about what you're sharing. This sounds like you need professional support soon.",
		"",
		"**RECOMMENDED ACTIONS:**",
		"- **Call Northeastern CAPS:** (617) 373-2772",
		"- **Crisis Lifeline (if needed):** 988",
		"- **MindBridge Care:** 1-800-MINDBRIDGE",
		"",
		"**Same-day support may be available through CAPS.**",
		"",
		notAloneLines[1],
	}
	if len(a.ImmediateActions) > 0 {
		parts = append(parts, "", "First step: "+a.ImmediateActions[0])
	}
	return strings.Join(parts, "\n")
}

func (r *Responder) renderModerateRisk(a models.CrisisAssessment) string {
	parts := []string{
		"I hear that you're going through a difficult time. It's important to get support.",
		"",
		"**RECOMMENDED RESOURCES:**",
		"- **Northeastern CAPS:** (617) 373-2772",
		"- **MindBridge Care:** 1-800-MINDBRIDGE",
		"- **Crisis Lifeline (24/7):** 988",
		"",
		"Would you like help connecting with any of these resources?",
	}
	if len(a.ImmediateActions) > 0 {
		parts = append(parts, "", "First step: "+a.ImmediateActions[0])
	}
	return strings.Join(parts, "\n")
}
