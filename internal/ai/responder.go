package ai

import (
	"context"
)

// Context carries the per-turn analysis signals a responder may use to shape
// its reply. All fields are optional.
type Context struct {
	Severity             string
	Categories           []string
	MatchedScenarios     []string
	RecommendedResources []string
	Emotions             []string
	CrisisDetected       bool
}

// Responder produces the conversational reply for one turn. Crisis handling
// and resource recommendations happen outside the responder; it only supplies
// supportive prose.
type Responder interface {
	Respond(ctx context.Context, userInput string, rc Context) (string, error)
}
