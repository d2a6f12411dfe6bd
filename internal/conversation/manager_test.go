package conversation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/xn_chatbot/backend/internal/ai"
	"github.com/xn_chatbot/backend/internal/catalog"
	"github.com/xn_chatbot/backend/internal/crisis"
	"github.com/xn_chatbot/backend/internal/matcher"
	"github.com/xn_chatbot/backend/internal/providerflow"
	"github.com/xn_chatbot/backend/internal/textanalysis"
)

func newTestManager() *Manager {
	logger := zerolog.Nop()
	analyzer := textanalysis.NewAnalyzer()
	m := matcher.New(
		analyzer,
		crisis.NewAssessor(analyzer, logger),
		catalog.NewScenarioCatalog(),
		catalog.NewResourceCatalog(),
		logger,
	)
	flow := providerflow.New(catalog.NewProviderDirectory(), logger)
	return NewManager(m, crisis.NewResponder(), ai.NewTemplateResponder(), flow, FirstSelection{}, logger)
}

func TestProcessMessageCrisis(t *testing.T) {
	mgr := newTestManager()
	id := mgr.StartSession()

	resp, isCrisis := mgr.ProcessMessage(context.Background(),
		id, "I can't take this anymore. I've been thinking about killing myself. Everything feels hopeless")
	if !isCrisis {
		t.Fatalf("expected crisis path")
	}
	if !strings.Contains(resp, "988") {
		t.Fatalf("crisis response missing lifeline number:\n%s", resp)
	}

	sum, ok := mgr.GetSessionSummary(id)
	if !ok {
		t.Fatalf("expected summary")
	}
	if len(sum.CrisisFlags) == 0 {
		t.Fatalf("expected crisis flags on session")
	}
	if sum.HighestSeverity != "crisis" {
		t.Fatalf("expected crisis severity, got %s", sum.HighestSeverity)
	}

	history := mgr.GetConversationHistory(id, 10)
	if len(history) != 2 || history[1].ResponseType != "crisis" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestProcessMessageLonely(t *testing.T) {
	mgr := newTestManager()
	id := mgr.StartSession()

	resp, isCrisis := mgr.ProcessMessage(context.Background(),
		id, "I feel so lonely and isolated, I have no friends here")
	if isCrisis {
		t.Fatalf("loneliness should not be a crisis")
	}
	if !strings.Contains(resp, "**Recommended Resources:**") {
		t.Fatalf("response missing recommendations:\n%s", resp)
	}
	if !strings.Contains(resp, "How long have you been feeling lonely?") {
		t.Fatalf("response missing the follow-up question:\n%s", resp)
	}

	sum, _ := mgr.GetSessionSummary(id)
	if !containsString(sum.IdentifiedConcerns, "social_isolation") {
		t.Fatalf("expected social_isolation concern, got %v", sum.IdentifiedConcerns)
	}
	if !containsString(sum.RecommendedResources, "northeastern_peer_support") {
		t.Fatalf("expected peer support resource, got %v", sum.RecommendedResources)
	}
}

func TestContextRetention(t *testing.T) {
	mgr := newTestManager()
	id := mgr.StartSession()
	ctx := context.Background()

	mgr.ProcessMessage(ctx, id, "I'm stressed about my exams and grades")
	sum, _ := mgr.GetSessionSummary(id)
	if len(sum.Profile.PrimaryConcerns) != 1 || sum.Profile.PrimaryConcerns[0] != "academic_stress" {
		t.Fatalf("expected academic_stress as primary concern, got %v", sum.Profile.PrimaryConcerns)
	}

	// Same topic, no escalation: established concerns must not churn.
	mgr.ProcessMessage(ctx, id, "the exam stress is really bad this week")
	sum, _ = mgr.GetSessionSummary(id)
	if len(sum.Profile.PrimaryConcerns) != 1 || sum.Profile.PrimaryConcerns[0] != "academic_stress" {
		t.Fatalf("primary concerns changed: %v", sum.Profile.PrimaryConcerns)
	}
}

func TestFollowUpsStopAfterEarlyTurns(t *testing.T) {
	mgr := newTestManager()
	id := mgr.StartSession()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mgr.ProcessMessage(ctx, id, "classes have been hard lately")
	}
	history := mgr.GetConversationHistory(id, 20)
	last := history[len(history)-1]
	for _, q := range append(genericFollowUps, categoryFollowUps["academic_stress"]...) {
		if strings.Contains(last.Content, q) {
			t.Fatalf("late turn should not append follow-up questions:\n%s", last.Content)
		}
	}
}

func TestProviderTriggerStartsFlow(t *testing.T) {
	mgr := newTestManager()
	id := mgr.StartSession()
	ctx := context.Background()

	resp, _ := mgr.ProcessMessage(ctx, id, "I think I need therapy near me")
	if !strings.Contains(resp, "What city or zip code") {
		t.Fatalf("expected location prompt:\n%s", resp)
	}
	sum, _ := mgr.GetSessionSummary(id)
	if !sum.Profile.ProviderSearchActive || !sum.Profile.ProviderSearchOffered {
		t.Fatalf("provider search state not set: %+v", sum.Profile)
	}

	resp, _ = mgr.ProcessMessage(ctx, id, "Boston")
	if !strings.Contains(resp, "What insurance do you have?") {
		t.Fatalf("expected insurance prompt:\n%s", resp)
	}
	mgr.ProcessMessage(ctx, id, "I have Aetna")
	mgr.ProcessMessage(ctx, id, "therapy")
	mgr.ProcessMessage(ctx, id, "anxiety would be helpful")
	resp, _ = mgr.ProcessMessage(ctx, id, "no other preferences")
	if !strings.Contains(resp, "**Next Steps:**") {
		t.Fatalf("expected provider matches:\n%s", resp)
	}

	sum, _ = mgr.GetSessionSummary(id)
	if sum.Profile.ProviderSearchActive {
		t.Fatalf("flow should be complete")
	}
	history := mgr.GetConversationHistory(id, 2)
	if history[len(history)-1].ResponseType != "resource_recommendation" {
		t.Fatalf("final flow response should be a resource recommendation")
	}
}

func TestImplicitProviderOffer(t *testing.T) {
	mgr := newTestManager()
	id := mgr.StartSession()
	ctx := context.Background()

	mgr.ProcessMessage(ctx, id, "I'm feeling really overwhelmed and stressed lately")
	mgr.ProcessMessage(ctx, id, "still overwhelmed and worried about everything")
	resp, _ := mgr.ProcessMessage(ctx, id, "yeah it's been a really stressful and overwhelming semester")
	if !strings.Contains(resp, "What city or zip code") {
		t.Fatalf("expected provider search offer on third sustained-concern turn:\n%s", resp)
	}

	sum, _ := mgr.GetSessionSummary(id)
	if !sum.Profile.ProviderSearchOffered {
		t.Fatalf("offer flag not set")
	}
}

func TestStartProviderSearchDirect(t *testing.T) {
	mgr := newTestManager()
	id := mgr.StartSession()

	resp := mgr.StartProviderSearch(id)
	if !strings.Contains(resp, "What city or zip code") {
		t.Fatalf("expected location prompt:\n%s", resp)
	}
	sum, _ := mgr.GetSessionSummary(id)
	if !sum.Profile.ProviderSearchActive {
		t.Fatalf("flow should be active")
	}
	if sum.ResponseCount != 0 {
		t.Fatalf("direct start should not add a bot response, got %d", sum.ResponseCount)
	}
}

func TestUnknownSessionAutoCreated(t *testing.T) {
	mgr := newTestManager()
	resp, _ := mgr.ProcessMessage(context.Background(), "never-seen-before", "hello there")
	if resp == "" {
		t.Fatalf("expected a response for an unknown session id")
	}
	if _, ok := mgr.GetSessionSummary("never-seen-before"); !ok {
		t.Fatalf("session should have been created under the supplied id")
	}
}

func TestSummaryUnknownSession(t *testing.T) {
	mgr := newTestManager()
	if _, ok := mgr.GetSessionSummary("nope"); ok {
		t.Fatalf("expected no summary for unknown session")
	}
}

func TestSummaryReadOnly(t *testing.T) {
	mgr := newTestManager()
	id := mgr.StartSession()
	mgr.ProcessMessage(context.Background(), id, "feeling a bit down today")

	a, _ := mgr.GetSessionSummary(id)
	b, _ := mgr.GetSessionSummary(id)
	if a.MessageCount != b.MessageCount || a.ResponseCount != b.ResponseCount {
		t.Fatalf("summary reads must not mutate the session")
	}
}

func TestHistoryInterleavedAndLimited(t *testing.T) {
	mgr := newTestManager()
	id := mgr.StartSession()
	ctx := context.Background()

	mgr.ProcessMessage(ctx, id, "first message")
	mgr.ProcessMessage(ctx, id, "second message")

	history := mgr.GetConversationHistory(id, 10)
	if len(history) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(history))
	}
	for i, e := range history {
		want := "user"
		if i%2 == 1 {
			want = "bot"
		}
		if e.Type != want {
			t.Fatalf("entry %d has type %s, want %s", i, e.Type, want)
		}
	}

	if got := mgr.GetConversationHistory(id, 2); len(got) != 2 {
		t.Fatalf("limit not applied, got %d entries", len(got))
	}
	if got := mgr.GetConversationHistory("nope", 10); got != nil {
		t.Fatalf("unknown session should yield nil history")
	}
}

func TestEndSessionAndActiveCount(t *testing.T) {
	mgr := newTestManager()
	a := mgr.StartSession()
	mgr.StartSession()

	if n := mgr.ActiveSessionCount(); n != 2 {
		t.Fatalf("expected 2 active sessions, got %d", n)
	}
	if !mgr.EndSession(a) {
		t.Fatalf("expected EndSession to succeed")
	}
	if mgr.EndSession("nope") {
		t.Fatalf("unknown session should not end")
	}
	if n := mgr.ActiveSessionCount(); n != 1 {
		t.Fatalf("expected 1 active session, got %d", n)
	}
}

func TestCleanupOldSessions(t *testing.T) {
	mgr := newTestManager()

	past := time.Now().Add(-48 * time.Hour)
	mgr.now = func() time.Time { return past }
	old := mgr.StartSession()

	mgr.now = time.Now
	fresh := mgr.StartSession()

	if removed := mgr.CleanupOldSessions(24); removed != 1 {
		t.Fatalf("expected 1 removed session, got %d", removed)
	}
	if _, ok := mgr.GetSessionSummary(old); ok {
		t.Fatalf("expired session should be gone")
	}
	if _, ok := mgr.GetSessionSummary(fresh); !ok {
		t.Fatalf("fresh session should survive cleanup")
	}
}

func TestWelcomeMessageFromPool(t *testing.T) {
	mgr := newTestManager()
	msg := mgr.WelcomeMessage()
	if !containsString(welcomeMessages, msg) {
		t.Fatalf("welcome message not from the fixed pool: %s", msg)
	}
}
