package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xn_chatbot/backend/internal/ai"
	"github.com/xn_chatbot/backend/internal/crisis"
	"github.com/xn_chatbot/backend/internal/matcher"
	"github.com/xn_chatbot/backend/internal/models"
	"github.com/xn_chatbot/backend/internal/providerflow"
)

var welcomeMessages = []string{
	"Hello! I'm here to help you navigate mental health resources and support. How are you feeling today?",
	"Hi there! I'm a mental health support assistant connected to MindBridge Care and Northeastern services. What's on your mind?",
	"Welcome! I'm here to listen and help connect you with the right mental health resources. How can I support you today?",
}

// Explicit phrases that start the provider search sub-flow.
var providerTriggers = []string{
	"find provider",
	"find therapist",
	"need help finding",
	"therapy near me",
	"mental health provider",
}

// concernPriority orders categories for establishing the primary concern on
// the first turn; first match wins.
var concernPriority = []string{"social_isolation", "cultural_adjustment", "self_esteem", "academic_stress"}

// majorShiftCategories force re-establishing concerns mid-conversation.
var majorShiftCategories = map[string]bool{
	"crisis":            true,
	"self_harm":         true,
	"suicidal_ideation": true,
}

type sessionState struct {
	mu      sync.Mutex
	session *models.ConversationSession
}

// Manager owns all live sessions and drives each turn end to end: analysis,
// crisis short-circuit, provider flow delegation, response assembly. Sessions
// live in process memory only.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState

	matcher         *matcher.Matcher
	crisisResponder *crisis.Responder
	responder       ai.Responder
	flow            *providerflow.Flow
	strategy        SelectionStrategy
	logger          zerolog.Logger
	now             func() time.Time
}

func NewManager(m *matcher.Matcher, cr *crisis.Responder, responder ai.Responder,
	flow *providerflow.Flow, strategy SelectionStrategy, logger zerolog.Logger) *Manager {
	return &Manager{
		sessions:        map[string]*sessionState{},
		matcher:         m,
		crisisResponder: cr,
		responder:       responder,
		flow:            flow,
		strategy:        strategy,
		logger:          logger,
		now:             time.Now,
	}
}

// StartSession creates a new session and returns its id.
func (m *Manager) StartSession() string {
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = newSessionState(id, m.now())
	m.mu.Unlock()

	m.logger.Info().Str("session_id", id).Msg("session started")
	return id
}

func newSessionState(id string, start time.Time) *sessionState {
	return &sessionState{
		session: &models.ConversationSession{
			SessionID: id,
			StartTime: start,
			IsActive:  true,
			Profile: models.UserProfile{
				AskedQuestions: map[string]bool{},
			},
		},
	}
}

// WelcomeMessage returns a greeting from the fixed pool.
func (m *Manager) WelcomeMessage() string {
	return m.strategy.Select("welcome", 0, welcomeMessages)
}

// getOrCreate heals unknown session ids by creating a session under the
// supplied id, so callers never see a missing-session error.
func (m *Manager) getOrCreate(sessionID string) *sessionState {
	m.mu.RLock()
	st, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return st
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.sessions[sessionID]; ok {
		return st
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	st = newSessionState(sessionID, m.now())
	m.sessions[sessionID] = st
	return st
}

// ProcessMessage handles one user turn. The boolean result reports whether
// the turn triggered the crisis path.
func (m *Manager) ProcessMessage(ctx context.Context, sessionID, text string) (string, bool) {
	st := m.getOrCreate(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.session

	var history []string
	start := 0
	if len(s.Messages) > 5 {
		start = len(s.Messages) - 5
	}
	for _, msg := range s.Messages[start:] {
		history = append(history, msg.Content)
	}

	analysis := m.matcher.AnalyzeUserInput(text, history)

	s.Messages = append(s.Messages, models.UserMessage{
		Content:            text,
		Timestamp:          m.now(),
		DetectedKeywords:   analysis.Keywords,
		Severity:           analysis.Severity,
		MatchedScenarioIDs: scenarioIDs(analysis.MatchedScenarios),
	})
	s.IdentifiedConcerns = append(s.IdentifiedConcerns, analysis.Categories...)
	for _, r := range analysis.Recommendations {
		s.RecommendedResourceIDs = append(s.RecommendedResourceIDs, r.ResourceID)
	}

	if analysis.RequiresAttention {
		s.CrisisFlags = append(s.CrisisFlags, analysis.CrisisAssessment.DetectedIndicators...)
		content := m.crisisResponder.Render(analysis.CrisisAssessment)
		s.Responses = append(s.Responses, models.BotResponse{
			Content:                   content,
			Timestamp:                 m.now(),
			Type:                      models.ResponseCrisis,
			RequiresHumanIntervention: true,
		})
		m.logger.Warn().
			Str("session_id", s.SessionID).
			Str("severity", analysis.Severity.String()).
			Msg("crisis detected")
		return content, true
	}

	profile := &s.Profile

	if profile.ProviderSearchActive {
		content, done := m.flow.Process(profile, text)
		respType := models.ResponseGeneral
		if done {
			respType = models.ResponseResourceRecommendation
		}
		s.Responses = append(s.Responses, models.BotResponse{
			Content:   content,
			Timestamp: m.now(),
			Type:      respType,
		})
		m.updateMetadata(s, analysis)
		return content, false
	}

	if isProviderTrigger(text) || m.shouldOfferProviderSearch(s, analysis) {
		profile.ProviderSearchOffered = true
		content := m.flow.Start(profile)
		s.Responses = append(s.Responses, models.BotResponse{
			Content:   content,
			Timestamp: m.now(),
			Type:      models.ResponseResourceRecommendation,
		})
		m.updateMetadata(s, analysis)
		return content, false
	}

	retained := m.updateEstablishedConcerns(profile, analysis)

	recs := analysis.Recommendations
	followUpCategories := analysis.Categories
	if retained && len(profile.PrimaryConcerns) > 0 {
		recs = m.matcher.ContextualRecommendations(profile.PrimaryConcerns, analysis.Keywords, analysis.Severity)
		followUpCategories = profile.PrimaryConcerns
	}

	var candidates []string
	if len(s.Messages) < 4 {
		candidates = followUpCandidates(followUpCategories, len(s.Messages), profile.AskedQuestions)
	}

	content := m.assembleResponse(ctx, s, analysis, recs, candidates)

	respType := models.ResponseGeneral
	switch {
	case analysis.Severity == models.SeverityHigh:
		respType = models.ResponseUrgentSupport
	case len(recs) > 0:
		respType = models.ResponseResourceRecommendation
	}

	topRecs := recs
	if len(topRecs) > 3 {
		topRecs = topRecs[:3]
	}
	var topIDs []string
	for _, r := range topRecs {
		topIDs = append(topIDs, r.ResourceID)
	}
	s.Responses = append(s.Responses, models.BotResponse{
		Content:                content,
		Timestamp:              m.now(),
		Type:                   respType,
		RecommendedResourceIDs: topIDs,
		FollowUpQuestions:      candidates,
	})
	m.updateMetadata(s, analysis)
	return content, false
}

func (m *Manager) assembleResponse(ctx context.Context, s *models.ConversationSession,
	analysis matcher.Analysis, recs []models.Recommendation, candidates []string) string {
	topRecs := recs
	if len(topRecs) > 3 {
		topRecs = topRecs[:3]
	}
	var recNames []string
	for _, r := range topRecs {
		recNames = append(recNames, r.ResourceName)
	}

	reply, err := m.responder.Respond(ctx, analysis.OriginalInput, ai.Context{
		Severity:             analysis.Severity.String(),
		Categories:           analysis.Categories,
		MatchedScenarios:     scenarioIDs(analysis.MatchedScenarios),
		RecommendedResources: recNames,
		Emotions:             analysis.Emotions,
		CrisisDetected:       analysis.RequiresAttention,
	})
	if err != nil {
		// The fallback chain should never error; last resort is the
		// generic referral line.
		m.logger.Error().Err(err).Msg("responder chain failed")
		reply = m.matcher.FormatRecommendations(nil)
	}

	content := reply
	if recText := m.matcher.FormatRecommendations(recs); recText != "" {
		content += "\n\n" + recText
	}

	if pick := m.strategy.Select(s.SessionID, len(s.Messages), candidates); pick != "" {
		content += "\n\n" + pick
		s.Profile.AskedQuestions[pick] = true
	}
	return content
}

func isProviderTrigger(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range providerTriggers {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// shouldOfferProviderSearch gates the implicit offer: moderate or high
// severity, at least two prior messages, and not already offered.
func (m *Manager) shouldOfferProviderSearch(s *models.ConversationSession, analysis matcher.Analysis) bool {
	if s.Profile.ProviderSearchOffered {
		return false
	}
	if analysis.Severity != models.SeverityModerate && analysis.Severity != models.SeverityHigh {
		return false
	}
	// The current message is already appended.
	return len(s.Messages) >= 3
}

// updateEstablishedConcerns applies the context retention rule. Returns true
// when the previously established concerns were kept.
func (m *Manager) updateEstablishedConcerns(profile *models.UserProfile, analysis matcher.Analysis) bool {
	establish := func() {
		for _, p := range concernPriority {
			for _, c := range analysis.Categories {
				if c == p {
					profile.PrimaryConcerns = []string{p}
					return
				}
			}
		}
		profile.PrimaryConcerns = append([]string(nil), analysis.Categories...)
	}

	if len(profile.PrimaryConcerns) == 0 {
		establish()
		return false
	}
	if analysis.Severity >= models.SeverityHigh {
		establish()
		return false
	}
	for _, c := range analysis.Categories {
		if majorShiftCategories[c] && !containsString(profile.PrimaryConcerns, c) {
			establish()
			return false
		}
	}
	return true
}

func (m *Manager) updateMetadata(s *models.ConversationSession, analysis matcher.Analysis) {
	if containsString(analysis.Categories, "cultural_adjustment") {
		s.Profile.IsInternational = true
	}
	if analysis.Severity >= models.SeverityHigh {
		s.Profile.HighRisk = true
	}
	s.Profile.LastActivity = m.now()
	s.Profile.MessageCount = len(s.Messages)
}

func scenarioIDs(scenarios []*models.Scenario) []string {
	var ids []string
	for _, s := range scenarios {
		ids = append(ids, s.ID)
	}
	return ids
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// StartProviderSearch begins the provider search sub-flow directly, without
// waiting for a trigger phrase.
func (m *Manager) StartProviderSearch(sessionID string) string {
	st := m.getOrCreate(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.session.Profile.ProviderSearchOffered = true
	// Not appended to Responses: history stays 1:1 with user messages.
	return m.flow.Start(&st.session.Profile)
}

// Summary is the read-only conversation digest exposed to callers.
type Summary struct {
	SessionID            string             `json:"session_id"`
	StartTime            time.Time          `json:"start_time"`
	DurationMinutes      float64            `json:"duration_minutes"`
	MessageCount         int                `json:"message_count"`
	ResponseCount        int                `json:"response_count"`
	HighestSeverity      string             `json:"highest_severity"`
	IdentifiedConcerns   []string           `json:"identified_concerns"`
	RecommendedResources []string           `json:"recommended_resources"`
	CrisisFlags          []string           `json:"crisis_flags"`
	Profile              models.UserProfile `json:"user_profile"`
}

// GetSessionSummary returns nil,false for unknown sessions. Reading a
// summary never mutates session state.
func (m *Manager) GetSessionSummary(sessionID string) (*Summary, bool) {
	m.mu.RLock()
	st, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.session

	highest := models.SeverityLow
	for _, msg := range s.Messages {
		if msg.Severity > highest {
			highest = msg.Severity
		}
	}

	return &Summary{
		SessionID:            s.SessionID,
		StartTime:            s.StartTime,
		DurationMinutes:      m.now().Sub(s.StartTime).Minutes(),
		MessageCount:         len(s.Messages),
		ResponseCount:        len(s.Responses),
		HighestSeverity:      highest.String(),
		IdentifiedConcerns:   dedup(s.IdentifiedConcerns),
		RecommendedResources: dedup(s.RecommendedResourceIDs),
		CrisisFlags:          append([]string(nil), s.CrisisFlags...),
		Profile:              s.Profile,
	}, true
}

// dedup preserves first-seen order.
func dedup(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// HistoryEntry is one display line of the interleaved transcript.
type HistoryEntry struct {
	Type         string    `json:"type"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	Severity     string    `json:"severity,omitempty"`
	ResponseType string    `json:"response_type,omitempty"`
}

// GetConversationHistory interleaves user messages and bot responses and
// returns the most recent entries up to limit.
func (m *Manager) GetConversationHistory(sessionID string, limit int) []HistoryEntry {
	m.mu.RLock()
	st, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.session

	n := len(s.Messages)
	if len(s.Responses) < n {
		n = len(s.Responses)
	}
	if n > limit {
		n = limit
	}

	var history []HistoryEntry
	for i := 0; i < n; i++ {
		history = append(history, HistoryEntry{
			Type:      "user",
			Content:   s.Messages[i].Content,
			Timestamp: s.Messages[i].Timestamp,
			Severity:  s.Messages[i].Severity.String(),
		})
		history = append(history, HistoryEntry{
			Type:         "bot",
			Content:      s.Responses[i].Content,
			Timestamp:    s.Responses[i].Timestamp,
			ResponseType: string(s.Responses[i].Type),
		})
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}

// EndSession marks a session inactive but keeps it around for summaries
// until cleanup sweeps it.
func (m *Manager) EndSession(sessionID string) bool {
	m.mu.RLock()
	st, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return false
	}

	st.mu.Lock()
	st.session.IsActive = false
	st.mu.Unlock()

	m.logger.Info().Str("session_id", sessionID).Msg("session ended")
	return true
}

// CleanupOldSessions removes sessions whose start time is older than the
// cutoff and returns how many were removed.
func (m *Manager) CleanupOldSessions(hours int) int {
	cutoff := m.now().Add(-time.Duration(hours) * time.Hour)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, st := range m.sessions {
		st.mu.Lock()
		expired := st.session.StartTime.Before(cutoff)
		st.mu.Unlock()
		if expired {
			delete(m.sessions, id)
			removed++
			m.logger.Info().Str("session_id", id).Msg("cleaned up expired session")
		}
	}
	return removed
}

// ActiveSessionCount counts sessions not yet ended.
func (m *Manager) ActiveSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, st := range m.sessions {
		st.mu.Lock()
		if st.session.IsActive {
			count++
		}
		st.mu.Unlock()
	}
	return count
}
