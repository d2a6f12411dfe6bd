package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// OpenAICompatResponder talks to any OpenAI-compatible chat completions
// endpoint. Responses are cached briefly by prompt to absorb repeated turns.
type OpenAICompatResponder struct {
	BaseURL   string
	Model     string
	APIKey    string
	MaxTokens int
	Timeout   time.Duration
}

var (
	cacheMu    sync.Mutex
	cacheStore = map[string]cacheEntry{}
	cacheTTL   = 60 * time.Second
)

type cacheEntry struct {
	value string
	exp   time.Time
}

type RateLimitError struct {
	RetryAfter time.Duration
}

func (r RateLimitError) Error() string {
	if r.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", r.RetryAfter)
	}
	return "rate limited"
}

func (a OpenAICompatResponder) Respond(ctx context.Context, userInput string, rc Context) (string, error) {
	if strings.TrimSpace(a.BaseURL) == "" {
		return "", fmt.Errorf("ASSISTANT_BASE_URL is not set")
	}
	if strings.TrimSpace(a.Model) == "" {
		return "", fmt.Errorf("ASSISTANT_MODEL is not set")
	}

	userPrompt := buildUserPrompt(userInput, rc)
	if v, ok := cacheGet(userPrompt); ok {
		return v, nil
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	payload := struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature,omitempty"`
		MaxTokens   int     `json:"max_tokens,omitempty"`
		Messages    []msg   `json:"messages"`
	}{
		Model:     a.Model,
		MaxTokens: a.MaxTokens,
		Messages: []msg{
			{Role: "system", Content: buildSystemPrompt(rc)},
			{Role: "user", Content: userPrompt},
		},
	}

	b, _ := json.Marshal(payload)
	url := strings.TrimRight(a.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(a.APIKey) != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("assistant request timed out")
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", fmt.Errorf("assistant request timed out")
		}
		return "", fmt.Errorf("assistant request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if resp.StatusCode == http.StatusTooManyRequests {
			if d := extractRetryAfter(errBody); d > 0 {
				return "", RateLimitError{RetryAfter: d}
			}
			return "", RateLimitError{}
		}
		return "", fmt.Errorf("assistant http error: %s: %v", resp.Status, errBody)
	}

	var res struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("empty assistant response")
	}
	answer := strings.TrimSpace(res.Choices[0].Message.Content)
	cacheSet(userPrompt, answer)
	return answer, nil
}

func buildSystemPrompt(rc Context) string {
	var b strings.Builder
	b.WriteString(`You are a supportive mental health chatbot for college students, working with MindBridge Care and Northeastern University services.

IMPORTANT GUIDELINES:
- Be empathetic, supportive, and non-judgmental
- NEVER provide medical diagnoses or replace professional help
- For crisis situations, immediately direct to professional resources
- Focus on connecting students to appropriate resources and support
- Be culturally sensitive, especially for international students
- Keep responses concise but caring (2-3 sentences typically)
- Always validate feelings while encouraging professional support when needed

CRISIS PROTOCOL:
- If user mentions suicide, self-harm, or crisis: Immediately provide crisis resources
- Crisis contacts: 988 (Crisis Lifeline), (617) 373-3333 (Northeastern Emergency)
- Never minimize crisis situations

AVAILABLE RESOURCES:
- Northeastern CAPS: (617) 373-2772
- MindBridge Care: 1-800-MINDBRIDGE
- International Student Support: (617) 373-2310
- Academic Support: (617) 373-4430`)

	if rc.Severity == "crisis" || rc.CrisisDetected {
		b.WriteString("\n\nCRISIS DETECTED: Prioritize immediate safety and professional intervention.")
	} else if len(rc.Categories) > 0 {
		b.WriteString("\n\nUser concerns appear related to: " + strings.Join(rc.Categories, ", "))
	}
	return b.String()
}

func buildUserPrompt(userInput string, rc Context) string {
	parts := []string{fmt.Sprintf("Student says: %q", userInput)}
	if len(rc.MatchedScenarios) > 0 {
		parts = append(parts, "Relevant scenarios: "+strings.Join(rc.MatchedScenarios, ", "))
	}
	if len(rc.RecommendedResources) > 0 {
		parts = append(parts, "Recommended resources: "+strings.Join(rc.RecommendedResources, ", "))
	}
	parts = append(parts, "Provide a supportive response and suggest appropriate next steps.")
	return strings.Join(parts, "\n")
}

func cacheGet(key string) (string, bool) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if e, ok := cacheStore[key]; ok {
		if time.Now().Before(e.exp) {
			return e.value, true
		}
		delete(cacheStore, key)
	}
	return "", false
}

func cacheSet(key, value string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cacheStore[key] = cacheEntry{
		value: value,
		exp:   time.Now().Add(cacheTTL),
	}
}

func extractRetryAfter(errBody map[string]any) time.Duration {
	errObj, ok := errBody["error"].(map[string]any)
	if !ok {
		return 0
	}
	details, ok := errObj["details"].([]any)
	if !ok {
		return 0
	}
	for _, d := range details {
		m, ok := d.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := m["@type"].(string); ok && strings.Contains(t, "RetryInfo") {
			if s, ok := m["retryDelay"].(string); ok {
				if dur, err := time.ParseDuration(s); err == nil {
					return dur
				}
			}
		}
	}
	return 0
}
