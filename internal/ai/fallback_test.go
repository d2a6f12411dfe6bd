package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubResponder struct {
	answer string
	err    error
	delay  time.Duration
}

func (s stubResponder) Respond(ctx context.Context, _ string, _ Context) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.answer, s.err
}

func TestFallbackUsesPrimaryAnswer(t *testing.T) {
	f := NewFallbackResponder(stubResponder{answer: "primary says hi"}, time.Second, zerolog.Nop())
	got, err := f.Respond(context.Background(), "hello", Context{})
	if err != nil || got != "primary says hi" {
		t.Fatalf("expected primary answer, got %q err %v", got, err)
	}
}

func TestFallbackDegradesOnError(t *testing.T) {
	f := NewFallbackResponder(stubResponder{err: errors.New("upstream down")}, time.Second, zerolog.Nop())
	got, err := f.Respond(context.Background(), "I'm worried about my exam", Context{})
	if err != nil {
		t.Fatalf("fallback chain must not surface errors: %v", err)
	}
	if !strings.Contains(got, "Northeastern CAPS") {
		t.Fatalf("expected template fallback text:\n%s", got)
	}
}

func TestFallbackDegradesOnTimeout(t *testing.T) {
	f := NewFallbackResponder(stubResponder{answer: "too late", delay: 200 * time.Millisecond},
		10*time.Millisecond, zerolog.Nop())
	got, err := f.Respond(context.Background(), "hello there", Context{})
	if err != nil {
		t.Fatalf("fallback chain must not surface errors: %v", err)
	}
	if got == "too late" {
		t.Fatalf("slow primary should have been cut off")
	}
}

func TestFallbackNilPrimary(t *testing.T) {
	f := NewFallbackResponder(nil, time.Second, zerolog.Nop())
	got, err := f.Respond(context.Background(), "feeling anxious", Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "grounding techniques") {
		t.Fatalf("expected the anxiety template response:\n%s", got)
	}
}
