package ai

import (
	"context"
	"strings"
	"testing"
)

func TestTemplateCategorySelection(t *testing.T) {
	r := NewTemplateResponder()
	ctx := context.Background()

	cases := []struct {
		input string
		want  string
	}{
		{"I'm worried about my exam next week", "(617) 373-4430"},
		{"I feel so lonely here", "Peer Support Programs"},
		{"I'm really homesick lately", "International Student Services"},
		{"feeling anxious all the time", "5-4-3-2-1"},
		{"just wanted to talk", "Would you like to tell me more"},
	}
	for _, tc := range cases {
		got, err := r.Respond(ctx, tc.input, Context{})
		if err != nil {
			t.Fatalf("template responder must not error: %v", err)
		}
		if !strings.Contains(got, tc.want) {
			t.Fatalf("input %q: response missing %q:\n%s", tc.input, tc.want, got)
		}
	}
}

func TestTemplateCrisisOverridesInput(t *testing.T) {
	r := NewTemplateResponder()
	got, _ := r.Respond(context.Background(), "my exam went badly", Context{CrisisDetected: true})
	if !strings.Contains(got, "988") || !strings.Contains(got, "911") {
		t.Fatalf("crisis flag should force the crisis response:\n%s", got)
	}
}

func TestTemplateAcademicBeatsSocial(t *testing.T) {
	r := NewTemplateResponder()
	// Both academic and social triggers present; academic wins by order.
	got, _ := r.Respond(context.Background(), "my exam stress is making me feel alone", Context{})
	if !strings.Contains(got, "Academic") {
		t.Fatalf("expected the academic response:\n%s", got)
	}
}
