package ai

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// FallbackResponder tries the primary responder within a timeout and
// degrades to the template responder on any failure. One attempt, no retry;
// a slow upstream should never stall the conversation.
type FallbackResponder struct {
	Primary  Responder
	Template *TemplateResponder
	Timeout  time.Duration
	Logger   zerolog.Logger
}

func NewFallbackResponder(primary Responder, timeout time.Duration, logger zerolog.Logger) *FallbackResponder {
	return &FallbackResponder{
		Primary:  primary,
		Template: NewTemplateResponder(),
		Timeout:  timeout,
		Logger:   logger,
	}
}

func (f *FallbackResponder) Respond(ctx context.Context, userInput string, rc Context) (string, error) {
	if f.Primary == nil {
		return f.Template.Respond(ctx, userInput, rc)
	}

	callCtx := ctx
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	answer, err := f.Primary.Respond(callCtx, userInput, rc)
	if err != nil {
		f.Logger.Warn().Err(err).Msg("primary responder failed, using template fallback")
		return f.Template.Respond(ctx, userInput, rc)
	}
	return answer, nil
}
