package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xn_chatbot/backend/internal/ai"
	"github.com/xn_chatbot/backend/internal/catalog"
	"github.com/xn_chatbot/backend/internal/config"
	"github.com/xn_chatbot/backend/internal/conversation"
	"github.com/xn_chatbot/backend/internal/crisis"
	httpapi "github.com/xn_chatbot/backend/internal/http"
	"github.com/xn_chatbot/backend/internal/matcher"
	"github.com/xn_chatbot/backend/internal/providerflow"
	"github.com/xn_chatbot/backend/internal/textanalysis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "xn-chatbot-backend").Logger()

	analyzer := textanalysis.NewAnalyzer()
	assessor := crisis.NewAssessor(analyzer, logger)
	scenarios := catalog.NewScenarioCatalog()
	resources := catalog.NewResourceCatalog()
	providers := catalog.NewProviderDirectory()

	match := matcher.New(analyzer, assessor, scenarios, resources, logger)

	var primary ai.Responder
	if cfg.AssistantBaseURL == "" {
		logger.Info().Msg("no assistant configured, using template responder only")
	} else {
		primary = ai.OpenAICompatResponder{
			BaseURL:   cfg.AssistantBaseURL,
			Model:     cfg.AssistantModel,
			APIKey:    cfg.AssistantAPIKey,
			MaxTokens: cfg.AssistantMaxTokens,
			Timeout:   cfg.AssistantTimeout,
		}
	}
	responder := ai.NewFallbackResponder(primary, cfg.AssistantTimeout, logger)

	flow := providerflow.New(providers, logger)
	manager := conversation.NewManager(match, crisis.NewResponder(), responder, flow,
		conversation.NewStrategy(cfg.FollowUpStrategy), logger)

	router := httpapi.Router(cfg, manager, resources, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	cleanupStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := manager.CleanupOldSessions(cfg.SessionMaxAgeHours); removed > 0 {
					logger.Info().Int("removed", removed).Msg("session cleanup")
				}
			case <-cleanupStop:
				return
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(cleanupStop)

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
