package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/n8Develop/shepherd/internal/config"
	"github.com/n8Develop/shepherd/internal/orchestrator"
	"github.com/n8Develop/shepherd/internal/process"
	"github.com/n8Develop/shepherd/internal/queue"
)

// NewRouter creates the chi router serving the dashboard API. The MCP
// endpoint is mounted by the caller so this package stays free of protocol
// concerns.
func NewRouter(
	orch *orchestrator.Service,
	sessions *queue.SessionStore,
	verifications *queue.VerificationStore,
	feedback *queue.FeedbackStore,
	supervisor *process.Supervisor,
	registry *config.TeamRegistry,
	mcpHandler http.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	sessionH := NewSessionHandler(orch, sessions)
	verificationH := NewVerificationHandler(verifications)
	feedbackH := NewFeedbackHandler(feedback)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": len(supervisor.ActiveIDs()),
		})
	})

	r.Get("/teams", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, registry)
	})

	r.Get("/sessions", sessionH.List)
	r.Get("/sessions/{id}", sessionH.Get)

	r.Get("/verifications", verificationH.List)
	r.Post("/verifications/{id}/submit", verificationH.Submit)

	r.Get("/feedback", feedbackH.List)
	r.Post("/feedback", feedbackH.Create)

	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
	}

	return r
}
