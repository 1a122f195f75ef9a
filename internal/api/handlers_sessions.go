package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/n8Develop/shepherd/internal/orchestrator"
	"github.com/n8Develop/shepherd/internal/queue"
)

// SessionHandler serves the dashboard's session views.
type SessionHandler struct {
	orch     *orchestrator.Service
	sessions *queue.SessionStore
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(orch *orchestrator.Service, sessions *queue.SessionStore) *SessionHandler {
	return &SessionHandler{orch: orch, sessions: sessions}
}

// List handles GET /sessions
func (h *SessionHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.List())
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail := h.orch.Detail(chi.URLParam(r, "id"))
	if detail == nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
