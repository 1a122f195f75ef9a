package api

import (
	"net/http"

	"github.com/n8Develop/shepherd/internal/queue"
)

// FeedbackHandler serves the dashboard's feedback entries.
type FeedbackHandler struct {
	store *queue.FeedbackStore
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(store *queue.FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{store: store}
}

// List handles GET /feedback?sessionId=
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.store.List(queue.FeedbackFilter{
		SessionID: r.URL.Query().Get("sessionId"),
	})
	writeJSON(w, http.StatusOK, list)
}

type createFeedbackRequest struct {
	ID             string `json:"id"`
	SessionID      string `json:"sessionId"`
	VerificationID string `json:"verificationId"`
	Content        string `json:"content"`
}

// Create handles POST /feedback
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ID == "" || req.SessionID == "" || req.VerificationID == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: id, sessionId, verificationId, content")
		return
	}

	entry, err := h.store.Create(req.ID, req.SessionID, req.VerificationID, req.Content)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
