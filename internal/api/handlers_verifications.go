package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/n8Develop/shepherd/internal/models"
	"github.com/n8Develop/shepherd/internal/queue"
)

// VerificationHandler serves the dashboard's verification queue.
type VerificationHandler struct {
	store *queue.VerificationStore
}

// NewVerificationHandler creates a new verification handler.
func NewVerificationHandler(store *queue.VerificationStore) *VerificationHandler {
	return &VerificationHandler{store: store}
}

// List handles GET /verifications?status=&sessionId=
func (h *VerificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.store.List(queue.VerificationFilter{
		Status:    r.URL.Query().Get("status"),
		SessionID: r.URL.Query().Get("sessionId"),
	})
	writeJSON(w, http.StatusOK, list)
}

type submitVerificationRequest struct {
	Status     models.VerificationStatus `json:"status"`
	Resolution string                    `json:"resolution"`
	Feedback   *string                   `json:"feedback"`
}

// Submit handles POST /verifications/{id}/submit
func (h *VerificationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitVerificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	upd := queue.VerificationUpdate{Feedback: req.Feedback}
	if req.Status != "" {
		upd.Status = &req.Status
	}
	if req.Resolution != "" {
		upd.Resolution = &req.Resolution
	}

	updated, err := h.store.Update(chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Verification not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
