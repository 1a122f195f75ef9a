package queue

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/n8Develop/shepherd/internal/models"
)

// VerificationStore persists verification requests, one
// verification-queue/<id>.json per request.
type VerificationStore struct {
	paths *Paths
}

// NewVerificationStore creates a verification store over the given paths.
func NewVerificationStore(paths *Paths) *VerificationStore {
	return &VerificationStore{paths: paths}
}

// CreateVerificationInput carries the caller-supplied fields of a new
// verification request. The store stamps everything else.
type CreateVerificationInput struct {
	ID          string
	SessionID   string
	TaskID      string
	RequestedBy string
	Description string
	Artifacts   []models.Artifact
}

// VerificationUpdate is a partial update; nil fields are left untouched.
type VerificationUpdate struct {
	Status     *models.VerificationStatus
	Resolution *string
	Feedback   *string
}

// VerificationFilter narrows List results. Filters are conjunctive. An
// empty or "all" status matches every status.
type VerificationFilter struct {
	Status    string
	SessionID string
}

func (s *VerificationStore) requestPath(id string) string {
	return Normalize(filepath.Join(s.paths.VerificationDir(), id+".json"))
}

// Create persists a new request in pending state with null resolution
// fields. An existing record with the same id is overwritten silently.
func (s *VerificationStore) Create(in CreateVerificationInput) (*models.VerificationRequest, error) {
	req := &models.VerificationRequest{
		ID:          in.ID,
		SessionID:   in.SessionID,
		TaskID:      in.TaskID,
		RequestedBy: in.RequestedBy,
		RequestedAt: now(),
		Type:        "visual",
		Description: in.Description,
		Artifacts:   in.Artifacts,
		Status:      models.VerificationPending,
	}
	if err := writeDoc(s.requestPath(in.ID), req); err != nil {
		return nil, err
	}
	return req, nil
}

// Get loads a request by id. Missing or unparsable documents report nil.
func (s *VerificationStore) Get(id string) *models.VerificationRequest {
	var req models.VerificationRequest
	if !readDoc(s.requestPath(id), &req) {
		return nil
	}
	return &req
}

// Update merges the supplied fields into the stored request and writes it
// back. Any non-pending status re-stamps resolvedAt, including on a request
// that was already resolved; a pending or omitted status leaves the prior
// resolvedAt untouched. Returns nil, nil when the request does not exist.
func (s *VerificationStore) Update(id string, upd VerificationUpdate) (*models.VerificationRequest, error) {
	req := s.Get(id)
	if req == nil {
		return nil, nil
	}
	if upd.Status != nil {
		req.Status = *upd.Status
		if *upd.Status != models.VerificationPending {
			stamp := now()
			req.ResolvedAt = &stamp
		}
	}
	if upd.Resolution != nil {
		req.Resolution = upd.Resolution
	}
	if upd.Feedback != nil {
		req.Feedback = upd.Feedback
	}
	if err := writeDoc(s.requestPath(id), req); err != nil {
		return nil, err
	}
	return req, nil
}

// List returns every readable request matching the filter, in no guaranteed
// order. A missing directory yields an empty slice, as do unparsable
// documents.
func (s *VerificationStore) List(filter VerificationFilter) []*models.VerificationRequest {
	entries, err := os.ReadDir(s.paths.VerificationDir())
	if err != nil {
		return []*models.VerificationRequest{}
	}
	requests := make([]*models.VerificationRequest, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		req := s.Get(strings.TrimSuffix(name, ".json"))
		if req == nil {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(req.Status) != filter.Status {
			continue
		}
		if filter.SessionID != "" && req.SessionID != filter.SessionID {
			continue
		}
		requests = append(requests, req)
	}
	return requests
}
