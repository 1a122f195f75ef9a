package queue

import (
	"fmt"
	"os"

	"github.com/n8Develop/shepherd/internal/models"
)

// SessionStore persists session metadata, one sessions/<id>/meta.json per
// session. The session directory also holds the process log, which the
// supervisor appends to independently.
type SessionStore struct {
	paths *Paths
}

// NewSessionStore creates a session store over the given paths.
func NewSessionStore(paths *Paths) *SessionStore {
	return &SessionStore{paths: paths}
}

// Create persists a new session with status running and a server-stamped
// start time. An existing record with the same id is overwritten silently;
// callers are expected to supply a fresh identifier.
func (s *SessionStore) Create(id, teamName, projectDir, plan string) (*models.Session, error) {
	sess := &models.Session{
		ID:         id,
		TeamName:   teamName,
		ProjectDir: projectDir,
		Plan:       plan,
		StartedAt:  now(),
		Status:     models.SessionRunning,
	}
	if err := os.MkdirAll(s.paths.SessionDir(id), 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	if err := writeDoc(s.paths.SessionMetaPath(id), sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by id. Missing or unparsable metadata reports nil.
func (s *SessionStore) Get(id string) *models.Session {
	var sess models.Session
	if !readDoc(s.paths.SessionMetaPath(id), &sess) {
		return nil
	}
	return &sess
}

// UpdateStatus loads the session, applies the new status and writes it
// back. Returns nil, nil when the session does not exist. Concurrent
// updates to the same id are last-writer-wins.
func (s *SessionStore) UpdateStatus(id string, status models.SessionStatus) (*models.Session, error) {
	sess := s.Get(id)
	if sess == nil {
		return nil, nil
	}
	sess.Status = status
	if err := writeDoc(s.paths.SessionMetaPath(id), sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// List returns every readable session, in no guaranteed order. A missing
// sessions directory is the normal uninitialized state and yields an empty
// slice, as do entries whose metadata is missing or unparsable.
func (s *SessionStore) List() []*models.Session {
	entries, err := os.ReadDir(s.paths.SessionsDir())
	if err != nil {
		return []*models.Session{}
	}
	sessions := make([]*models.Session, 0, len(entries))
	for _, entry := range entries {
		if sess := s.Get(entry.Name()); sess != nil {
			sessions = append(sessions, sess)
		}
	}
	return sessions
}
