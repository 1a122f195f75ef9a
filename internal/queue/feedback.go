package queue

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/n8Develop/shepherd/internal/models"
)

// FeedbackStore persists feedback entries, one feedback/<id>.json per
// entry. Entries are immutable once created.
type FeedbackStore struct {
	paths *Paths
}

// NewFeedbackStore creates a feedback store over the given paths.
func NewFeedbackStore(paths *Paths) *FeedbackStore {
	return &FeedbackStore{paths: paths}
}

// FeedbackFilter narrows List results to a single session when set.
type FeedbackFilter struct {
	SessionID string
}

func (s *FeedbackStore) entryPath(id string) string {
	return Normalize(filepath.Join(s.paths.FeedbackDir(), id+".json"))
}

// Create persists a new entry with a server-stamped creation time.
func (s *FeedbackStore) Create(id, sessionID, verificationID, content string) (*models.FeedbackEntry, error) {
	entry := &models.FeedbackEntry{
		ID:             id,
		SessionID:      sessionID,
		VerificationID: verificationID,
		Content:        content,
		CreatedAt:      now(),
	}
	if err := writeDoc(s.entryPath(id), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get loads an entry by id. Missing or unparsable documents report nil.
func (s *FeedbackStore) Get(id string) *models.FeedbackEntry {
	var entry models.FeedbackEntry
	if !readDoc(s.entryPath(id), &entry) {
		return nil
	}
	return &entry
}

// List returns every readable entry matching the filter, in no guaranteed
// order. A missing directory yields an empty slice.
func (s *FeedbackStore) List(filter FeedbackFilter) []*models.FeedbackEntry {
	entries, err := os.ReadDir(s.paths.FeedbackDir())
	if err != nil {
		return []*models.FeedbackEntry{}
	}
	list := make([]*models.FeedbackEntry, 0, len(entries))
	for _, file := range entries {
		name := file.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		entry := s.Get(strings.TrimSuffix(name, ".json"))
		if entry == nil {
			continue
		}
		if filter.SessionID != "" && entry.SessionID != filter.SessionID {
			continue
		}
		list = append(list, entry)
	}
	return list
}
