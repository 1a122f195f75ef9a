// Package queue is the durable, file-backed store of sessions, verification
// requests and feedback entries. Each record kind owns one directory under
// the data root and persists one JSON document per record.
package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DataDirEnv overrides the data root, mainly for test isolation.
const DataDirEnv = "SHEPHERD_DATA_DIR"

// Normalize converts path separators to forward slashes so paths stored in
// JSON payloads are stable across platforms. Idempotent.
func Normalize(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Paths resolves the on-disk layout of all Shepherd state. Construct once
// and pass by reference.
type Paths struct {
	root string
}

// New returns a Paths rooted at the given directory.
func New(root string) *Paths {
	return &Paths{root: Normalize(root)}
}

// Default resolves the data root from SHEPHERD_DATA_DIR, falling back to
// ~/.shepherd.
func Default() *Paths {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return New(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// No resolvable home, keep state relative to the working dir.
		return New(".shepherd")
	}
	return New(filepath.Join(home, ".shepherd"))
}

// Root returns the base directory for all persisted state.
func (p *Paths) Root() string {
	return p.root
}

// SessionsDir returns the directory holding per-session subdirectories.
func (p *Paths) SessionsDir() string {
	return Normalize(filepath.Join(p.root, "sessions"))
}

// VerificationDir returns the verification queue directory.
func (p *Paths) VerificationDir() string {
	return Normalize(filepath.Join(p.root, "verification-queue"))
}

// FeedbackDir returns the feedback entries directory.
func (p *Paths) FeedbackDir() string {
	return Normalize(filepath.Join(p.root, "feedback"))
}

// SessionDir returns the directory for a single session.
func (p *Paths) SessionDir(id string) string {
	return Normalize(filepath.Join(p.SessionsDir(), id))
}

// SessionMetaPath returns the path of a session's metadata document.
func (p *Paths) SessionMetaPath(id string) string {
	return Normalize(filepath.Join(p.SessionDir(id), "meta.json"))
}

// SessionLogPath returns the path of a session's append-only JSONL log.
func (p *Paths) SessionLogPath(id string) string {
	return Normalize(filepath.Join(p.SessionDir(id), "log.jsonl"))
}

// EnsureDirs creates all state directories. Idempotent and safe to call
// concurrently; existing directories are not an error.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.SessionsDir(), p.VerificationDir(), p.FeedbackDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
