package models

// SessionStatus is the lifecycle state of a dispatched session. It is
// independent of process liveness: a session whose CLI process died stays
// "running" until something updates it.
type SessionStatus string

const (
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
)

// Session is the persisted metadata for one dispatched plan, stored as
// sessions/<id>/meta.json under the data root.
type Session struct {
	ID         string        `json:"id"`
	TeamName   string        `json:"teamName"`
	ProjectDir string        `json:"projectDir"`
	Plan       string        `json:"plan"`
	StartedAt  string        `json:"startedAt"`
	Status     SessionStatus `json:"status"`
}

// VerificationStatus is the review state of a verification request.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Artifact is a single item attached to a verification request for visual
// inspection. Exactly one of Path or URL is populated, per Type.
type Artifact struct {
	Type string `json:"type"` // "file" or "url"
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
}

// VerificationRequest is a human-in-the-loop gate raised by an agent-team
// task. Resolution fields stay null until the request is resolved; feedback
// stays null unless supplied.
type VerificationRequest struct {
	ID          string             `json:"id"`
	SessionID   string             `json:"sessionId"`
	TaskID      string             `json:"taskId"`
	RequestedBy string             `json:"requestedBy"`
	RequestedAt string             `json:"requestedAt"`
	Type        string             `json:"type"` // only "visual" today
	Description string             `json:"description"`
	Artifacts   []Artifact         `json:"artifacts"`
	Status      VerificationStatus `json:"status"`
	Resolution  *string            `json:"resolution"`
	ResolvedAt  *string            `json:"resolvedAt"`
	Feedback    *string            `json:"feedback"`
}

// FeedbackEntry is a one-way note from the operator back to a running team,
// correlated to a verification request. Immutable once created.
type FeedbackEntry struct {
	ID             string `json:"id"`
	SessionID      string `json:"sessionId"`
	VerificationID string `json:"verificationId"`
	Content        string `json:"content"`
	CreatedAt      string `json:"createdAt"`
}

// TeamTask is raw task data read from the agent-teams filesystem. The format
// is experimental and undocumented, so no schema is imposed on it.
type TeamTask map[string]any

// TeamStatus is a snapshot of a project's agent-team task state.
type TeamStatus struct {
	ProjectDir string     `json:"projectDir"`
	TasksDir   string     `json:"tasksDir"`
	Tasks      []TeamTask `json:"tasks"`
	// Errors lists files that couldn't be read or parsed.
	Errors []string `json:"errors"`
}
