// Package orchestrator couples session creation to process launch: the
// single write-path a dispatched plan flows through.
package orchestrator

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/n8Develop/shepherd/internal/config"
	"github.com/n8Develop/shepherd/internal/models"
	"github.com/n8Develop/shepherd/internal/process"
	"github.com/n8Develop/shepherd/internal/queue"
	"github.com/n8Develop/shepherd/internal/teams"
)

// Service dispatches plans and assembles session status snapshots.
type Service struct {
	paths      *queue.Paths
	sessions   *queue.SessionStore
	supervisor *process.Supervisor
	registry   *config.TeamRegistry
	logger     *slog.Logger
}

// NewService creates the orchestrator.
func NewService(
	paths *queue.Paths,
	sessions *queue.SessionStore,
	supervisor *process.Supervisor,
	registry *config.TeamRegistry,
	logger *slog.Logger,
) *Service {
	return &Service{
		paths:      paths,
		sessions:   sessions,
		supervisor: supervisor,
		registry:   registry,
		logger:     logger,
	}
}

// Dispatch allocates a fresh session id, persists the session with status
// running and launches the CLI process. Fire and forget: spawn failure only
// surfaces through the session log, never through this call's result, and
// the call never blocks on process completion.
func (s *Service) Dispatch(plan, projectDir, teamName string) (*models.Session, error) {
	if teamName == "" {
		teamName = "default"
	}
	sessionID := uuid.New().String()

	if err := s.paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("ensure data dirs: %w", err)
	}

	sess, err := s.sessions.Create(sessionID, teamName, projectDir, plan)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if _, err := s.supervisor.Spawn(sessionID, plan, projectDir, s.registry.Env(teamName)); err != nil {
		// Already recorded in the session log; the session stays
		// running until its status is updated.
		s.logger.Warn("cli spawn failed", "sessionId", sessionID, "error", err)
	}

	return sess, nil
}

// Detail is a session merged with its team status and process liveness, as
// served to the dashboard.
type Detail struct {
	models.Session
	TeamStatus   *models.TeamStatus `json:"teamStatus"`
	ProcessAlive bool               `json:"processAlive"`
}

// Detail assembles the status snapshot for one session, or nil when the
// session does not exist.
func (s *Service) Detail(sessionID string) *Detail {
	sess := s.sessions.Get(sessionID)
	if sess == nil {
		return nil
	}
	handle := s.supervisor.Active(sessionID)
	return &Detail{
		Session:      *sess,
		TeamStatus:   teams.ReadStatus(sess.ProjectDir),
		ProcessAlive: handle != nil && !handle.Exited(),
	}
}
