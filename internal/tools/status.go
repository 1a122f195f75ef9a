package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/n8Develop/shepherd/internal/models"
	"github.com/n8Develop/shepherd/internal/process"
	"github.com/n8Develop/shepherd/internal/queue"
	"github.com/n8Develop/shepherd/internal/teams"
)

// TeamStatusTool reports the status snapshot of one session.
type TeamStatusTool struct {
	sessions      *queue.SessionStore
	verifications *queue.VerificationStore
	supervisor    *process.Supervisor
}

// NewTeamStatusTool creates the get-team-status tool.
func NewTeamStatusTool(
	sessions *queue.SessionStore,
	verifications *queue.VerificationStore,
	supervisor *process.Supervisor,
) *TeamStatusTool {
	return &TeamStatusTool{
		sessions:      sessions,
		verifications: verifications,
		supervisor:    supervisor,
	}
}

// Definition describes get-team-status to the MCP client.
func (t *TeamStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("get-team-status",
		mcp.WithDescription("Get the current status of an agent team session, including task progress and active teammates."),
		mcp.WithString("sessionId",
			mcp.Required(),
			mcp.Description("The session ID returned by dispatch-plan"),
		),
	)
}

// Handle runs get-team-status.
func (t *TeamStatusTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("sessionId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := t.sessions.Get(sessionID)
	if sess == nil {
		return notFoundResult("Session", sessionID), nil
	}

	handle := t.supervisor.Active(sessionID)
	teamStatus := teams.ReadStatus(sess.ProjectDir)
	pending := t.verifications.List(queue.VerificationFilter{
		Status:    string(models.VerificationPending),
		SessionID: sessionID,
	})

	payload := map[string]any{
		"sessionId":            sess.ID,
		"teamName":             sess.TeamName,
		"projectDir":           sess.ProjectDir,
		"status":               sess.Status,
		"startedAt":            sess.StartedAt,
		"cliProcessRunning":    handle != nil && !handle.Exited(),
		"tasks":                teamStatus.Tasks,
		"pendingVerifications": len(pending),
	}
	if len(teamStatus.Errors) > 0 {
		payload["taskReadErrors"] = teamStatus.Errors
	}
	return jsonResult(payload), nil
}
