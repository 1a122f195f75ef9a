package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/n8Develop/shepherd/internal/orchestrator"
)

// DispatchTool starts a new agent-team session from a plan.
type DispatchTool struct {
	orch *orchestrator.Service
}

// NewDispatchTool creates the dispatch-plan tool.
func NewDispatchTool(orch *orchestrator.Service) *DispatchTool {
	return &DispatchTool{orch: orch}
}

// Definition describes dispatch-plan to the MCP client.
func (t *DispatchTool) Definition() mcp.Tool {
	return mcp.NewTool("dispatch-plan",
		mcp.WithDescription("Dispatch a plan to a Claude Code CLI agent team. Spawns a CLI lead with agent teams enabled and returns a session ID for tracking."),
		mcp.WithString("plan",
			mcp.Required(),
			mcp.Description("The plan to dispatch to the agent team"),
		),
		mcp.WithString("projectDir",
			mcp.Required(),
			mcp.Description("Absolute path to the project directory"),
		),
		mcp.WithString("teamName",
			mcp.Description("Optional name for the agent team"),
		),
	)
}

// Handle runs dispatch-plan.
func (t *DispatchTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plan, err := req.RequireString("plan")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	projectDir, err := req.RequireString("projectDir")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess, err := t.orch.Dispatch(plan, projectDir, req.GetString("teamName", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"sessionId":  sess.ID,
		"status":     sess.Status,
		"teamName":   sess.TeamName,
		"projectDir": sess.ProjectDir,
		"startedAt":  sess.StartedAt,
	}), nil
}
