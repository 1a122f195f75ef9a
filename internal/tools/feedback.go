package tools

import (
	"context"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/n8Develop/shepherd/internal/queue"
)

// SendFeedbackTool records a note from the operator to a running team.
type SendFeedbackTool struct {
	store *queue.FeedbackStore
}

// NewSendFeedbackTool creates the send-feedback tool.
func NewSendFeedbackTool(store *queue.FeedbackStore) *SendFeedbackTool {
	return &SendFeedbackTool{store: store}
}

// Definition describes send-feedback to the MCP client.
func (t *SendFeedbackTool) Definition() mcp.Tool {
	return mcp.NewTool("send-feedback",
		mcp.WithDescription("Send feedback or corrections from Desktop to a CLI teammate. The teammate's TeammateIdle hook will pick this up."),
		mcp.WithString("verificationId",
			mcp.Required(),
			mcp.Description("The verification request this feedback relates to"),
		),
		mcp.WithString("sessionId",
			mcp.Required(),
			mcp.Description("The session ID of the agent team"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The feedback content: corrections, notes, or instructions for the teammate"),
		),
	)
}

// Handle runs send-feedback.
func (t *SendFeedbackTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	verificationID, err := req.RequireString("verificationId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sessionID, err := req.RequireString("sessionId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry, err := t.store.Create(uuid.New().String(), sessionID, verificationID, content)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(entry), nil
}
