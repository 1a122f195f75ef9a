package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/n8Develop/shepherd/internal/models"
	"github.com/n8Develop/shepherd/internal/queue"
)

// VerificationQueueTool lists verification requests awaiting review.
type VerificationQueueTool struct {
	store *queue.VerificationStore
}

// NewVerificationQueueTool creates the get-verification-queue tool.
func NewVerificationQueueTool(store *queue.VerificationStore) *VerificationQueueTool {
	return &VerificationQueueTool{store: store}
}

// Definition describes get-verification-queue to the MCP client.
func (t *VerificationQueueTool) Definition() mcp.Tool {
	return mcp.NewTool("get-verification-queue",
		mcp.WithDescription("List pending visual verification requests from agent team teammates. Each request includes artifacts (files, URLs) that need human visual inspection."),
		mcp.WithString("status",
			mcp.Description("Filter by verification status"),
			mcp.Enum("pending", "approved", "rejected", "all"),
			mcp.DefaultString("pending"),
		),
		mcp.WithString("sessionId",
			mcp.Description("Filter by session ID"),
		),
	)
}

// Handle runs get-verification-queue.
func (t *VerificationQueueTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := req.GetString("status", "pending")
	sessionID := req.GetString("sessionId", "")

	listed := status
	if listed == "all" {
		listed = ""
	}
	list := t.store.List(queue.VerificationFilter{Status: listed, SessionID: sessionID})

	return jsonResult(map[string]any{
		"filter": map[string]string{"status": status, "sessionId": sessionID},
		"count":  len(list),
		"queue":  list,
	}), nil
}

// SubmitVerificationTool resolves a verification request.
type SubmitVerificationTool struct {
	store *queue.VerificationStore
}

// NewSubmitVerificationTool creates the submit-verification tool.
func NewSubmitVerificationTool(store *queue.VerificationStore) *SubmitVerificationTool {
	return &SubmitVerificationTool{store: store}
}

// Definition describes submit-verification to the MCP client.
func (t *SubmitVerificationTool) Definition() mcp.Tool {
	return mcp.NewTool("submit-verification",
		mcp.WithDescription("Approve or reject a visual verification request. Updates the request status so the teammate's TaskCompleted hook can proceed."),
		mcp.WithString("verificationId",
			mcp.Required(),
			mcp.Description("The verification request ID to resolve"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("Whether the visual check passed or failed"),
			mcp.Enum("approved", "rejected"),
		),
		mcp.WithString("resolution",
			mcp.Required(),
			mcp.Description("Brief explanation of the verification result"),
		),
		mcp.WithString("feedback",
			mcp.Description("Detailed feedback for the teammate (only needed for rejections)"),
		),
	)
}

// Handle runs submit-verification.
func (t *SubmitVerificationTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	verificationID, err := req.RequireString("verificationId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	statusArg, err := req.RequireString("status")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resolution, err := req.RequireString("resolution")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if t.store.Get(verificationID) == nil {
		return notFoundResult("Verification", verificationID), nil
	}

	status := models.VerificationStatus(statusArg)
	upd := queue.VerificationUpdate{
		Status:     &status,
		Resolution: &resolution,
	}
	if feedback := req.GetString("feedback", ""); feedback != "" {
		upd.Feedback = &feedback
	}

	updated, err := t.store.Update(verificationID, upd)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if updated == nil {
		return notFoundResult("Verification", verificationID), nil
	}
	return jsonResult(updated), nil
}
