// Package tools exposes the coordination surface consumed by the AI client
// over MCP. Each tool returns a single text payload of indented JSON; an
// absent record is reported as an {"error": ...} object in that payload,
// not as a protocol-level fault.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/n8Develop/shepherd/internal/orchestrator"
	"github.com/n8Develop/shepherd/internal/process"
	"github.com/n8Develop/shepherd/internal/queue"
)

// Register wires all Shepherd tools onto the MCP server.
func Register(
	s *server.MCPServer,
	orch *orchestrator.Service,
	sessions *queue.SessionStore,
	verifications *queue.VerificationStore,
	feedback *queue.FeedbackStore,
	supervisor *process.Supervisor,
) {
	dispatch := NewDispatchTool(orch)
	s.AddTool(dispatch.Definition(), dispatch.Handle)

	status := NewTeamStatusTool(sessions, verifications, supervisor)
	s.AddTool(status.Definition(), status.Handle)

	vq := NewVerificationQueueTool(verifications)
	s.AddTool(vq.Definition(), vq.Handle)

	submit := NewSubmitVerificationTool(verifications)
	s.AddTool(submit.Definition(), submit.Handle)

	fb := NewSendFeedbackTool(feedback)
	s.AddTool(fb.Definition(), fb.Handle)
}

// jsonResult renders v as one indented-JSON text content block.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("encode result: " + err.Error())
	}
	return mcp.NewToolResultText(string(data))
}

// notFoundResult reports an absent record inside the tool payload.
func notFoundResult(kind, id string) *mcp.CallToolResult {
	return jsonResult(map[string]string{
		"error": fmt.Sprintf("%s %s not found", kind, id),
	})
}
