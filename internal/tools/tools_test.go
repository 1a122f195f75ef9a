package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/n8Develop/shepherd/internal/config"
	"github.com/n8Develop/shepherd/internal/models"
	"github.com/n8Develop/shepherd/internal/orchestrator"
	"github.com/n8Develop/shepherd/internal/process"
	"github.com/n8Develop/shepherd/internal/queue"
)

type toolEnv struct {
	orch          *orchestrator.Service
	sessions      *queue.SessionStore
	verifications *queue.VerificationStore
	feedback      *queue.FeedbackStore
	supervisor    *process.Supervisor
}

func newToolEnv(t *testing.T) *toolEnv {
	t.Helper()
	paths := queue.New(t.TempDir())
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := queue.NewSessionStore(paths)
	verifications := queue.NewVerificationStore(paths)
	feedback := queue.NewFeedbackStore(paths)
	supervisor := process.New(paths, logger, process.WithCommand("/bin/echo"))
	registry := &config.TeamRegistry{Teams: map[string]config.TeamPreset{}}
	orch := orchestrator.NewService(paths, sessions, supervisor, registry, logger)
	return &toolEnv{
		orch:          orch,
		sessions:      sessions,
		verifications: verifications,
		feedback:      feedback,
		supervisor:    supervisor,
	}
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content blocks = %d, want 1", len(res.Content))
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want TextContent", res.Content[0])
	}
	return text.Text
}

func resultJSON(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("parse payload %q: %v", resultText(t, res), err)
	}
	return payload
}

func TestDispatchTool(t *testing.T) {
	env := newToolEnv(t)
	tool := NewDispatchTool(env.orch)

	t.Run("missing plan is a tool error", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), callRequest("dispatch-plan", map[string]any{
			"projectDir": t.TempDir(),
		}))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if !res.IsError {
			t.Fatal("expected IsError for missing plan")
		}
	})

	t.Run("returns the new session summary", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), callRequest("dispatch-plan", map[string]any{
			"plan":       "build X",
			"projectDir": t.TempDir(),
		}))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if res.IsError {
			t.Fatalf("unexpected tool error: %s", resultText(t, res))
		}
		payload := resultJSON(t, res)
		if payload["sessionId"] == "" || payload["sessionId"] == nil {
			t.Fatalf("payload = %v, want sessionId", payload)
		}
		if payload["status"] != "running" {
			t.Fatalf("status = %v, want running", payload["status"])
		}
		if payload["teamName"] != "default" {
			t.Fatalf("teamName = %v, want default", payload["teamName"])
		}

		if env.sessions.Get(payload["sessionId"].(string)) == nil {
			t.Fatal("session not persisted")
		}
	})
}

func TestTeamStatusTool(t *testing.T) {
	env := newToolEnv(t)
	tool := NewTeamStatusTool(env.sessions, env.verifications, env.supervisor)

	t.Run("unknown session is an error payload", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), callRequest("get-team-status", map[string]any{
			"sessionId": "ghost",
		}))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if res.IsError {
			t.Fatal("absent record must not be a protocol-level fault")
		}
		payload := resultJSON(t, res)
		if !strings.Contains(payload["error"].(string), "ghost") {
			t.Fatalf("payload = %v, want error naming the session", payload)
		}
	})

	t.Run("reports snapshot for a live session", func(t *testing.T) {
		sess, err := env.orch.Dispatch("build X", t.TempDir(), "frontend")
		if err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		if handle := env.supervisor.Active(sess.ID); handle != nil {
			select {
			case <-handle.Done():
			case <-time.After(5 * time.Second):
				t.Fatal("process did not exit in time")
			}
		}

		if _, err := env.verifications.Create(queue.CreateVerificationInput{
			ID:        "v1",
			SessionID: sess.ID,
			Artifacts: []models.Artifact{{Type: "url", URL: "http://localhost:3000"}},
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}

		res, err := tool.Handle(context.Background(), callRequest("get-team-status", map[string]any{
			"sessionId": sess.ID,
		}))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		payload := resultJSON(t, res)
		if payload["teamName"] != "frontend" {
			t.Fatalf("teamName = %v", payload["teamName"])
		}
		if running, ok := payload["cliProcessRunning"].(bool); !ok || running {
			t.Fatalf("cliProcessRunning = %v, want false", payload["cliProcessRunning"])
		}
		if payload["pendingVerifications"] != float64(1) {
			t.Fatalf("pendingVerifications = %v, want 1", payload["pendingVerifications"])
		}
		if _, present := payload["taskReadErrors"]; present {
			t.Fatalf("taskReadErrors present without errors: %v", payload)
		}
	})
}

func TestVerificationQueueTool(t *testing.T) {
	env := newToolEnv(t)
	tool := NewVerificationQueueTool(env.verifications)

	seed := func(id, sessionID string, status models.VerificationStatus) {
		t.Helper()
		if _, err := env.verifications.Create(queue.CreateVerificationInput{
			ID:        id,
			SessionID: sessionID,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if status != models.VerificationPending {
			if _, err := env.verifications.Update(id, queue.VerificationUpdate{Status: &status}); err != nil {
				t.Fatalf("Update: %v", err)
			}
		}
	}
	seed("v1", "s1", models.VerificationPending)
	seed("v2", "s1", models.VerificationApproved)
	seed("v3", "s2", models.VerificationPending)

	t.Run("defaults to pending", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), callRequest("get-verification-queue", map[string]any{}))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		payload := resultJSON(t, res)
		if payload["count"] != float64(2) {
			t.Fatalf("count = %v, want 2", payload["count"])
		}
	})

	t.Run("all with session filter", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), callRequest("get-verification-queue", map[string]any{
			"status":    "all",
			"sessionId": "s1",
		}))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		payload := resultJSON(t, res)
		if payload["count"] != float64(2) {
			t.Fatalf("count = %v, want 2", payload["count"])
		}
	})
}

func TestSubmitVerificationTool(t *testing.T) {
	env := newToolEnv(t)
	tool := NewSubmitVerificationTool(env.verifications)

	t.Run("unknown request is an error payload", func(t *testing.T) {
		res, err := tool.Handle(context.Background(), callRequest("submit-verification", map[string]any{
			"verificationId": "ghost",
			"status":         "approved",
			"resolution":     "fine",
		}))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		payload := resultJSON(t, res)
		if !strings.Contains(payload["error"].(string), "ghost") {
			t.Fatalf("payload = %v", payload)
		}
	})

	t.Run("resolves the request", func(t *testing.T) {
		if _, err := env.verifications.Create(queue.CreateVerificationInput{ID: "v1", SessionID: "s1"}); err != nil {
			t.Fatalf("Create: %v", err)
		}

		res, err := tool.Handle(context.Background(), callRequest("submit-verification", map[string]any{
			"verificationId": "v1",
			"status":         "rejected",
			"resolution":     "broken",
			"feedback":       "overlap on mobile",
		}))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		payload := resultJSON(t, res)
		if payload["status"] != "rejected" {
			t.Fatalf("status = %v", payload["status"])
		}
		if payload["resolvedAt"] == nil {
			t.Fatal("resolvedAt not stamped")
		}
		if payload["feedback"] != "overlap on mobile" {
			t.Fatalf("feedback = %v", payload["feedback"])
		}
	})
}

func TestSendFeedbackTool(t *testing.T) {
	env := newToolEnv(t)
	tool := NewSendFeedbackTool(env.feedback)

	res, err := tool.Handle(context.Background(), callRequest("send-feedback", map[string]any{
		"verificationId": "v1",
		"sessionId":      "s1",
		"content":        "try a narrower layout",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	payload := resultJSON(t, res)
	if payload["id"] == "" || payload["id"] == nil {
		t.Fatalf("payload = %v, want generated id", payload)
	}
	if payload["content"] != "try a narrower layout" {
		t.Fatalf("content = %v", payload["content"])
	}

	list := env.feedback.List(queue.FeedbackFilter{SessionID: "s1"})
	if len(list) != 1 {
		t.Fatalf("persisted entries = %d, want 1", len(list))
	}
}
