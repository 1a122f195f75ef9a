// Package process owns the lifecycle of spawned Claude CLI processes: one
// process per session, with stdout/stderr streamed into the session's
// append-only JSONL log.
package process

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/n8Develop/shepherd/internal/queue"
)

const (
	// nestingGuardEnv is stripped so a spawned CLI doesn't refuse to run
	// when the server itself runs inside a Claude session.
	nestingGuardEnv = "CLAUDECODE"
	// agentTeamsEnv enables the experimental agent-teams capability in
	// the spawned CLI.
	agentTeamsEnv = "CLAUDE_CODE_EXPERIMENTAL_AGENT_TEAMS"

	defaultCommand = "claude"
)

// LogRecord is one line of a session's log.jsonl.
type LogRecord struct {
	Timestamp string `json:"timestamp"`
	Stream    string `json:"stream"` // "stdout", "stderr" or "system"
	Data      string `json:"data"`
}

// Handle is an owned reference to a spawned CLI process.
type Handle struct {
	SessionID string

	cmd  *exec.Cmd
	done chan struct{}
}

// Done is closed once the process has exited and its log records have been
// flushed.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Exited reports whether the process has already exited.
func (h *Handle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Supervisor maps session ids to live process handles. The map reflects
// only processes spawned by this running instance; it is not reconstructed
// from disk on restart.
type Supervisor struct {
	paths   *queue.Paths
	logger  *slog.Logger
	command string

	resolveOnce sync.Once
	resolved    string

	mu     sync.Mutex
	active map[string]*Handle
}

// Option customizes a Supervisor.
type Option func(*Supervisor)

// WithCommand overrides the CLI command name, for deployments (and tests)
// where the claude binary is not on PATH under its usual name.
func WithCommand(name string) Option {
	return func(s *Supervisor) { s.command = name }
}

// New creates a supervisor with an empty process map.
func New(paths *queue.Paths, logger *slog.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		paths:   paths,
		logger:  logger,
		command: defaultCommand,
		active:  make(map[string]*Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// commandPath resolves the CLI executable's absolute path once per
// instance, falling back to the bare command name when lookup fails.
func (s *Supervisor) commandPath() string {
	s.resolveOnce.Do(func() {
		path, err := exec.LookPath(s.command)
		if err != nil {
			s.resolved = s.command
			return
		}
		s.resolved = path
	})
	return s.resolved
}

// Spawn launches the CLI in print mode with the plan as its argument, cwd
// set to the project directory and extraEnv merged into the inherited
// environment. Output is streamed into the session's log. The returned
// error covers start failure only; everything after start is reported
// through the log stream.
func (s *Supervisor) Spawn(sessionID, plan, projectDir string, extraEnv map[string]string) (*Handle, error) {
	cmd := exec.Command(s.commandPath(), "-p", plan)
	cmd.Dir = projectDir
	cmd.Env = buildEnv(os.Environ(), extraEnv)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		s.appendLog(sessionID, "system", "Spawn error: "+err.Error())
		return nil, fmt.Errorf("start %s: %w", s.commandPath(), err)
	}

	handle := &Handle{
		SessionID: sessionID,
		cmd:       cmd,
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	s.active[sessionID] = handle
	s.mu.Unlock()

	var readers sync.WaitGroup
	readers.Add(2)
	go s.streamToLog(sessionID, "stdout", stdout, &readers)
	go s.streamToLog(sessionID, "stderr", stderr, &readers)

	go func() {
		readers.Wait()
		err := cmd.Wait()

		s.mu.Lock()
		delete(s.active, sessionID)
		s.mu.Unlock()

		exitCode := 0
		if cmd.ProcessState != nil {
			exitCode = cmd.ProcessState.ExitCode()
		}
		if err != nil && cmd.ProcessState == nil {
			s.appendLog(sessionID, "system", "Process error: "+err.Error())
		} else {
			s.appendLog(sessionID, "system", fmt.Sprintf("Process exited with code %d", exitCode))
		}
		close(handle.done)
	}()

	return handle, nil
}

// Active returns the handle for a session spawned by this instance, if the
// process is still tracked.
func (s *Supervisor) Active(sessionID string) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[sessionID]
}

// ActiveIDs lists the sessions with a tracked live process.
func (s *Supervisor) ActiveIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.active))
	for id := range s.active {
		ids = append(ids, id)
	}
	return ids
}

// streamToLog appends each output line as one log record. The scanner
// buffer is enlarged because CLI NDJSON lines can run long.
func (s *Supervisor) streamToLog(sessionID, stream string, r io.Reader, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s.appendLog(sessionID, stream, strings.TrimRight(scanner.Text(), " \t\r\n"))
	}
}

// appendLog appends one record to the session's log.jsonl. Failures are
// non-fatal and dropped: the log directory may not exist yet on first
// write, and losing a log line must never affect the process.
func (s *Supervisor) appendLog(sessionID, stream, data string) {
	record := LogRecord{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Stream:    stream,
		Data:      data,
	}
	line, err := json.Marshal(record)
	if err != nil {
		return
	}
	f, err := os.OpenFile(s.paths.SessionLogPath(sessionID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Debug("session log append skipped", "sessionId", sessionID, "error", err)
		return
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		s.logger.Debug("session log write failed", "sessionId", sessionID, "error", err)
	}
}

// buildEnv returns the host environment minus the nesting guard, plus the
// agent-teams flag and any team-preset variables.
func buildEnv(host []string, extra map[string]string) []string {
	env := make([]string, 0, len(host)+len(extra)+1)
	for _, kv := range host {
		if strings.HasPrefix(kv, nestingGuardEnv+"=") {
			continue
		}
		env = append(env, kv)
	}
	env = append(env, agentTeamsEnv+"=1")
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}
