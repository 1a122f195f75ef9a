// Package teams reads agent-team task state from a project directory.
//
// Agent teams store task state in {projectDir}/.claude/tasks/. The format
// is experimental and undocumented, so everything is read defensively and
// returned as raw data with minimal assumptions. If the storage format
// changes, only this package needs updating.
package teams

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/n8Develop/shepherd/internal/models"
	"github.com/n8Develop/shepherd/internal/queue"
)

// ReadStatus reads agent-team task state for a project. It never fails: a
// missing tasks directory is the normal "no tasks yet" state, and files
// that can't be read or parsed are collected into the result's Errors list
// by path.
func ReadStatus(projectDir string) *models.TeamStatus {
	tasksDir := filepath.Join(projectDir, ".claude", "tasks")
	status := &models.TeamStatus{
		ProjectDir: queue.Normalize(projectDir),
		TasksDir:   queue.Normalize(tasksDir),
		Tasks:      []models.TeamTask{},
		Errors:     []string{},
	}

	entries, err := os.ReadDir(tasksDir)
	if err != nil {
		// Directory doesn't exist or can't be read; the team may not
		// have written tasks yet.
		return status
	}

	for _, entry := range entries {
		entryPath := filepath.Join(tasksDir, entry.Name())

		if entry.IsDir() {
			// Agent teams may nest task data one level down.
			subEntries, err := os.ReadDir(entryPath)
			if err != nil {
				status.Errors = append(status.Errors, queue.Normalize(entryPath))
				continue
			}
			for _, sub := range subEntries {
				if !strings.HasSuffix(sub.Name(), ".json") {
					continue
				}
				subPath := filepath.Join(entryPath, sub.Name())
				if task, ok := readTask(subPath); ok {
					status.Tasks = append(status.Tasks, task)
				} else {
					status.Errors = append(status.Errors, queue.Normalize(subPath))
				}
			}
			continue
		}

		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if task, ok := readTask(entryPath); ok {
			status.Tasks = append(status.Tasks, task)
		} else {
			status.Errors = append(status.Errors, queue.Normalize(entryPath))
		}
	}

	return status
}

func readTask(path string) (models.TeamTask, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var task models.TeamTask
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, false
	}
	return task, true
}
