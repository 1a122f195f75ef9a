package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTeams(t *testing.T) {
	t.Run("missing file yields empty registry", func(t *testing.T) {
		registry, err := LoadTeams(t.TempDir())
		if err != nil {
			t.Fatalf("LoadTeams: %v", err)
		}
		if len(registry.Teams) != 0 {
			t.Fatalf("teams = %+v, want empty", registry.Teams)
		}
		if registry.Env("anything") != nil {
			t.Fatal("Env on empty registry must be nil")
		}
	})

	t.Run("parses presets", func(t *testing.T) {
		root := t.TempDir()
		content := `teams:
  frontend:
    description: UI work
    env:
      TEAM_FOCUS: frontend
`
		if err := os.WriteFile(filepath.Join(root, "teams.yaml"), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}

		registry, err := LoadTeams(root)
		if err != nil {
			t.Fatalf("LoadTeams: %v", err)
		}
		preset, ok := registry.Teams["frontend"]
		if !ok {
			t.Fatalf("teams = %+v, want frontend", registry.Teams)
		}
		if preset.Description != "UI work" {
			t.Fatalf("description = %q", preset.Description)
		}
		if registry.Env("frontend")["TEAM_FOCUS"] != "frontend" {
			t.Fatalf("env = %v", registry.Env("frontend"))
		}
	})

	t.Run("malformed file reports error with empty registry", func(t *testing.T) {
		root := t.TempDir()
		if err := os.WriteFile(filepath.Join(root, "teams.yaml"), []byte(":\n  - not yaml"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}

		registry, err := LoadTeams(root)
		if err == nil {
			t.Fatal("LoadTeams accepted malformed yaml")
		}
		if registry == nil || len(registry.Teams) != 0 {
			t.Fatalf("registry = %+v, want usable empty registry", registry)
		}
	})
}
