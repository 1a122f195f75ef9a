package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TeamPreset is an operator-defined profile for a named team: a description
// for the dashboard and extra environment variables injected into the
// spawned CLI process.
type TeamPreset struct {
	Description string            `yaml:"description" json:"description"`
	Env         map[string]string `yaml:"env" json:"env,omitempty"`
}

// TeamRegistry is the optional teams.yaml registry under the data root.
type TeamRegistry struct {
	Teams map[string]TeamPreset `yaml:"teams" json:"teams"`
}

// LoadTeams reads <root>/teams.yaml. A missing file yields an empty
// registry with no error; a malformed file yields an empty registry and the
// parse error, so the caller can warn without refusing to start.
func LoadTeams(root string) (*TeamRegistry, error) {
	registry := &TeamRegistry{Teams: map[string]TeamPreset{}}

	data, err := os.ReadFile(filepath.Join(root, "teams.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return registry, nil
		}
		return registry, fmt.Errorf("read teams.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, registry); err != nil {
		return &TeamRegistry{Teams: map[string]TeamPreset{}}, fmt.Errorf("parse teams.yaml: %w", err)
	}
	if registry.Teams == nil {
		registry.Teams = map[string]TeamPreset{}
	}
	return registry, nil
}

// Env returns the extra environment for a named team, or nil when the team
// has no preset.
func (r *TeamRegistry) Env(teamName string) map[string]string {
	preset, ok := r.Teams[teamName]
	if !ok {
		return nil
	}
	return preset.Env
}
