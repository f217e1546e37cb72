package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
agents:
  - name: a1
    x: 1.0
    y: 2.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Agents) != 1 {
		t.Fatalf("len(Agents) = %d, want 1", len(cfg.Agents))
	}
	a := cfg.Agents[0]
	if a.Type != "vfh" {
		t.Errorf("Type = %q, want vfh (default)", a.Type)
	}
	if a.Shape != "circle" {
		t.Errorf("Shape = %q, want circle (default)", a.Shape)
	}
	if a.Sensor.Count != 8 {
		t.Errorf("Sensor.Count = %d, want 8 (default)", a.Sensor.Count)
	}
	if !a.Logging() {
		t.Error("Logging() = false, want true (default)")
	}
}

func TestLoadHonorsExplicitOverrides(t *testing.T) {
	path := writeTempConfig(t, `
agents:
  - name: a1
    type: patrol
    shape: box
    sensor:
      count: 16
    logging: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a := cfg.Agents[0]
	if a.Type != "patrol" {
		t.Errorf("Type = %q, want patrol", a.Type)
	}
	if a.Shape != "box" {
		t.Errorf("Shape = %q, want box", a.Shape)
	}
	if a.Sensor.Count != 16 {
		t.Errorf("Sensor.Count = %d, want 16", a.Sensor.Count)
	}
	if a.Logging() {
		t.Error("Logging() = true, want false (explicit override)")
	}
}

func TestValidateRejectsUnknownShape(t *testing.T) {
	a := AgentConfig{Name: "bad", Type: "vfh", Shape: "triangle"}
	err := a.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want an error for an unknown shape")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Errorf("error type = %T, want *ConfigError", err)
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	a := AgentConfig{Name: "bad", Type: "wander", Shape: "circle"}
	if err := a.Validate(); err == nil {
		t.Fatal("Validate() = nil, want an error for an unknown type")
	}
}

func TestValidAgentsSkipsOnlyBadEntries(t *testing.T) {
	cfg := &Config{
		Agents: []AgentConfig{
			{Name: "good", Type: "vfh", Shape: "circle"},
			{Name: "bad", Type: "vfh", Shape: "hexagon"},
		},
	}
	valid, errs := cfg.ValidAgents()
	if len(valid) != 1 || valid[0].Name != "good" {
		t.Errorf("valid = %+v, want just \"good\"", valid)
	}
	if len(errs) != 1 {
		t.Errorf("len(errs) = %d, want 1", len(errs))
	}
}
