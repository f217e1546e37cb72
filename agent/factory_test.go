package agent

import (
	"testing"

	"github.com/sarcasticnature/just/config"
	"github.com/sarcasticnature/just/physics"
)

func TestNewBuildsVFHAgent(t *testing.T) {
	world := physics.NewWorld()
	cfg := config.AgentConfig{
		Name: "a1", Type: "vfh", Shape: "circle", Radius: 0.5, Density: 1,
		Grid:   config.GridConfig{Width: 100},
		Sensor: config.SensorConfig{Count: 8, Range: 10},
		Goal:   config.GoalConfig{X: 20, Y: 0},
		VFH: config.VFHTuning{
			WindowSize: 30, AlphaDeg: 5, SmoothingHalfWidth: 5,
			MaxValleySectors: 18, ObstacleSlope: 500,
		},
		ValleyThreshold: 5,
		Speed:           1,
	}

	a, err := New(cfg, world, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := a.(*VFHAgent); !ok {
		t.Errorf("New() returned %T, want *VFHAgent", a)
	}
	if a.Name() != "a1" {
		t.Errorf("Name() = %q, want %q", a.Name(), "a1")
	}
}

func TestNewBuildsPatrolAgent(t *testing.T) {
	world := physics.NewWorld()
	cfg := config.AgentConfig{
		Name: "p1", Type: "patrol", Shape: "box", Width: 2, Height: 1, Density: 1,
		Waypoint:      config.WaypointConfig{X: 10, Y: 0},
		Speed:         1,
		GoalTolerance: 0.1,
	}

	a, err := New(cfg, world, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := a.(*PatrolAgent); !ok {
		t.Errorf("New() returned %T, want *PatrolAgent", a)
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	world := physics.NewWorld()
	cfg := config.AgentConfig{Name: "bad", Type: "flying", Shape: "circle", Radius: 1, Density: 1}

	if _, err := New(cfg, world, ""); err == nil {
		t.Fatal("New() error = nil, want an error for an unsupported agent type")
	}
}

func TestNewRejectsUnknownShape(t *testing.T) {
	world := physics.NewWorld()
	cfg := config.AgentConfig{Name: "bad", Type: "vfh", Shape: "triangle"}

	if _, err := New(cfg, world, ""); err == nil {
		t.Fatal("New() error = nil, want an error for an unsupported shape")
	}
}
