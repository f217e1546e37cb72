package agent

import (
	"fmt"
	"log/slog"

	"github.com/sarcasticnature/just/config"
	"github.com/sarcasticnature/just/physics"
	"github.com/sarcasticnature/just/telemetry"
	"github.com/sarcasticnature/just/vfh"
)

// New builds one Agent from a validated AgentConfig entry, creating its
// body in world and, when logging is enabled, opening its telemetry
// archive under logDir/<name>. An unrecognized Shape or Type is
// reported as an error.
func New(cfg config.AgentConfig, world physics.World, logDir string) (Agent, error) {
	shapeDef, err := buildShape(cfg)
	if err != nil {
		return nil, err
	}

	body := world.CreateBody(physics.BodyDef{
		X:     cfg.X,
		Y:     cfg.Y,
		Angle: cfg.Theta,
		Shape: shapeDef,
	})

	switch cfg.Type {
	case "vfh":
		var logger *telemetry.Logger
		if cfg.Logging() && logDir != "" {
			logger, err = telemetry.NewLogger(logDir+"/"+cfg.Name, false)
			if err != nil {
				return nil, fmt.Errorf("agent %q: %w", cfg.Name, err)
			}
			logger.SnapshotConfig(cfg)
		}
		params := vfh.NewParams(
			cfg.VFH.WindowSize,
			cfg.VFH.AlphaDeg,
			cfg.VFH.ObstacleSlope,
			cfg.VFH.SmoothingHalfWidth,
			cfg.VFH.MaxValleySectors,
			cfg.ValleyThreshold,
			cfg.Speed,
		)
		goal := physics.Vec2{X: cfg.Goal.X, Y: cfg.Goal.Y}
		diag := slog.Default().With("agent", cfg.Name)
		return NewVFHAgent(cfg.Name, body, world, cfg.Grid.Width, cfg.Sensor.Count, cfg.Sensor.Range, goal, params, logger, cfg.VFH.StatsWindow, diag), nil

	case "patrol":
		a := physics.Vec2{X: cfg.X, Y: cfg.Y}
		b := physics.Vec2{X: cfg.Waypoint.X, Y: cfg.Waypoint.Y}
		return NewPatrolAgent(cfg.Name, body, a, b, cfg.Speed, cfg.GoalTolerance), nil

	default:
		return nil, fmt.Errorf("agent %q: unsupported type %q", cfg.Name, cfg.Type)
	}
}

func buildShape(cfg config.AgentConfig) (physics.ShapeDef, error) {
	switch cfg.Shape {
	case "circle":
		return physics.ShapeDef{Kind: physics.ShapeCircle, Radius: cfg.Radius, Density: cfg.Density}, nil
	case "box":
		return physics.ShapeDef{Kind: physics.ShapeBox, HalfWidth: cfg.Width / 2, HalfHeight: cfg.Height / 2, Density: cfg.Density}, nil
	default:
		return physics.ShapeDef{}, fmt.Errorf("agent %q: unsupported shape %q", cfg.Name, cfg.Shape)
	}
}
