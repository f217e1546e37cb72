// Command vfhagent runs a headless VFH navigation simulation from a
// single YAML config file, ticking every configured agent until every
// VFH agent reaches its goal or maxTicks is hit (patrol agents do not
// hold the run open) and writing each agent's telemetry archive when
// logging is enabled.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sarcasticnature/just/agent"
	"github.com/sarcasticnature/just/config"
	"github.com/sarcasticnature/just/physics"
)

// maxTicks bounds a headless run so the CLI always terminates even if a
// goal is unreachable; goal-reached termination is left to this external
// driver rather than to the navigation core itself.
const maxTicks = 100_000

// trackedAgent pairs a running agent with the goal-reached test the
// driver loop uses to decide when to stop: patrol agents have no goal
// to reach, so trackGoal is false for them.
type trackedAgent struct {
	agent.Agent
	goal      physics.Vec2
	tolerance float64
	trackGoal bool
}

func (t trackedAgent) reachedGoal() bool {
	if !t.trackGoal {
		return true
	}
	return t.Body().LocalPoint(t.goal).Length() < t.tolerance
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run implements the process contract on argv rather than calling
// os.Exit directly, so it stays testable: a single positional
// configuration-file argument, exit 1 on a wrong argument count, exit 2
// when the file can't be parsed, and exit 3 when the document has no
// agent that validates.
func run(argv []string, stdout, stderr *os.File) int {
	if len(argv) != 2 {
		fmt.Fprintln(stderr, "Incorrect number of arguments specified. "+
			"A single argument with the path to a configuration file is required.")
		return 1
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(stdout, nil)))

	cfg, err := config.Load(argv[1])
	if err != nil {
		fmt.Fprintf(stderr, "Parsing the config file failed with error: %v\n", err)
		return 2
	}

	validConfigs, errs := cfg.ValidAgents()
	for _, verr := range errs {
		slog.Warn("skipping invalid agent", "error", verr)
	}
	if len(validConfigs) == 0 {
		fmt.Fprintln(stderr, "Error parsing 'agents' array in config, exiting")
		return 3
	}

	world := physics.NewWorld()
	outputDir := os.Getenv("VFHAGENT_OUTPUT_DIR")

	var agents []trackedAgent
	for _, ac := range validConfigs {
		a, err := agent.New(ac, world, outputDir)
		if err != nil {
			slog.Warn("skipping agent that failed to build", "error", err)
			continue
		}
		agents = append(agents, trackedAgent{
			Agent:     a,
			goal:      physics.Vec2{X: ac.Goal.X, Y: ac.Goal.Y},
			tolerance: ac.GoalTolerance,
			trackGoal: ac.Type == "vfh",
		})
	}
	if len(agents) == 0 {
		fmt.Fprintln(stderr, "Error parsing 'agents' array in config, exiting")
		return 3
	}

	dt := 1.0 / float64(cfg.World.FPS)
	slog.Info("starting simulation",
		"agents", len(agents),
		"world_width", cfg.World.Width,
		"world_height", cfg.World.Height,
		"fps", cfg.World.FPS,
	)

	boundsW := float64(cfg.World.Width) / cfg.World.Scale
	boundsH := float64(cfg.World.Height) / cfg.World.Scale

	for tick := 0; tick < maxTicks; tick++ {
		for _, a := range agents {
			a.Step(dt)
		}
		world.Step(dt, boundsW, boundsH)

		if allReached(agents) {
			slog.Info("all agents reached their goal", "tick", tick)
			break
		}
	}

	for _, a := range agents {
		if closer, ok := a.Agent.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("error closing agent telemetry", "agent", a.Name(), "error", err)
			}
		}
	}

	return 0
}

func allReached(agents []trackedAgent) bool {
	for _, a := range agents {
		if !a.reachedGoal() {
			return false
		}
	}
	return true
}
