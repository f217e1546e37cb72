package agent

import (
	"log/slog"
	"math"

	"github.com/sarcasticnature/just/histogram"
	"github.com/sarcasticnature/just/physics"
	"github.com/sarcasticnature/just/sensor"
	"github.com/sarcasticnature/just/telemetry"
	"github.com/sarcasticnature/just/vfh"
)

// VFHAgent drives the full reactive-navigation tick: sense, integrate,
// window, histogram, smooth, steer, actuate. A nil Logger disables the
// telemetry archive; Step skips its archive writes when it is nil.
type VFHAgent struct {
	name   string
	body   physics.Body
	world  physics.World
	grid   *histogram.Grid
	sensor *sensor.Array
	goal   physics.Vec2
	params vfh.Params
	logger *telemetry.Logger
	diag   *slog.Logger
	stats  *telemetry.Collector
	tick   int
}

// NewVFHAgent builds a VFH-policy agent around an already-created body.
// statsWindow sizes the rolling window of commanded-speed samples
// summarized into telemetry; 0 disables windowed statistics. A nil diag
// logger falls back to slog.Default() so boundary-error and degenerate-
// steering diagnostics are never silently dropped.
func NewVFHAgent(name string, body physics.Body, world physics.World, gridSide, sensorCount int, sensorRange float64, goal physics.Vec2, params vfh.Params, logger *telemetry.Logger, statsWindow int, diag *slog.Logger) *VFHAgent {
	if diag == nil {
		diag = slog.Default()
	}
	var stats *telemetry.Collector
	if statsWindow > 0 {
		stats = telemetry.NewCollector(statsWindow)
	}
	return &VFHAgent{
		name:   name,
		body:   body,
		world:  world,
		grid:   histogram.NewGrid(gridSide, gridSide),
		sensor: sensor.NewArray(body, sensorCount, sensorRange),
		goal:   goal,
		params: params,
		logger: logger,
		diag:   diag,
		stats:  stats,
	}
}

func (a *VFHAgent) Name() string       { return a.name }
func (a *VFHAgent) Body() physics.Body { return a.body }

// Close flushes and closes this agent's telemetry archive, if it has
// one. Safe to call on an agent built without logging.
func (a *VFHAgent) Close() error {
	return a.logger.Close()
}

// Step implements the tick pipeline of the navigation core. delta_t is
// accepted but unused, reserved for a future staggered-sensor mode.
func (a *VFHAgent) Step(deltaT float64) {
	pos := a.body.Position()
	ox := int(math.Round(pos.X))
	oy := int(math.Round(pos.Y))

	readings := a.sensor.SenseAll(a.world)
	for _, r := range readings {
		theta := physics.NormalizeAngle(a.body.Angle() + r.Angle)
		dist := r.Distance
		if !r.Detected {
			dist = a.sensor.MaxRange()
		}
		a.grid.AddPercept(ox, oy, theta, dist, r.Detected)
	}

	if a.logger != nil {
		if cells, ok := a.grid.Subgrid(0, 0, a.grid.Width(), a.grid.Height()); ok {
			a.logger.LogFullGrid(a.tick, cells)
		}
	}

	window, ok := a.grid.Subgrid(ox, oy, a.params.WindowSize, a.params.WindowSize)
	if !ok {
		a.diag.Debug("active window falls off the grid, holding position",
			"agent", a.name, "tick", a.tick, "x", ox, "y", oy)
		a.body.SetLinearVelocity(0, 0)
		a.body.SetAngularVelocity(0)
		return
	}

	hist := vfh.BuildPolarHistogram(window, a.params.WindowSize, a.params)
	smoothed := vfh.Smooth(hist, a.params)

	goalLocal := a.body.LocalPoint(a.goal)
	cmd, found := vfh.ComputeSteering(smoothed, goalLocal, a.params)
	if !found {
		a.diag.Debug("no valley found in either scan direction, standing still",
			"agent", a.name, "tick", a.tick)
	}

	a.body.SetLinearVelocity(cmd.Speed*math.Cos(cmd.Angle), cmd.Speed*math.Sin(cmd.Angle))

	if a.logger != nil {
		a.logger.LogPolarHistogram(a.tick, smoothed)
		a.logger.LogWindowHistogram(a.tick, window)
		a.logger.LogMotion(telemetry.MotionRow{
			Tick:  a.tick,
			Angle: cmd.Angle,
			Speed: cmd.Speed,
			X:     pos.X,
			Y:     pos.Y,
		})
	}

	if s, flushed := a.stats.RecordSpeed(cmd.Speed); flushed {
		a.diag.Debug("window speed stats", "agent", a.name, "tick", a.tick, "stats", s)
		a.logger.LogWindowStats(a.tick, s)
	}

	a.tick++
}
