package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats summarizes a rolling window of per-tick speed samples.
type WindowStats struct {
	Ticks     int
	MeanSpeed float64
	StdSpeed  float64
	MinSpeed  float64
	MaxSpeed  float64
}

// LogValue renders WindowStats as a slog group so it prints as nested
// fields instead of a single opaque struct value.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("std_speed", s.StdSpeed),
		slog.Float64("min_speed", s.MinSpeed),
		slog.Float64("max_speed", s.MaxSpeed),
	)
}

// Collector accumulates speed samples and flushes a WindowStats summary
// once WindowSize samples have been recorded.
type Collector struct {
	WindowSize int
	samples    []float64
}

// NewCollector builds a collector that flushes every windowSize samples.
func NewCollector(windowSize int) *Collector {
	return &Collector{WindowSize: windowSize}
}

// RecordSpeed adds one sample, returning a flushed WindowStats and true
// once the window fills. A nil Collector is always safe to call, so an
// agent built without a stats window doesn't need an extra branch.
func (c *Collector) RecordSpeed(speed float64) (WindowStats, bool) {
	if c == nil {
		return WindowStats{}, false
	}
	c.samples = append(c.samples, speed)
	if len(c.samples) < c.WindowSize {
		return WindowStats{}, false
	}
	return c.flush(), true
}

func (c *Collector) flush() WindowStats {
	mean, std := stat.MeanStdDev(c.samples, nil)
	minV, maxV := c.samples[0], c.samples[0]
	for _, v := range c.samples {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	s := WindowStats{
		Ticks:     len(c.samples),
		MeanSpeed: mean,
		StdSpeed:  std,
		MinSpeed:  minV,
		MaxSpeed:  maxV,
	}
	c.samples = c.samples[:0]
	return s
}
