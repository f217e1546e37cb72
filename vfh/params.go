// Package vfh implements the two-stage Vector Field Histogram pipeline:
// build a polar obstacle histogram from a certainty-grid window, smooth
// it with a triangular kernel, and select a heading and speed by valley
// analysis.
package vfh

import "math"

// Params collects the VFH pipeline's tuning knobs. The zero value is not
// usable; construct with NewParams or DefaultParams.
type Params struct {
	WindowSize int     // square active-window side, in cells
	AlphaDeg   float64 // angular sector resolution, in degrees
	K          int     // number of sectors, 360/AlphaDeg
	B          float64 // obstacle-vector slope
	A          float64 // obstacle-vector intercept, derived from B and WindowSize
	L          int     // smoothing kernel half-width, in sectors
	SMax       int     // max valley width, in sectors

	ValleyThreshold float64 // per-agent policy input
	MaxSpeed        float64 // v_max
}

// Default tuning values, matching the values the source settled on.
const (
	DefaultWindowSize = 30
	DefaultAlphaDeg   = 5.0
	DefaultB          = 500.0
	DefaultL          = 5
	DefaultSMax       = 18
)

// NewParams derives K and A from windowSize, alphaDeg and b, and fills in
// the remaining fields. A is chosen so that (A - B*d) stays non-negative
// for every cell in the window, using windowSize (not windowSize-1) so
// the margin holds even at even-sized window extremes.
func NewParams(windowSize int, alphaDeg, b float64, l, sMax int, valleyThreshold, maxSpeed float64) Params {
	k := int(360.0 / alphaDeg)
	a := b * math.Sqrt2 * float64(windowSize) / 2
	return Params{
		WindowSize:      windowSize,
		AlphaDeg:        alphaDeg,
		K:               k,
		B:               b,
		A:               a,
		L:               l,
		SMax:            sMax,
		ValleyThreshold: valleyThreshold,
		MaxSpeed:        maxSpeed,
	}
}

// DefaultParams builds Params from the package defaults, with the two
// values every agent configures explicitly.
func DefaultParams(valleyThreshold, maxSpeed float64) Params {
	return NewParams(DefaultWindowSize, DefaultAlphaDeg, DefaultB, DefaultL, DefaultSMax, valleyThreshold, maxSpeed)
}

// AlphaRad is the sector angular width in radians.
func (p Params) AlphaRad() float64 {
	return p.AlphaDeg * math.Pi / 180
}
