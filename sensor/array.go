// Package sensor implements the ultrasonic ranging array: a fixed ring
// of beams that raycast against a physics world and report distances in
// the owning body's local frame.
package sensor

import (
	"math"

	"github.com/sarcasticnature/just/physics"
)

// Reading is a single (distance, angle) measurement in the sensor's
// local frame. Distance is 0 when the beam found nothing within range;
// callers that need to distinguish "no hit" for percept integration use
// Detected instead of testing the distance sign.
type Reading struct {
	Distance float64
	Angle    float64
	Detected bool
}

type beam struct {
	relativeAngle float64
	localEndpoint physics.Vec2
}

// Array is a ring of ultrasonic beams fixed at construction, cast
// round-robin (SenseOne) or as a full sweep (SenseAll) against a
// physics.World, excluding the emitting body's own fixtures.
type Array struct {
	body      physics.Body
	beams     []beam
	activeIdx int
}

// NewArray builds an array of n beams at angles 2*pi*i/n around the
// body, each reaching maxRange in the body's local frame.
func NewArray(body physics.Body, n int, maxRange float64) *Array {
	beams := make([]beam, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		beams[i] = beam{
			relativeAngle: theta,
			localEndpoint: physics.Vec2{
				X: math.Cos(theta) * maxRange,
				Y: math.Sin(theta) * maxRange,
			},
		}
	}
	return &Array{body: body, beams: beams}
}

// MaxRange returns the configured maximum sensing range. Beam 0 always
// sits at relative angle 0, so its local endpoint's x component is R.
func (a *Array) MaxRange() float64 {
	return a.beams[0].localEndpoint.X
}

// SenseOne casts the next beam in round-robin order against world,
// advancing the internal index, and reports the closest fixture hit not
// belonging to the emitting body.
func (a *Array) SenseOne(world physics.World) Reading {
	b := a.beams[a.activeIdx]
	a.activeIdx = (a.activeIdx + 1) % len(a.beams)

	worldEndpoint := a.body.WorldPoint(b.localEndpoint)
	origin := a.body.Position()

	minDist := math.MaxFloat64
	world.RayCast(origin, worldEndpoint, func(fixture physics.Fixture, worldPoint, normal physics.Vec2, fraction float64) float64 {
		if sameBody(fixture.Body(), a.body) {
			return 1.0
		}
		d := a.body.LocalPoint(worldPoint).Length()
		if d < minDist {
			minDist = d
		}
		return 1.0
	})

	if minDist == math.MaxFloat64 {
		return Reading{Distance: 0, Angle: b.relativeAngle, Detected: false}
	}
	return Reading{Distance: minDist, Angle: b.relativeAngle, Detected: true}
}

// SenseAll fires every beam in index order, returning readings in the
// same order the beams were constructed. The round-robin index used by
// SenseOne advances across this call the same way n consecutive SenseOne
// calls would.
func (a *Array) SenseAll(world physics.World) []Reading {
	readings := make([]Reading, len(a.beams))
	for i := range readings {
		readings[i] = a.SenseOne(world)
	}
	return readings
}

func sameBody(a, b physics.Body) bool {
	type identifiable interface {
		Same(physics.Body) bool
	}
	if ib, ok := a.(identifiable); ok {
		return ib.Same(b)
	}
	return a == b
}
