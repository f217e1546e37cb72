package agent

import "github.com/sarcasticnature/just/physics"

// PatrolAgent is a thin adapter around a body: it walks back and forth
// between two waypoints at a fixed speed. It exists so the tick driver
// has more than one policy to exercise the shared Agent capability, the
// same role PatrolAgent plays alongside VFHAgent in the source.
type PatrolAgent struct {
	name      string
	body      physics.Body
	a, b      physics.Vec2
	speed     float64
	tolerance float64
	reverse   bool
}

// NewPatrolAgent builds a patrol policy shuttling between a and b.
func NewPatrolAgent(name string, body physics.Body, a, b physics.Vec2, speed, tolerance float64) *PatrolAgent {
	return &PatrolAgent{name: name, body: body, a: a, b: b, speed: speed, tolerance: tolerance}
}

func (p *PatrolAgent) Name() string       { return p.name }
func (p *PatrolAgent) Body() physics.Body { return p.body }

// Step advances toward the current target waypoint, flipping direction
// once within tolerance. delta_t is unused, matching VFHAgent.
func (p *PatrolAgent) Step(deltaT float64) {
	target := p.b
	other := p.a
	if p.reverse {
		target, other = p.a, p.b
	}

	goal := p.body.LocalPoint(target)
	if goal.Length() < p.tolerance {
		p.reverse = !p.reverse
		goal = p.body.LocalPoint(other)
	}

	length := goal.Length()
	if length == 0 {
		p.body.SetLinearVelocity(0, 0)
		return
	}
	scale := p.speed / length
	p.body.SetLinearVelocity(goal.X*scale, goal.Y*scale)
	p.body.SetAngularVelocity(0)
}
