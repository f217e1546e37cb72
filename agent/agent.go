// Package agent drives the tick loop that ties the certainty grid,
// ultrasonic array and VFH pipeline together into a single stepping
// policy, plus a minimal patrol policy that exercises the same body
// contract without any of the reactive-navigation machinery.
package agent

import "github.com/sarcasticnature/just/physics"

// Agent is the capability every tick driver needs: something that
// advances by delta_t and exposes the body it moves. Concrete policies
// (VFHAgent, PatrolAgent) are held as values behind this interface
// rather than through a deeper class hierarchy.
type Agent interface {
	// Step advances the agent by one control tick. delta_t is accepted
	// for parity with a staggered-sensor future but is currently unused.
	Step(deltaT float64)
	Body() physics.Body
	Name() string
}
