package agent

// Driver ticks a fixed set of agents serially within one frame: sensing
// is read-only against the shared physics world, so running agents one
// after another rather than interleaving them is sufficient and avoids
// any synchronization.
type Driver struct {
	agents []Agent
}

// NewDriver builds a driver over the given agents.
func NewDriver(agents []Agent) *Driver {
	return &Driver{agents: agents}
}

// Agents returns the agents under this driver's control.
func (d *Driver) Agents() []Agent {
	return d.agents
}

// Tick steps every agent once, in order.
func (d *Driver) Tick(deltaT float64) {
	for _, a := range d.agents {
		a.Step(deltaT)
	}
}
