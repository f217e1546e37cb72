package vfh

import (
	"math"

	"github.com/sarcasticnature/just/physics"
)

// Command is a steering output: a heading angle in [0, 2*pi) and a speed
// in [0, MaxSpeed].
type Command struct {
	Angle float64
	Speed float64
}

// ComputeSteering selects a heading sector and speed from a smoothed
// polar histogram and the goal's position in the agent's local frame,
// following the valley-analysis algorithm: if the sector pointing at the
// goal is already clear, head straight for it; otherwise find the
// nearest valley to the goal direction, cap its width, and steer to its
// midpoint. The bool return is false only when every sector is above
// threshold in both scan directions, meaning no valley exists at all; the
// returned Command is then the zero value and must not be mistaken for a
// legitimately computed zero-speed command.
func ComputeSteering(smoothed []float64, goalLocal physics.Vec2, p Params) (Command, bool) {
	alpha := p.AlphaRad()
	k := p.K

	goalTheta := physics.NormalizeAngle(math.Atan2(goalLocal.Y, goalLocal.X))
	kTarget := modK(int(math.Round(goalTheta/alpha)), k)

	if smoothed[kTarget] <= p.ValleyThreshold {
		return command(kTarget, smoothed, p), true
	}

	l, foundLeft := scanValley(smoothed, kTarget, -1, k, p.ValleyThreshold)
	if !foundLeft {
		return Command{}, false
	}
	r, foundRight := scanValley(smoothed, kTarget, 1, k, p.ValleyThreshold)
	if !foundRight {
		return Command{}, false
	}

	distL := modK(kTarget-l, k)
	distR := modK(r-kTarget, k)

	var kNear, dir int
	if distL <= distR {
		kNear, dir = l, -1
	} else {
		kNear, dir = r, 1
	}

	width := p.SMax
	for step := 1; step <= p.SMax; step++ {
		idx := modK(kNear+dir*step, k)
		if smoothed[idx] > p.ValleyThreshold {
			width = step - 1
			break
		}
	}
	kFar := modK(kNear+dir*width, k)
	_ = kFar

	headingF := float64(kNear) + float64(dir)*float64(width)/2.0
	heading := modK(int(math.Round(headingF)), k)

	return command(heading, smoothed, p), true
}

// scanValley walks from start in the given direction (+1 or -1),
// wrapping mod k, and returns the first sector at or below threshold. It
// never revisits start; if the scan wraps all the way around without
// finding one, ok is false (every sector is above threshold).
func scanValley(smoothed []float64, start, dir, k int, threshold float64) (idx int, ok bool) {
	cur := start
	for i := 0; i < k-1; i++ {
		cur = modK(cur+dir, k)
		if smoothed[cur] <= threshold {
			return cur, true
		}
	}
	return 0, false
}

func command(heading int, smoothed []float64, p Params) Command {
	speed := p.MaxSpeed * (1 - smoothed[heading]/(1.1*p.ValleyThreshold))
	if speed < 0 {
		speed = 0
	}
	if speed > p.MaxSpeed {
		speed = p.MaxSpeed
	}
	return Command{Angle: float64(heading) * p.AlphaRad(), Speed: speed}
}

func modK(v, k int) int {
	r := v % k
	if r < 0 {
		r += k
	}
	return r
}
