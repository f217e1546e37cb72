package vfh

import (
	"math"

	"github.com/sarcasticnature/just/physics"
)

// BuildPolarHistogram folds a square window of certainty values into a
// K-sector polar obstacle density histogram. window is a row-major
// side*side buffer as produced by histogram.Grid.Subgrid, centered on
// the agent. The origin cell is skipped.
func BuildPolarHistogram(window []uint8, side int, p Params) []float64 {
	h := make([]float64, p.K)

	offset := 0
	if side%2 == 0 {
		offset = 1
	}
	half := side / 2
	alpha := p.AlphaRad()

	for row := 0; row < side; row++ {
		y := offset + row - half
		for col := 0; col < side; col++ {
			x := offset + col - half
			if x == 0 && y == 0 {
				continue
			}

			cv := float64(window[row*side+col])
			if cv == 0 {
				continue
			}

			d := math.Hypot(float64(x), float64(y))
			m := cv * cv * (p.A - p.B*d)

			beta := physics.NormalizeAngle(math.Atan2(float64(y), float64(x)))
			k := int(math.Round(beta/alpha)) % p.K
			h[k] += m
		}
	}

	return h
}
