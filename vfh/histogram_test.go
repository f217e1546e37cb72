package vfh

import "testing"

func TestBuildPolarHistogramContributionNonNegative(t *testing.T) {
	p := DefaultParams(10, 1.0)
	side := p.WindowSize
	window := make([]uint8, side*side)
	for i := range window {
		window[i] = 15
	}

	h := BuildPolarHistogram(window, side, p)
	for k, v := range h {
		if v < 0 {
			t.Errorf("H[%d] = %v, want >= 0", k, v)
		}
	}
}

func TestBuildPolarHistogramSkipsOrigin(t *testing.T) {
	p := DefaultParams(10, 1.0)
	side := p.WindowSize
	window := make([]uint8, side*side)

	offset := 0
	if side%2 == 0 {
		offset = 1
	}
	half := side / 2
	// Place the only nonzero cell at the origin; the histogram must be
	// entirely zero since the origin cell is skipped.
	originRow := half - offset
	originCol := half - offset
	window[originRow*side+originCol] = 15

	h := BuildPolarHistogram(window, side, p)
	for k, v := range h {
		if v != 0 {
			t.Errorf("H[%d] = %v, want 0 (origin cell must be skipped)", k, v)
		}
	}
}

func TestBuildPolarHistogramZeroCellsContributeNothing(t *testing.T) {
	p := DefaultParams(10, 1.0)
	side := p.WindowSize
	window := make([]uint8, side*side)

	h := BuildPolarHistogram(window, side, p)
	for k, v := range h {
		if v != 0 {
			t.Errorf("H[%d] = %v, want 0 for an all-empty window", k, v)
		}
	}
}
