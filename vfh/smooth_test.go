package vfh

import "testing"

func TestSmoothIdempotentOnConstantHistogram(t *testing.T) {
	p := DefaultParams(10, 1.0)
	h := make([]float64, p.K)
	for i := range h {
		h[i] = 7.5
	}

	out := Smooth(h, p)
	for k, v := range out {
		if diff := v - 7.5; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("H'[%d] = %v, want 7.5", k, v)
		}
	}
}

func TestSmoothWeightsMatchTriangularKernel(t *testing.T) {
	p := DefaultParams(10, 1.0)
	weights := kernelWeights(p.L)

	// weight(l) = 1 + L - |l|; center weight is L+1, decreasing by 1 out
	// to the edges which carry weight 1.
	center := weights[p.L]
	if center != float64(p.L+1) {
		t.Errorf("center weight = %v, want %v", center, p.L+1)
	}
	if weights[0] != 1 || weights[len(weights)-1] != 1 {
		t.Errorf("edge weights = %v, %v, want 1, 1", weights[0], weights[len(weights)-1])
	}
}

func TestSmoothSpike(t *testing.T) {
	p := DefaultParams(10, 1.0)
	h := make([]float64, p.K)
	h[0] = 100

	out := Smooth(h, p)
	// The spike smears into neighboring sectors within L but must not
	// exceed the input's magnitude once normalized.
	if out[0] <= 0 {
		t.Errorf("H'[0] = %v, want > 0", out[0])
	}
	if out[p.L+1] != 0 {
		t.Errorf("H'[%d] = %v, want 0 (outside kernel half-width)", p.L+1, out[p.L+1])
	}
}
