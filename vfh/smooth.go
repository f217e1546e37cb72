package vfh

import "gonum.org/v1/gonum/floats"

// Smooth convolves a polar histogram with the symmetric triangular
// kernel weight(l) = 1 + L - |l|, circularly indexed mod K, and
// normalizes by the kernel's own weight sum (L+1)^2 so a constant input
// histogram passes through unchanged. This is the weight the source
// settled on; it does not match the published VFH paper's differently
// typeset (but equivalent-in-shape) kernel.
func Smooth(h []float64, p Params) []float64 {
	k := p.K
	weights := kernelWeights(p.L)
	weightSum := floats.Sum(weights)

	out := make([]float64, k)
	window := make([]float64, len(weights))
	for i := 0; i < k; i++ {
		for idx, l := range kernelOffsets(p.L) {
			j := ((i+l)%k + k) % k
			window[idx] = h[j]
		}
		out[i] = floats.Dot(window, weights) / weightSum
	}
	return out
}

func kernelOffsets(l int) []int {
	offsets := make([]int, 2*l+1)
	for i := range offsets {
		offsets[i] = i - l
	}
	return offsets
}

func kernelWeights(l int) []float64 {
	offsets := kernelOffsets(l)
	weights := make([]float64, len(offsets))
	for i, off := range offsets {
		w := off
		if w < 0 {
			w = -w
		}
		weights[i] = float64(1 + l - w)
	}
	return weights
}
