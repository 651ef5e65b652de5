package simulation

// Model generates risk-neutral price paths for an underlying. Path fills
// buf (allocating when too small) with steps+1 prices starting at the
// spot, covering the model's full horizon.
type Model interface {
	Path(src Sampler, steps int, buf []float64) []float64
	Describe() string
}

func pathBuf(steps int, buf []float64) []float64 {
	if cap(buf) < steps+1 {
		return make([]float64, steps+1)
	}

	return buf[:steps+1]
}
