package simulation

import "math/rand/v2"

// Sampler is the source of randomness a model draws from. *rand.Rand
// satisfies it directly.
type Sampler interface {
	NormFloat64() float64
	Float64() float64
}

// NewRand returns a PCG-seeded generator. Worker goroutines derive
// independent substreams from the same base seed by passing their worker
// index as the stream, which keeps runs reproducible regardless of how
// the path budget is split across workers.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// RecordingSampler tapes every draw so an antithetic mirror of the path
// can be replayed afterwards.
type RecordingSampler struct {
	src      Sampler
	normals  []float64
	uniforms []float64
}

func NewRecordingSampler(src Sampler) *RecordingSampler {
	return &RecordingSampler{src: src}
}

func (s *RecordingSampler) NormFloat64() float64 {
	z := s.src.NormFloat64()
	s.normals = append(s.normals, z)
	return z
}

func (s *RecordingSampler) Float64() float64 {
	u := s.src.Float64()
	s.uniforms = append(s.uniforms, u)
	return u
}

func (s *RecordingSampler) Reset() {
	s.normals = s.normals[:0]
	s.uniforms = s.uniforms[:0]
}

// Antithetic replays the taped draws with the normals negated. Uniform
// draws (jump arrivals) are replayed unchanged so only the diffusion is
// mirrored.
func (s *RecordingSampler) Antithetic() *antitheticReplay {
	return &antitheticReplay{normals: s.normals, uniforms: s.uniforms}
}

type antitheticReplay struct {
	normals  []float64
	uniforms []float64
	ni, ui   int
}

func (r *antitheticReplay) NormFloat64() float64 {
	z := r.normals[r.ni]
	r.ni++
	return -z
}

func (r *antitheticReplay) Float64() float64 {
	u := r.uniforms[r.ui]
	r.ui++
	return u
}
