package cepac

import (
	"math"
	"math/rand"
)

// SeedMode selects how a Stream's underlying generator is seeded.
type SeedMode int

const (
	// TimeSeed derives every patient's generator from one wall-clock
	// seed taken at the start of the run; draws are not reproducible
	// across runs.
	TimeSeed SeedMode = iota
	// FixedSeed seeds a generator per patient from the patient id so
	// that every patient's trajectory is independently reproducible.
	FixedSeed
)

// Stream is a patient's private uniform random source (one per patient
// under either SeedMode). Uniform, BoundedInt, Bernoulli and Categorical
// each consume one uniform from the embedded *rand.Rand; the Gaussian
// family consumes a variable number (see Gaussian). Call sites that need
// a Gaussian or a bounded
// integer ask Stream for it rather than composing raw uniforms, so the
// "one draw per call" accounting in the spec holds regardless of how a
// draw is implemented internally.
type Stream struct {
	r     *rand.Rand
	mode  SeedMode
	spare *float64
}

// NewStream creates a Stream. Under FixedSeed, seed should be derived
// from the patient id (e.g. int64(patientID)) so that re-running the same
// patient id reproduces the same trajectory.
func NewStream(mode SeedMode, seed int64) *Stream {
	return &Stream{r: rand.New(rand.NewSource(seed)), mode: mode}
}

// Uniform draws one value in [0,1). siteID identifies the call site;
// neither it nor patient affects the draw, and draws are not logged.
// patient may be nil for
// draws that are not yet attached to a specific patient (e.g. warmup
// cohort draws).
func (s *Stream) Uniform(siteID int, patient *Patient) float64 {
	return s.r.Float64()
}

// BoundedInt draws an integer in [0, n) by multiplying a uniform draw by
// n and truncating, per §4.1.
func (s *Stream) BoundedInt(siteID int, patient *Patient, n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Uniform(siteID, patient) * float64(n))
}

// Bernoulli draws true with probability p.
func (s *Stream) Bernoulli(siteID int, patient *Patient, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Uniform(siteID, patient) < p
}

// Gaussian draws a single N(mu, sigma) value using the polar Box-Muller
// transform over two uniform draws, as required by §4.1. The transform is
// rejection-based (it redraws the pair when the radius falls outside the
// unit disk), but each accepted pair yields two Gaussian values; this
// implementation caches the second value on the Stream so that the
// "one call, one draw" contract is preserved from the caller's point of
// view while still consuming the minimum number of uniforms internally.
func (s *Stream) Gaussian(siteID int, patient *Patient, mu, sigma float64) float64 {
	if s.spare != nil {
		v := *s.spare
		s.spare = nil
		return mu + sigma*v
	}
	var u, v, r2 float64
	for {
		u = 2*s.Uniform(siteID, patient) - 1
		v = 2*s.Uniform(siteID, patient) - 1
		r2 = u*u + v*v
		if r2 > 0 && r2 < 1 {
			break
		}
	}
	mul := math.Sqrt(-2 * math.Log(r2) / r2)
	z0 := u * mul
	z1 := v * mul
	s.spare = &z1
	return mu + sigma*z0
}

// TruncatedGaussian redraws until the sample is >= floor; used for
// duration and logit-increment fields that must not go negative (Open
// Question (i)).
func (s *Stream) TruncatedGaussian(siteID int, patient *Patient, mu, sigma, floor float64) float64 {
	for i := 0; i < 1000; i++ {
		v := s.Gaussian(siteID, patient, mu, sigma)
		if v >= floor {
			return v
		}
	}
	return floor
}

// SquaredGaussian draws a Gaussian and squares it, preserving sign of the
// original draw -- used by the "squared-normal" adherence-logit variant.
func (s *Stream) SquaredGaussian(siteID int, patient *Patient, mu, sigma float64) float64 {
	v := s.Gaussian(siteID, patient, mu, sigma)
	if v < 0 {
		return -(v * v)
	}
	return v * v
}

// Categorical walks cumulative weights (not required to be normalized)
// and returns the index of the first bucket whose cumulative weight
// exceeds a single uniform draw scaled by the total. Used for the "draw
// one uniform, walk a fixed-order list" pattern shared by TB strain
// assignment, initial HIV-state sampling, and mortality-cause selection.
func (s *Stream) Categorical(siteID int, patient *Patient, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}
	draw := s.Uniform(siteID, patient) * total
	var cum float64
	for i, w := range weights {
		cum += w
		if draw < cum {
			return i
		}
	}
	return len(weights) - 1
}
