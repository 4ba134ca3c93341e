package cepac

import (
	"math"
	"testing"
)

func TestStream_FixedSeedReproducible(t *testing.T) {
	a := NewStream(FixedSeed, 42)
	b := NewStream(FixedSeed, 42)
	for i := 0; i < 100; i++ {
		va := a.Uniform(siteAgeNormal, nil)
		vb := b.Uniform(siteAgeNormal, nil)
		if va != vb {
			t.Errorf(UnequalFloatParameterError, "draw under identical seed", va, vb)
		}
	}
}

func TestStream_BoundedIntRange(t *testing.T) {
	s := NewStream(FixedSeed, 7)
	for i := 0; i < 1000; i++ {
		v := s.BoundedInt(siteAgeNormal, nil, 5)
		if v < 0 || v >= 5 {
			t.Errorf(UnequalIntParameterError, "BoundedInt within [0,5)", 0, v)
		}
	}
}

func TestStream_BernoulliBoundaryCases(t *testing.T) {
	s := NewStream(FixedSeed, 1)
	if s.Bernoulli(siteAgeNormal, nil, 0) {
		t.Errorf(UnequalStringParameterError, "Bernoulli(p=0)", "false", "true")
	}
	if !s.Bernoulli(siteAgeNormal, nil, 1) {
		t.Errorf(UnequalStringParameterError, "Bernoulli(p=1)", "true", "false")
	}
}

func TestStream_GaussianMeanRoughlyCentered(t *testing.T) {
	s := NewStream(FixedSeed, 99)
	var sum float64
	n := 20000
	for i := 0; i < n; i++ {
		sum += s.Gaussian(siteAgeNormal, nil, 10, 1)
	}
	mean := sum / float64(n)
	if math.Abs(mean-10) > 0.2 {
		t.Errorf(UnequalFloatParameterError, "sample mean of Gaussian(10,1)", 10, mean)
	}
}

func TestStream_TruncatedGaussianNeverBelowFloor(t *testing.T) {
	s := NewStream(FixedSeed, 3)
	for i := 0; i < 1000; i++ {
		v := s.TruncatedGaussian(siteAgeNormal, nil, 0, 5, 2)
		if v < 2 {
			t.Errorf(UnequalFloatParameterError, "TruncatedGaussian floor", 2, v)
		}
	}
}

func TestStream_CategoricalRespectsWeights(t *testing.T) {
	s := NewStream(FixedSeed, 11)
	counts := make([]int, 3)
	weights := []float64{1, 0, 1}
	for i := 0; i < 1000; i++ {
		idx := s.Categorical(siteAgeNormal, nil, weights)
		if idx < 0 || idx >= len(weights) {
			t.Fatalf(UnexpectedErrorWhileError, "calling Categorical", "index out of range")
		}
		counts[idx]++
	}
	if counts[1] != 0 {
		t.Errorf(UnequalIntParameterError, "draws landing in zero-weight bucket", 0, counts[1])
	}
}

func TestStream_CategoricalAllZeroWeights(t *testing.T) {
	s := NewStream(FixedSeed, 5)
	idx := s.Categorical(siteAgeNormal, nil, []float64{0, 0, 0})
	if idx != -1 {
		t.Errorf(UnequalIntParameterError, "Categorical with all-zero weights", -1, idx)
	}
}
