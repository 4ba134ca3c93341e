package cepac

import (
	"math"
	"testing"
)

func TestRateToProbAndBack(t *testing.T) {
	rate := 0.05
	p := RateToProb(rate)
	back := ProbToRate(p)
	if math.Abs(back-rate) > 1e-9 {
		t.Errorf(UnequalFloatParameterError, "rate round-tripped through RateToProb/ProbToRate", rate, back)
	}
}

func TestRateToProbNonPositive(t *testing.T) {
	if v := RateToProb(0); v != 0 {
		t.Errorf(UnequalFloatParameterError, "RateToProb(0)", 0, v)
	}
	if v := RateToProb(-1); v != 0 {
		t.Errorf(UnequalFloatParameterError, "RateToProb(-1)", 0, v)
	}
}

func TestProbToRateBoundary(t *testing.T) {
	if v := ProbToRate(1); !math.IsInf(v, 1) {
		t.Errorf(UnequalFloatParameterError, "ProbToRate(1)", math.Inf(1), v)
	}
	if v := ProbToRate(0); v != 0 {
		t.Errorf(UnequalFloatParameterError, "ProbToRate(0)", 0, v)
	}
}

func TestProbRateMultiplyIdentities(t *testing.T) {
	if v := ProbRateMultiply(0.3, 0); v != 0 {
		t.Errorf(UnequalFloatParameterError, "ProbRateMultiply(p,0)", 0, v)
	}
	if v := ProbRateMultiply(0.3, 1); v != 0.3 {
		t.Errorf(UnequalFloatParameterError, "ProbRateMultiply(p,1)", 0.3, v)
	}
}

func TestProbLogitAdjustmentZeroDeltaIsIdentity(t *testing.T) {
	p := 0.42
	if v := ProbLogitAdjustment(p, 0); v != p {
		t.Errorf(UnequalFloatParameterError, "ProbLogitAdjustment(p,0)", p, v)
	}
}

func TestProbLogitAdjustmentBoundaryGuards(t *testing.T) {
	if v := ProbLogitAdjustment(0, 1); v != 0 {
		t.Errorf(UnequalFloatParameterError, "ProbLogitAdjustment(0,delta)", 0, v)
	}
	if v := ProbLogitAdjustment(1, 1); v != 1 {
		t.Errorf(UnequalFloatParameterError, "ProbLogitAdjustment(1,delta)", 1, v)
	}
}

func TestComposeIndependentProbs(t *testing.T) {
	got := ComposeIndependentProbs([]float64{0.1, 0.2})
	want := 1 - (0.9 * 0.8)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf(UnequalFloatParameterError, "ComposeIndependentProbs([0.1,0.2])", want, got)
	}
}

func TestComposeIndependentProbsShortCircuitsAtOne(t *testing.T) {
	got := ComposeIndependentProbs([]float64{0.5, 1, 0.9})
	if got != 1 {
		t.Errorf(UnequalFloatParameterError, "ComposeIndependentProbs with a certain event", 1, got)
	}
}

func TestPiecewiseLinearResponse(t *testing.T) {
	cases := []struct {
		x, want float64
	}{
		{0, 0},
		{5, 0},
		{7.5, 0.5},
		{10, 1},
		{20, 1},
	}
	for _, c := range cases {
		got := PiecewiseLinearResponse(c.x, 5, 10, 0, 1)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf(UnequalFloatParameterError, "PiecewiseLinearResponse", c.want, got)
		}
	}
}
