package cepac

import "math"

// RateToProb converts a monthly hazard rate to a probability:
// p = 1 - exp(-r).
func RateToProb(rate float64) float64 {
	if rate <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate)
}

// ProbToRate converts a monthly probability to a hazard rate:
// rate = -log(1-p). p must be in [0,1); callers at the boundary are
// responsible for avoiding p==1, per §7's numerical-guard policy.
func ProbToRate(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return math.Inf(1)
	}
	return -math.Log(1 - p)
}

// ProbRateMultiply scales a probability by a rate multiplier m:
// p' = 1 - (1-p)^m, with the degenerate cases m=0 -> 0 and m=1 -> p
// called out explicitly because float exponentiation does not reliably
// hit those exact values at the boundary.
func ProbRateMultiply(p, m float64) float64 {
	if m == 0 {
		return 0
	}
	if m == 1 {
		return p
	}
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return 1 - math.Pow(1-p, m)
}

// ProbToLogit converts a probability to log-odds. Callers must avoid
// p==0 or p==1; per §7 this is the caller's responsibility, not guarded
// here.
func ProbToLogit(p float64) float64 {
	return math.Log(p / (1 - p))
}

// LogitToProb is the logistic inverse of ProbToLogit.
func LogitToProb(logit float64) float64 {
	return 1 / (1 + math.Exp(-logit))
}

// ProbLogitAdjustment composes a probability with an additive logit
// delta: p_adj = invlogit(logit(p) + delta). delta==0 is a fast path that
// returns p unchanged (avoids NaN at p==0 or p==1, and satisfies the
// idempotence property in §8).
func ProbLogitAdjustment(p, delta float64) float64 {
	if delta == 0 {
		return p
	}
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return LogitToProb(ProbToLogit(p) + delta)
}

// ComposeIndependentProbs combines a set of independent monthly event
// probabilities into the probability that at least one occurs:
// 1 - Π(1-p_i). Used by Mortality (§4.7) to combine per-cause risks when
// the rate-summation route is not used.
func ComposeIndependentProbs(ps []float64) float64 {
	prod := 1.0
	for _, p := range ps {
		if p <= 0 {
			continue
		}
		if p >= 1 {
			return 1
		}
		prod *= 1 - p
	}
	return 1 - prod
}

// PiecewiseLinearResponse maps a propensity x to a response factor via a
// two-threshold piecewise-linear function: below l1 -> lo, above l2 ->
// hi, linear interpolation between. Used throughout §4.6/§4.12 to turn a
// patient's response logit/propensity into a concrete multiplier.
func PiecewiseLinearResponse(x, l1, l2, lo, hi float64) float64 {
	switch {
	case x <= l1:
		return lo
	case x >= l2:
		return hi
	default:
		frac := (x - l1) / (l2 - l1)
		return lo + frac*(hi-lo)
	}
}
