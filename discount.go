package cepac

import "math"

// DiscountRate holds an annual discount rate together with its derived
// monthly factor, so the (1+r)^(1/12) conversion happens once per rate
// rather than once per cost event.
type DiscountRate struct {
	AnnualRate   float64
	monthlyFactor float64
}

// NewDiscountRate precomputes the monthly discount factor for r_annual.
func NewDiscountRate(annualRate float64) DiscountRate {
	return DiscountRate{
		AnnualRate:    annualRate,
		monthlyFactor: math.Pow(1+annualRate, 1.0/12.0),
	}
}

// Discount divides an amount accrued in month m (months since the run
// start) by d^m.
func (d DiscountRate) Discount(amount float64, month int) float64 {
	if d.monthlyFactor == 1 {
		return amount
	}
	return amount / math.Pow(d.monthlyFactor, float64(month))
}
