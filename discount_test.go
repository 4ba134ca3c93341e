package cepac

import (
	"math"
	"testing"
)

func TestNewDiscountRateZeroIsNoOp(t *testing.T) {
	d := NewDiscountRate(0)
	if v := d.Discount(100, 60); v != 100 {
		t.Errorf(UnequalFloatParameterError, "zero-rate discount of month 60", 100, v)
	}
}

func TestDiscountRateMonotonicDecay(t *testing.T) {
	d := NewDiscountRate(0.03)
	early := d.Discount(100, 1)
	late := d.Discount(100, 120)
	if late >= early {
		t.Errorf(UnequalFloatParameterError, "discounted value should shrink with month", early, late)
	}
}

func TestDiscountRateMonthZeroIsUnscaled(t *testing.T) {
	d := NewDiscountRate(0.03)
	if v := d.Discount(50, 0); math.Abs(v-50) > 1e-9 {
		t.Errorf(UnequalFloatParameterError, "discount at month 0", 50, v)
	}
}
