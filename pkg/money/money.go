// Package money keeps the settlement arithmetic in exact decimal form.
// float64 is fine at the storage boundary; the formulas here are the ones
// whose rounding callers rely on.
package money

import "github.com/shopspring/decimal"

// EMI computes the equal monthly installment under standard amortization,
// rounded to the nearest whole currency unit:
//
//	emi = P·r·(1+r)^n / ((1+r)^n − 1), r = annualRatePct/12/100
func EMI(principal, annualRatePct float64, tenureMonths int) float64 {
	if principal <= 0 || tenureMonths <= 0 {
		return 0
	}
	p := decimal.NewFromFloat(principal)
	n := decimal.NewFromInt(int64(tenureMonths))
	if annualRatePct == 0 {
		f, _ := p.Div(n).Round(0).Float64()
		return f
	}
	r := decimal.NewFromFloat(annualRatePct).Div(decimal.NewFromInt(1200))
	pow := decimal.NewFromInt(1).Add(r).Pow(n)
	emi := p.Mul(r).Mul(pow).Div(pow.Sub(decimal.NewFromInt(1)))
	f, _ := emi.Round(0).Float64()
	return f
}

// SimpleInterest is principal × rate/100 × months/12, rounded to 2dp.
func SimpleInterest(principal, annualRatePct float64, tenureMonths int) float64 {
	i := decimal.NewFromFloat(principal).
		Mul(decimal.NewFromFloat(annualRatePct)).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(int64(tenureMonths))).
		Div(decimal.NewFromInt(12))
	f, _ := i.Round(2).Float64()
	return f
}

// RecoveryAfterHaircut applies a liquidation haircut (percent) to a collateral
// value: value × (100 − haircutPct)/100, rounded to 2dp.
func RecoveryAfterHaircut(collateralValue, haircutPct float64) float64 {
	r := decimal.NewFromFloat(collateralValue).
		Mul(decimal.NewFromInt(100).Sub(decimal.NewFromFloat(haircutPct))).
		Div(decimal.NewFromInt(100))
	f, _ := r.Round(2).Float64()
	return f
}

// RecoveryPercent is recovered/principal × 100 rounded to 2dp; 0 when the
// principal is 0.
func RecoveryPercent(recovered, principal float64) float64 {
	if principal == 0 {
		return 0
	}
	p, _ := decimal.NewFromFloat(recovered).
		Div(decimal.NewFromFloat(principal)).
		Mul(decimal.NewFromInt(100)).
		Round(2).Float64()
	return p
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
