package domain

import "fmt"

// DeltaApproximation 中心差分近似 Delta: (V(S+h) - V(S-h)) / 2h
func DeltaApproximation(p *OptionParams, h float64) (float64, error) {
	up, down, err := bumpedPrices(p, h)
	if err != nil {
		return 0, err
	}
	return (up - down) / (2 * h), nil
}

// GammaApproximation 二阶中心差分近似 Gamma: (V(S+h) - 2V(S) + V(S-h)) / h²
func GammaApproximation(p *OptionParams, h float64) (float64, error) {
	up, down, err := bumpedPrices(p, h)
	if err != nil {
		return 0, err
	}
	mid, err := Price(p)
	if err != nil {
		return 0, err
	}
	return (up - 2*mid + down) / (h * h), nil
}

// h 过小会放大舍入误差，过大会引入截断偏差，通常取 S 的 0.01%~1%
func bumpedPrices(p *OptionParams, h float64) (float64, float64, error) {
	if err := checkPositive("finite difference step", h); err != nil {
		return 0, 0, err
	}
	if p.s-h <= 0 {
		return 0, 0, fmt.Errorf("%w: step %v must be smaller than underlying price %v", ErrDomain, h, p.s)
	}
	sUp, sDown := p.s+h, p.s-h
	up, err := PriceWithOverride(p, Override{S: &sUp})
	if err != nil {
		return 0, 0, err
	}
	down, err := PriceWithOverride(p, Override{S: &sDown})
	if err != nil {
		return 0, 0, err
	}
	return up, down, nil
}
