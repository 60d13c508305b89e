package domain

import "fmt"

// OverrideFor 构造只替换 param 的 Override
func OverrideFor(param Parameter, v float64) (Override, error) {
	switch param {
	case ParameterUnderlying:
		return Override{S: &v}, nil
	case ParameterStrike:
		return Override{K: &v}, nil
	case ParameterTime:
		return Override{T: &v}, nil
	case ParameterRate:
		return Override{R: &v}, nil
	case ParameterVolatility:
		return Override{Sigma: &v}, nil
	case ParameterCarry:
		return Override{B: &v}, nil
	}
	return Override{}, param.Validate()
}

// PriceOverMesh 依次替换 param 为 values 中的每个值并定价，结果与输入顺序一致
func PriceOverMesh(p *OptionParams, values []float64, param Parameter) ([]float64, error) {
	if err := param.Validate(); err != nil {
		return nil, err
	}
	prices := make([]float64, 0, len(values))
	for i, v := range values {
		o, err := OverrideFor(param, v)
		if err != nil {
			return nil, err
		}
		price, err := PriceWithOverride(p, o)
		if err != nil {
			return nil, fmt.Errorf("mesh point %d (%s=%v): %w", i, param, v, err)
		}
		prices = append(prices, price)
	}
	return prices, nil
}

// DeltaOverMesh 在标的价格网格上计算 Delta
func DeltaOverMesh(p *OptionParams, prices []float64) ([]float64, error) {
	return overUnderlyingMesh(p, prices, bsInput.delta)
}

// GammaOverMesh 在标的价格网格上计算 Gamma
func GammaOverMesh(p *OptionParams, prices []float64) ([]float64, error) {
	return overUnderlyingMesh(p, prices, bsInput.gamma)
}

func overUnderlyingMesh(p *OptionParams, prices []float64, fn func(bsInput) (float64, error)) ([]float64, error) {
	out := make([]float64, 0, len(prices))
	for i, s := range prices {
		v, err := evalAt(p, s, fn)
		if err != nil {
			return nil, fmt.Errorf("mesh point %d (%s=%v): %w", i, ParameterUnderlying, s, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func evalAt(p *OptionParams, s float64, fn func(bsInput) (float64, error)) (float64, error) {
	in, err := p.resolve(Override{S: &s})
	if err != nil {
		return 0, err
	}
	return fn(in)
}
