package domain

import (
	"fmt"
	"math"
)

// ParityResult 平价推导结果
type ParityResult struct {
	OptionType OptionType // 推导出的一方 (与 p 相反)
	Price      float64
	Difference float64 // 平价残差，按构造应接近 0
}

// PriceViaPutCallParity 由一方的观察价格按看涨看跌平价推导另一方价格。
// 远期项取 S·e^((b-r)T)，股票标的时即为 S。
func PriceViaPutCallParity(p *OptionParams, observed float64) (ParityResult, error) {
	if err := checkFinite("observed price", observed); err != nil {
		return ParityResult{}, err
	}
	if observed < 0 {
		return ParityResult{}, fmt.Errorf("%w: observed price must not be negative, got %v", ErrDomain, observed)
	}

	b := p.CostOfCarry()
	forward := p.s * math.Exp((b-p.r)*p.t)
	strike := p.k * math.Exp(-p.r*p.t)

	res := ParityResult{OptionType: p.optionType.Opposite()}
	if p.optionType == OptionTypeCall {
		res.Price = observed + strike - forward
		res.Difference = (observed + strike) - (res.Price + forward)
	} else {
		res.Price = observed + forward - strike
		res.Difference = (res.Price + strike) - (observed + forward)
	}
	return res, nil
}
