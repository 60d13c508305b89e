package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Greeks 希腊字母
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
}

// Override 单次定价时替换的参数，nil 表示沿用期权参数中的原值。
// 持有成本 b 只由 B 替换，替换 R 时 b 保持期权参数推导出的值。
type Override struct {
	S     *float64
	K     *float64
	T     *float64
	R     *float64
	Sigma *float64
	B     *float64
}

// bsInput 一次定价实际使用的参数快照
type bsInput struct {
	s, k, t, r, sigma, b float64
	optionType           OptionType
}

func (p *OptionParams) resolve(o Override) (bsInput, error) {
	in := bsInput{s: p.s, k: p.k, t: p.t, r: p.r, sigma: p.sigma, optionType: p.optionType}
	if o.S != nil {
		in.s = *o.S
	}
	if o.K != nil {
		in.k = *o.K
	}
	if o.T != nil {
		in.t = *o.T
	}
	if o.R != nil {
		in.r = *o.R
	}
	if o.Sigma != nil {
		in.sigma = *o.Sigma
	}
	in.b = p.CostOfCarry()
	if o.B != nil {
		in.b = *o.B
	}

	if err := checkPositive("underlying price", in.s); err != nil {
		return bsInput{}, err
	}
	if err := checkPositive("strike price", in.k); err != nil {
		return bsInput{}, err
	}
	if err := checkMaturity(in.t); err != nil {
		return bsInput{}, err
	}
	if err := checkPositive("volatility", in.sigma); err != nil {
		return bsInput{}, err
	}
	if err := checkFinite("risk-free rate", in.r); err != nil {
		return bsInput{}, err
	}
	if err := checkFinite("cost of carry", in.b); err != nil {
		return bsInput{}, err
	}
	return in, nil
}

func (in bsInput) d1d2() (float64, float64, error) {
	vt := in.sigma * math.Sqrt(in.t)
	if vt == 0 {
		return 0, 0, fmt.Errorf("%w: sigma*sqrt(T) is zero (T=%v)", ErrDomain, in.t)
	}
	d1 := (math.Log(in.s/in.k) + (in.b+in.sigma*in.sigma/2)*in.t) / vt
	return d1, d1 - vt, nil
}

// carry e^((b-r)T)
func (in bsInput) carry() float64 {
	return math.Exp((in.b - in.r) * in.t)
}

func (in bsInput) discount() float64 {
	return math.Exp(-in.r * in.t)
}

func (in bsInput) price() (float64, error) {
	d1, d2, err := in.d1d2()
	if err != nil {
		return 0, err
	}
	forward := in.s * in.carry()
	strike := in.k * in.discount()
	if in.optionType == OptionTypePut {
		return strike*normCDF(-d2) - forward*normCDF(-d1), nil
	}
	return forward*normCDF(d1) - strike*normCDF(d2), nil
}

func (in bsInput) delta() (float64, error) {
	d1, _, err := in.d1d2()
	if err != nil {
		return 0, err
	}
	sign := in.optionType.Sign()
	return sign * in.carry() * normCDF(sign*d1), nil
}

func (in bsInput) gamma() (float64, error) {
	d1, _, err := in.d1d2()
	if err != nil {
		return 0, err
	}
	sign := in.optionType.Sign()
	return normPDF(sign*d1) * in.carry() / (in.s * in.sigma * math.Sqrt(in.t)), nil
}

func (in bsInput) vega() (float64, error) {
	d1, _, err := in.d1d2()
	if err != nil {
		return 0, err
	}
	return in.s * in.carry() * normPDF(d1) * math.Sqrt(in.t), nil
}

// theta 为 -∂V/∂T，持有成本 b 保持不变
func (in bsInput) theta() (float64, error) {
	d1, d2, err := in.d1d2()
	if err != nil {
		return 0, err
	}
	forward := in.s * in.carry()
	strike := in.k * in.discount()
	decay := -forward * normPDF(d1) * in.sigma / (2 * math.Sqrt(in.t))
	if in.optionType == OptionTypePut {
		return decay + (in.b-in.r)*forward*normCDF(-d1) + in.r*strike*normCDF(-d2), nil
	}
	return decay - (in.b-in.r)*forward*normCDF(d1) - in.r*strike*normCDF(d2), nil
}

// Price 计算欧式期权价格 (广义 Black-Scholes-Merton)
func Price(p *OptionParams) (float64, error) {
	return PriceWithOverride(p, Override{})
}

// PriceWithOverride 以替换后的参数定价，p 本身不被修改
func PriceWithOverride(p *OptionParams, o Override) (float64, error) {
	in, err := p.resolve(o)
	if err != nil {
		return 0, err
	}
	return in.price()
}

// Delta 价格对标的价格的一阶导数
func Delta(p *OptionParams) (float64, error) {
	in, err := p.resolve(Override{})
	if err != nil {
		return 0, err
	}
	return in.delta()
}

// Gamma 价格对标的价格的二阶导数
func Gamma(p *OptionParams) (float64, error) {
	in, err := p.resolve(Override{})
	if err != nil {
		return 0, err
	}
	return in.gamma()
}

func Vega(p *OptionParams) (float64, error) {
	in, err := p.resolve(Override{})
	if err != nil {
		return 0, err
	}
	return in.vega()
}

func Theta(p *OptionParams) (float64, error) {
	in, err := p.resolve(Override{})
	if err != nil {
		return 0, err
	}
	return in.theta()
}

// CalculateGreeks 一次性计算 Delta、Gamma、Vega、Theta
func CalculateGreeks(p *OptionParams) (Greeks, error) {
	in, err := p.resolve(Override{})
	if err != nil {
		return Greeks{}, err
	}
	var g Greeks
	if g.Delta, err = in.delta(); err != nil {
		return Greeks{}, err
	}
	if g.Gamma, err = in.gamma(); err != nil {
		return Greeks{}, err
	}
	if g.Vega, err = in.vega(); err != nil {
		return Greeks{}, err
	}
	if g.Theta, err = in.theta(); err != nil {
		return Greeks{}, err
	}
	return g, nil
}

// normCDF 标准正态分布累积分布函数
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// normPDF 标准正态分布概率密度函数
func normPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
