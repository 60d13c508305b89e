package domain

import (
	"fmt"
	"math"
)

// OptionInput 构造期权参数的输入，Q 与 Rf 缺省为 0
type OptionInput struct {
	S          float64        // 标的资产价格
	K          float64        // 执行价格
	T          float64        // 到期时间 (年)
	R          float64        // 无风险利率
	Sigma      float64        // 波动率
	Q          float64        // 连续股息率，仅 DIVIDEND_STOCK 使用
	Rf         float64        // 外币无风险利率，仅 CURRENCY 使用
	Type       OptionType     // CALL/PUT
	Underlying UnderlyingType // 标的类别
}

// OptionParams 欧式期权合约与市场参数。
// 持有成本 b 由标的类别实时推导，不可单独设置。
type OptionParams struct {
	s          float64
	k          float64
	t          float64
	r          float64
	sigma      float64
	q          float64
	rf         float64
	optionType OptionType
	underlying UnderlyingType
}

// NewOptionParams 校验输入并构造期权参数
func NewOptionParams(in OptionInput) (*OptionParams, error) {
	if err := in.Type.Validate(); err != nil {
		return nil, err
	}
	if err := in.Underlying.Validate(); err != nil {
		return nil, err
	}
	if err := checkPositive("underlying price", in.S); err != nil {
		return nil, err
	}
	if err := checkPositive("strike price", in.K); err != nil {
		return nil, err
	}
	if err := checkMaturity(in.T); err != nil {
		return nil, err
	}
	if err := checkPositive("volatility", in.Sigma); err != nil {
		return nil, err
	}
	if err := checkFinite("risk-free rate", in.R); err != nil {
		return nil, err
	}
	if err := checkFinite("dividend yield", in.Q); err != nil {
		return nil, err
	}
	if err := checkFinite("foreign rate", in.Rf); err != nil {
		return nil, err
	}
	return &OptionParams{
		s:          in.S,
		k:          in.K,
		t:          in.T,
		r:          in.R,
		sigma:      in.Sigma,
		q:          in.Q,
		rf:         in.Rf,
		optionType: in.Type,
		underlying: in.Underlying,
	}, nil
}

func (p *OptionParams) UnderlyingPrice() float64       { return p.s }
func (p *OptionParams) StrikePrice() float64           { return p.k }
func (p *OptionParams) TimeToMaturity() float64        { return p.t }
func (p *OptionParams) RiskFreeRate() float64          { return p.r }
func (p *OptionParams) Volatility() float64            { return p.sigma }
func (p *OptionParams) DividendYield() float64         { return p.q }
func (p *OptionParams) ForeignRate() float64           { return p.rf }
func (p *OptionParams) OptionType() OptionType         { return p.optionType }
func (p *OptionParams) UnderlyingType() UnderlyingType { return p.underlying }

// CostOfCarry 按标的类别推导持有成本 b
func (p *OptionParams) CostOfCarry() float64 {
	return carryFor(p.underlying, p.r, p.q, p.rf)
}

func carryFor(u UnderlyingType, r, q, rf float64) float64 {
	switch u {
	case UnderlyingDividendStock:
		return r - q
	case UnderlyingFutures:
		return 0
	case UnderlyingCurrency:
		return r - rf
	default:
		return r
	}
}

func (p *OptionParams) SetUnderlyingPrice(s float64) error {
	if err := checkPositive("underlying price", s); err != nil {
		return err
	}
	p.s = s
	return nil
}

func (p *OptionParams) SetStrikePrice(k float64) error {
	if err := checkPositive("strike price", k); err != nil {
		return err
	}
	p.k = k
	return nil
}

func (p *OptionParams) SetTimeToMaturity(t float64) error {
	if err := checkMaturity(t); err != nil {
		return err
	}
	p.t = t
	return nil
}

func (p *OptionParams) SetRiskFreeRate(r float64) error {
	if err := checkFinite("risk-free rate", r); err != nil {
		return err
	}
	p.r = r
	return nil
}

func (p *OptionParams) SetVolatility(sigma float64) error {
	if err := checkPositive("volatility", sigma); err != nil {
		return err
	}
	p.sigma = sigma
	return nil
}

func (p *OptionParams) SetDividendYield(q float64) error {
	if err := checkFinite("dividend yield", q); err != nil {
		return err
	}
	p.q = q
	return nil
}

func (p *OptionParams) SetForeignRate(rf float64) error {
	if err := checkFinite("foreign rate", rf); err != nil {
		return err
	}
	p.rf = rf
	return nil
}

func (p *OptionParams) SetOptionType(t OptionType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	p.optionType = t
	return nil
}

func (p *OptionParams) SetUnderlyingType(u UnderlyingType) error {
	if err := u.Validate(); err != nil {
		return err
	}
	p.underlying = u
	return nil
}

// Clone 返回独立副本
func (p *OptionParams) Clone() *OptionParams {
	c := *p
	return &c
}

// WithOptionType 返回仅期权类型不同的副本
func (p *OptionParams) WithOptionType(t OptionType) (*OptionParams, error) {
	c := p.Clone()
	if err := c.SetOptionType(t); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *OptionParams) String() string {
	return fmt.Sprintf("%s %s S=%g K=%g T=%g r=%g sigma=%g b=%g",
		p.underlying, p.optionType, p.s, p.k, p.t, p.r, p.sigma, p.CostOfCarry())
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrDomain, name, v)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if err := checkFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrDomain, name, v)
	}
	return nil
}

func checkMaturity(t float64) error {
	if err := checkFinite("time to maturity", t); err != nil {
		return err
	}
	if t < 0 {
		return fmt.Errorf("%w: time to maturity must not be negative, got %v", ErrDomain, t)
	}
	return nil
}
