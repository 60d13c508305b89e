package application

import (
	"strings"

	"github.com/wyfcoding/exactpricing/internal/pricing/domain"
)

// OptionCommand 欧式期权参数
type OptionCommand struct {
	OptionType      string
	UnderlyingType  string // 为空时按 STOCK 处理
	UnderlyingPrice float64
	StrikePrice     float64
	TimeToMaturity  float64
	RiskFreeRate    float64
	Volatility      float64
	DividendYield   float64 // 仅 DIVIDEND_STOCK 使用
	ForeignRate     float64 // 仅 CURRENCY 使用
}

func (c OptionCommand) toParams() (*domain.OptionParams, error) {
	ot, err := domain.ParseOptionType(c.OptionType)
	if err != nil {
		return nil, err
	}
	underlying := domain.UnderlyingStock
	if strings.TrimSpace(c.UnderlyingType) != "" {
		if underlying, err = domain.ParseUnderlyingType(c.UnderlyingType); err != nil {
			return nil, err
		}
	}
	return domain.NewOptionParams(domain.OptionInput{
		S:          c.UnderlyingPrice,
		K:          c.StrikePrice,
		T:          c.TimeToMaturity,
		R:          c.RiskFreeRate,
		Sigma:      c.Volatility,
		Q:          c.DividendYield,
		Rf:         c.ForeignRate,
		Type:       ot,
		Underlying: underlying,
	})
}

// ParityCommand 看涨看跌平价推导命令，Option 为已观察到价格的一方
type ParityCommand struct {
	Option        OptionCommand
	ObservedPrice float64
}

// MeshPricingCommand 网格定价命令。
// Values 非空时直接使用，否则由 Start/End/Step 生成网格。
type MeshPricingCommand struct {
	Option    OptionCommand
	Parameter string
	Values    []float64
	Start     float64
	End       float64
	Step      float64
}

// GreeksApproximationCommand 有限差分近似命令，步长为 0 时使用配置的默认值
type GreeksApproximationCommand struct {
	Option    OptionCommand
	DeltaStep float64
	GammaStep float64
}

// BatchPriceOptionsCommand 批量定价命令
type BatchPriceOptionsCommand struct {
	BatchID string
	Options []OptionCommand
}
