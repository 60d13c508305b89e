package application

import (
	"context"
	"math"
	"time"

	"github.com/wyfcoding/exactpricing/internal/pricing/domain"
	"github.com/wyfcoding/exactpricing/pkg/metrics"
)

// PricingQueryService 处理希腊字母、差分近似与平价推导等分析类查询
type PricingQueryService struct {
	opts    Options
	metrics *metrics.Metrics
}

// NewPricingQueryService 构造函数。
func NewPricingQueryService(opts Options, m *metrics.Metrics) *PricingQueryService {
	return &PricingQueryService{opts: opts.withDefaults(), metrics: m}
}

// GetGreeks 计算解析解希腊字母
func (s *PricingQueryService) GetGreeks(ctx context.Context, cmd OptionCommand) (result *GreeksResult, err error) {
	defer observe(ctx, s.metrics, opGreeks, time.Now(), &err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	p, err := cmd.toParams()
	if err != nil {
		return nil, err
	}
	g, err := domain.CalculateGreeks(p)
	if err != nil {
		return nil, err
	}
	if err = ensureFinite("greeks", g.Delta, g.Gamma, g.Vega, g.Theta); err != nil {
		return nil, err
	}
	return &GreeksResult{
		Delta: dec(g.Delta),
		Gamma: dec(g.Gamma),
		Vega:  dec(g.Vega),
		Theta: dec(g.Theta),
	}, nil
}

// ApproximateGreeks 用中心差分近似 Delta、Gamma 并与解析解对比
func (s *PricingQueryService) ApproximateGreeks(ctx context.Context, cmd GreeksApproximationCommand) (result *GreeksApproximationResult, err error) {
	defer observe(ctx, s.metrics, opApproximation, time.Now(), &err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	p, err := cmd.Option.toParams()
	if err != nil {
		return nil, err
	}
	dh, gh := cmd.DeltaStep, cmd.GammaStep
	if dh == 0 {
		dh = s.opts.DeltaStep
	}
	if gh == 0 {
		gh = s.opts.GammaStep
	}

	delta, err := domain.Delta(p)
	if err != nil {
		return nil, err
	}
	gamma, err := domain.Gamma(p)
	if err != nil {
		return nil, err
	}
	deltaApprox, err := domain.DeltaApproximation(p, dh)
	if err != nil {
		return nil, err
	}
	gammaApprox, err := domain.GammaApproximation(p, gh)
	if err != nil {
		return nil, err
	}
	if err = ensureFinite("greeks", delta, gamma, deltaApprox, gammaApprox); err != nil {
		return nil, err
	}

	return &GreeksApproximationResult{
		DeltaStep:   dh,
		GammaStep:   gh,
		Delta:       dec(delta),
		DeltaApprox: dec(deltaApprox),
		DeltaError:  dec(math.Abs(delta - deltaApprox)),
		Gamma:       dec(gamma),
		GammaApprox: dec(gammaApprox),
		GammaError:  dec(math.Abs(gamma - gammaApprox)),
	}, nil
}

// CheckParity 由观察价格按平价推导另一方价格
func (s *PricingQueryService) CheckParity(ctx context.Context, cmd ParityCommand) (result *ParityResult, err error) {
	defer observe(ctx, s.metrics, opParity, time.Now(), &err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	p, err := cmd.Option.toParams()
	if err != nil {
		return nil, err
	}
	res, err := domain.PriceViaPutCallParity(p, cmd.ObservedPrice)
	if err != nil {
		return nil, err
	}
	if err = ensureFinite("parity price", res.Price, res.Difference); err != nil {
		return nil, err
	}
	return &ParityResult{
		ObservedType: string(p.OptionType()),
		DerivedType:  string(res.OptionType),
		Price:        dec(res.Price),
		Difference:   dec(res.Difference),
	}, nil
}
