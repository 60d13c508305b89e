package application

import (
	"context"

	"github.com/wyfcoding/exactpricing/pkg/metrics"
)

// PricingService 定价门面服务。
type PricingService struct {
	Command *PricingCommandService
	Query   *PricingQueryService
}

// NewPricingService 构造函数，m 为 nil 时不记录指标。
func NewPricingService(opts Options, m *metrics.Metrics) *PricingService {
	return &PricingService{
		Command: NewPricingCommandService(opts, m),
		Query:   NewPricingQueryService(opts, m),
	}
}

// --- Command Facade ---

func (s *PricingService) PriceOption(ctx context.Context, cmd OptionCommand) (*PricingResult, error) {
	return s.Command.PriceOption(ctx, cmd)
}

func (s *PricingService) BatchPriceOptions(ctx context.Context, cmd BatchPriceOptionsCommand) (*BatchPricingResult, error) {
	return s.Command.BatchPriceOptions(ctx, cmd)
}

func (s *PricingService) PriceOverMesh(ctx context.Context, cmd MeshPricingCommand) (*MeshResult, error) {
	return s.Command.PriceOverMesh(ctx, cmd)
}

// --- Query Facade ---

func (s *PricingService) GetGreeks(ctx context.Context, cmd OptionCommand) (*GreeksResult, error) {
	return s.Query.GetGreeks(ctx, cmd)
}

func (s *PricingService) ApproximateGreeks(ctx context.Context, cmd GreeksApproximationCommand) (*GreeksApproximationResult, error) {
	return s.Query.ApproximateGreeks(ctx, cmd)
}

func (s *PricingService) CheckParity(ctx context.Context, cmd ParityCommand) (*ParityResult, error) {
	return s.Query.CheckParity(ctx, cmd)
}
