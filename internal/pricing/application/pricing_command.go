package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/wyfcoding/exactpricing/internal/pricing/domain"
	"github.com/wyfcoding/exactpricing/pkg/logger"
	"github.com/wyfcoding/exactpricing/pkg/mesh"
	"github.com/wyfcoding/exactpricing/pkg/metrics"
)

// PricingCommandService 处理定价计算类操作：单笔定价、批量定价、网格定价
type PricingCommandService struct {
	opts    Options
	metrics *metrics.Metrics
}

// NewPricingCommandService 创建新的 PricingCommandService 实例，m 可为 nil
func NewPricingCommandService(opts Options, m *metrics.Metrics) *PricingCommandService {
	return &PricingCommandService{opts: opts.withDefaults(), metrics: m}
}

// PriceOption 期权定价
func (c *PricingCommandService) PriceOption(ctx context.Context, cmd OptionCommand) (result *PricingResult, err error) {
	defer observe(ctx, c.metrics, opPrice, time.Now(), &err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	return priceOne(cmd)
}

func priceOne(cmd OptionCommand) (*PricingResult, error) {
	p, err := cmd.toParams()
	if err != nil {
		return nil, err
	}
	price, err := domain.Price(p)
	if err != nil {
		return nil, err
	}
	if err := ensureFinite("price", price); err != nil {
		return nil, err
	}
	return &PricingResult{
		OptionType:     string(p.OptionType()),
		UnderlyingType: string(p.UnderlyingType()),
		Price:          dec(price),
		CostOfCarry:    dec(p.CostOfCarry()),
		CalculatedAt:   time.Now().UnixMilli(),
	}, nil
}

// BatchPriceOptions 批量定价，逐个顺序计算；单项失败不影响其余项
func (c *PricingCommandService) BatchPriceOptions(ctx context.Context, cmd BatchPriceOptionsCommand) (result *BatchPricingResult, err error) {
	defer observe(ctx, c.metrics, opBatch, time.Now(), &err)

	if len(cmd.Options) > c.opts.MaxBatchSize {
		return nil, fmt.Errorf("%w: batch has %d options, limit %d", domain.ErrDomain, len(cmd.Options), c.opts.MaxBatchSize)
	}
	if cmd.BatchID == "" {
		cmd.BatchID = uuid.New().String()
	}

	result = &BatchPricingResult{
		BatchID: cmd.BatchID,
		Items:   make([]BatchItem, 0, len(cmd.Options)),
	}
	prices := make([]float64, 0, len(cmd.Options))
	totalTime := 0.0

	for i, option := range cmd.Options {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		res, itemErr := priceOne(option)
		elapsed := time.Since(start)
		totalTime += elapsed.Seconds()
		c.metrics.RecordOperation(opPrice, itemErr, elapsed)

		if itemErr != nil {
			logger.Warn(ctx, "batch item pricing failed", "batch_id", cmd.BatchID, "index", i, "error", itemErr)
			result.Items = append(result.Items, BatchItem{Index: i, Error: itemErr.Error()})
			result.FailureCount++
			continue
		}
		result.Items = append(result.Items, BatchItem{Index: i, Result: res})
		result.SuccessCount++
		prices = append(prices, res.Price.InexactFloat64())
	}

	if len(cmd.Options) > 0 {
		result.AverageTime = totalTime / float64(len(cmd.Options))
	}
	if len(prices) > 0 {
		if result.Summary, err = summarize(prices); err != nil {
			return nil, err
		}
	}

	logger.Info(ctx, "batch pricing completed",
		"batch_id", result.BatchID,
		"success_count", result.SuccessCount,
		"failure_count", result.FailureCount,
	)
	return result, nil
}

func summarize(prices []float64) (*PriceSummary, error) {
	data := stats.Float64Data(prices)
	minV, err := data.Min()
	if err != nil {
		return nil, err
	}
	maxV, err := data.Max()
	if err != nil {
		return nil, err
	}
	mean, err := data.Mean()
	if err != nil {
		return nil, err
	}
	median, err := data.Median()
	if err != nil {
		return nil, err
	}
	sd, err := data.StandardDeviation()
	if err != nil {
		return nil, err
	}
	return &PriceSummary{Min: dec(minV), Max: dec(maxV), Mean: dec(mean), Median: dec(median), StdDev: dec(sd)}, nil
}

// PriceOverMesh 网格定价。参数为 UNDERLYING 时同时给出每点的 Delta 与 Gamma。
func (c *PricingCommandService) PriceOverMesh(ctx context.Context, cmd MeshPricingCommand) (result *MeshResult, err error) {
	defer observe(ctx, c.metrics, opMesh, time.Now(), &err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	p, err := cmd.Option.toParams()
	if err != nil {
		return nil, err
	}
	param, err := domain.ParseParameter(cmd.Parameter)
	if err != nil {
		return nil, err
	}
	values, err := c.meshValues(cmd)
	if err != nil {
		return nil, err
	}

	prices, err := domain.PriceOverMesh(p, values, param)
	if err != nil {
		return nil, err
	}
	if err = ensureFinite("mesh price", prices...); err != nil {
		return nil, err
	}

	var deltas, gammas []float64
	if param == domain.ParameterUnderlying {
		if deltas, err = domain.DeltaOverMesh(p, values); err != nil {
			return nil, err
		}
		if gammas, err = domain.GammaOverMesh(p, values); err != nil {
			return nil, err
		}
		if err = ensureFinite("mesh greek", append(deltas, gammas...)...); err != nil {
			return nil, err
		}
	}

	result = &MeshResult{Parameter: string(param), Points: make([]MeshPoint, len(values))}
	for i, v := range values {
		point := MeshPoint{Value: v, Price: dec(prices[i])}
		if deltas != nil {
			point.Delta = decPtr(deltas[i])
			point.Gamma = decPtr(gammas[i])
		}
		result.Points[i] = point
	}
	c.metrics.AddMeshPoints(len(values))
	return result, nil
}

func (c *PricingCommandService) meshValues(cmd MeshPricingCommand) ([]float64, error) {
	if len(cmd.Values) > 0 {
		if len(cmd.Values) > c.opts.MaxMeshPoints {
			return nil, fmt.Errorf("%w: %w: %d points exceeds limit %d",
				domain.ErrDomain, mesh.ErrTooManyPoints, len(cmd.Values), c.opts.MaxMeshPoints)
		}
		return cmd.Values, nil
	}
	values, err := mesh.CreateWithLimit(cmd.Start, cmd.End, cmd.Step, c.opts.MaxMeshPoints)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDomain, err)
	}
	return values, nil
}
