package application

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/exactpricing/internal/pricing/domain"
	"github.com/wyfcoding/exactpricing/pkg/mesh"
	"github.com/wyfcoding/exactpricing/pkg/metrics"
)

func hullCommand(optionType string) OptionCommand {
	return OptionCommand{
		OptionType:      optionType,
		UnderlyingType:  "STOCK",
		UnderlyingPrice: 60,
		StrikePrice:     65,
		TimeToMaturity:  0.25,
		RiskFreeRate:    0.08,
		Volatility:      0.30,
	}
}

func newService(t *testing.T) (*PricingService, *metrics.Metrics) {
	t.Helper()
	m := metrics.New("test")
	require.NoError(t, m.Register(prometheus.NewRegistry()))
	return NewPricingService(Options{MaxMeshPoints: 50, MaxBatchSize: 3}, m), m
}

func TestPriceOption(t *testing.T) {
	svc, m := newService(t)
	ctx := context.Background()

	call, err := svc.PriceOption(ctx, hullCommand("CALL"))
	require.NoError(t, err)
	assert.InDelta(t, 2.1334, call.Price.InexactFloat64(), 1e-4)
	assert.Equal(t, "CALL", call.OptionType)
	assert.Equal(t, "STOCK", call.UnderlyingType)
	assert.InDelta(t, 0.08, call.CostOfCarry.InexactFloat64(), 1e-12)

	put, err := svc.PriceOption(ctx, hullCommand("put"))
	require.NoError(t, err)
	assert.InDelta(t, 5.8463, put.Price.InexactFloat64(), 1e-4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues(opPrice, metrics.StatusSuccess)))
}

func TestPriceOption_DefaultsToStock(t *testing.T) {
	svc, _ := newService(t)
	cmd := hullCommand("CALL")
	cmd.UnderlyingType = ""

	res, err := svc.PriceOption(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "STOCK", res.UnderlyingType)
}

func TestPriceOption_Errors(t *testing.T) {
	svc, m := newService(t)
	ctx := context.Background()

	cmd := hullCommand("STRADDLE")
	_, err := svc.PriceOption(ctx, cmd)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	cmd = hullCommand("CALL")
	cmd.Volatility = -0.2
	_, err = svc.PriceOption(ctx, cmd)
	assert.ErrorIs(t, err, domain.ErrDomain)

	cmd = hullCommand("CALL")
	cmd.TimeToMaturity = 0
	_, err = svc.PriceOption(ctx, cmd)
	assert.ErrorIs(t, err, domain.ErrDomain)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues(opPrice, metrics.StatusError)))
}

func TestPriceOption_CanceledContext(t *testing.T) {
	svc, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.PriceOption(ctx, hullCommand("CALL"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchPriceOptions(t *testing.T) {
	svc, _ := newService(t)
	bad := hullCommand("CALL")
	bad.StrikePrice = 0

	res, err := svc.BatchPriceOptions(context.Background(), BatchPriceOptionsCommand{
		Options: []OptionCommand{hullCommand("CALL"), bad, hullCommand("PUT")},
	})
	require.NoError(t, err)

	assert.Len(t, res.BatchID, 36)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 1, res.FailureCount)
	require.Len(t, res.Items, 3)
	assert.NotNil(t, res.Items[0].Result)
	assert.Nil(t, res.Items[1].Result)
	assert.Contains(t, res.Items[1].Error, "strike price")
	assert.Equal(t, 2, res.Items[2].Index)

	require.NotNil(t, res.Summary)
	assert.InDelta(t, 2.1334, res.Summary.Min.InexactFloat64(), 1e-4)
	assert.InDelta(t, 5.8463, res.Summary.Max.InexactFloat64(), 1e-4)
	assert.InDelta(t, (2.13337+5.84628)/2, res.Summary.Mean.InexactFloat64(), 1e-4)
}

func TestBatchPriceOptions_TooLarge(t *testing.T) {
	svc, m := newService(t)
	options := []OptionCommand{hullCommand("CALL"), hullCommand("PUT"), hullCommand("CALL"), hullCommand("PUT")}

	_, err := svc.BatchPriceOptions(context.Background(), BatchPriceOptionsCommand{Options: options})
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Contains(t, err.Error(), "limit 3")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues(opPrice, metrics.StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues(opBatch, metrics.StatusError)))
}

func TestBatchPriceOptions_KeepsBatchIDAndEmpty(t *testing.T) {
	svc, _ := newService(t)
	res, err := svc.BatchPriceOptions(context.Background(), BatchPriceOptionsCommand{BatchID: "b-1"})
	require.NoError(t, err)
	assert.Equal(t, "b-1", res.BatchID)
	assert.Empty(t, res.Items)
	assert.Nil(t, res.Summary)
	assert.Zero(t, res.AverageTime)
}

func TestPriceOverMesh_UnderlyingWithGreeks(t *testing.T) {
	svc, m := newService(t)
	option := OptionCommand{
		OptionType: "PUT", UnderlyingType: "STOCK",
		UnderlyingPrice: 100, StrikePrice: 100, TimeToMaturity: 30, RiskFreeRate: 0.08, Volatility: 0.30,
	}

	res, err := svc.PriceOverMesh(context.Background(), MeshPricingCommand{
		Option: option, Parameter: "UNDERLYING", Start: 99, End: 101, Step: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "UNDERLYING", res.Parameter)
	require.Len(t, res.Points, 3)
	want := []float64{1.2588291176162199, 1.247499171151676, 1.236348814182577}
	for i, pt := range res.Points {
		assert.Equal(t, 99.0+float64(i), pt.Value)
		assert.InDelta(t, want[i], pt.Price.InexactFloat64(), 1e-9)
		require.NotNil(t, pt.Delta)
		require.NotNil(t, pt.Gamma)
		assert.Less(t, pt.Delta.InexactFloat64(), 0.0)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.MeshPointsTotal))
}

func TestPriceOverMesh_ExplicitValuesOtherParameter(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.PriceOverMesh(context.Background(), MeshPricingCommand{
		Option: hullCommand("CALL"), Parameter: "sigma", Values: []float64{0.2, 0.3, 0.4},
	})
	require.NoError(t, err)

	require.Len(t, res.Points, 3)
	assert.Equal(t, "VOLATILITY", res.Parameter)
	assert.InDelta(t, 2.1334, res.Points[1].Price.InexactFloat64(), 1e-4)
	for _, pt := range res.Points {
		assert.Nil(t, pt.Delta)
	}
	assert.True(t, res.Points[0].Price.LessThan(res.Points[2].Price))
}

func TestPriceOverMesh_Errors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.PriceOverMesh(ctx, MeshPricingCommand{Option: hullCommand("CALL"), Parameter: "UNDERLYING", Start: 1, End: 100, Step: 1})
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.ErrorIs(t, err, mesh.ErrTooManyPoints)

	_, err = svc.PriceOverMesh(ctx, MeshPricingCommand{Option: hullCommand("CALL"), Parameter: "UNDERLYING", Start: 10, End: 1, Step: 1})
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)

	_, err = svc.PriceOverMesh(ctx, MeshPricingCommand{Option: hullCommand("CALL"), Parameter: "DIVIDEND", Values: []float64{1}})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = svc.PriceOverMesh(ctx, MeshPricingCommand{Option: hullCommand("CALL"), Parameter: "UNDERLYING", Values: []float64{50, -1}})
	assert.ErrorIs(t, err, domain.ErrDomain)
}

func TestGetGreeks(t *testing.T) {
	svc, _ := newService(t)
	res, err := svc.GetGreeks(context.Background(), OptionCommand{
		OptionType: "CALL", UnderlyingType: "FUTURES",
		UnderlyingPrice: 105, StrikePrice: 100, TimeToMaturity: 0.5, RiskFreeRate: 0.1, Volatility: 0.36,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.5946, res.Delta.InexactFloat64(), 1e-4)
	assert.True(t, res.Gamma.IsPositive())
	assert.True(t, res.Vega.IsPositive())
}

func TestApproximateGreeks(t *testing.T) {
	svc, _ := newService(t)
	option := OptionCommand{
		OptionType: "CALL", UnderlyingType: "FUTURES",
		UnderlyingPrice: 105, StrikePrice: 100, TimeToMaturity: 0.5, RiskFreeRate: 0.1, Volatility: 0.36,
	}

	res, err := svc.ApproximateGreeks(context.Background(), GreeksApproximationCommand{Option: option, DeltaStep: 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.DeltaStep)
	assert.Equal(t, 0.1, res.GammaStep)
	assert.InDelta(t, 0.5945804169134306, res.DeltaApprox.InexactFloat64(), 1e-9)
	assert.Less(t, res.DeltaError.InexactFloat64(), 1e-4)
	assert.Less(t, res.GammaError.InexactFloat64(), 1e-4)

	_, err = svc.ApproximateGreeks(context.Background(), GreeksApproximationCommand{Option: option, DeltaStep: -1})
	assert.ErrorIs(t, err, domain.ErrDomain)
}

func TestCheckParity(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.CheckParity(context.Background(), ParityCommand{Option: hullCommand("PUT"), ObservedPrice: 5.84628})
	require.NoError(t, err)
	assert.Equal(t, "PUT", res.ObservedType)
	assert.Equal(t, "CALL", res.DerivedType)
	assert.InDelta(t, 2.1334, res.Price.InexactFloat64(), 1e-4)
	assert.InDelta(t, 0, res.Difference.InexactFloat64(), 1e-9)

	_, err = svc.CheckParity(context.Background(), ParityCommand{Option: hullCommand("PUT"), ObservedPrice: -1})
	assert.ErrorIs(t, err, domain.ErrDomain)
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{MaxMeshPoints: 2 * mesh.DefaultMaxPoints}.withDefaults()
	assert.Equal(t, 0.01, o.DeltaStep)
	assert.Equal(t, 0.1, o.GammaStep)
	assert.Equal(t, mesh.DefaultMaxPoints, o.MaxMeshPoints)
	assert.Equal(t, 10000, Options{}.withDefaults().MaxMeshPoints)
	assert.Equal(t, 1000, Options{}.withDefaults().MaxBatchSize)
}
