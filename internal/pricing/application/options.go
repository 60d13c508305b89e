package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wyfcoding/exactpricing/internal/pricing/domain"
	"github.com/wyfcoding/exactpricing/pkg/logger"
	"github.com/wyfcoding/exactpricing/pkg/mesh"
	"github.com/wyfcoding/exactpricing/pkg/metrics"
)

// 指标与日志中的操作名
const (
	opPrice         = "price"
	opBatch         = "batch_price"
	opMesh          = "mesh_price"
	opGreeks        = "greeks"
	opApproximation = "greeks_approximation"
	opParity        = "parity"
)

// Options 定价服务参数
type Options struct {
	DeltaStep     float64 // Delta 差分默认步长
	GammaStep     float64 // Gamma 差分默认步长
	MaxMeshPoints int
	MaxBatchSize  int
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{DeltaStep: 0.01, GammaStep: 0.1, MaxMeshPoints: 10000, MaxBatchSize: 1000}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DeltaStep <= 0 {
		o.DeltaStep = d.DeltaStep
	}
	if o.GammaStep <= 0 {
		o.GammaStep = d.GammaStep
	}
	if o.MaxMeshPoints <= 0 {
		o.MaxMeshPoints = d.MaxMeshPoints
	}
	if o.MaxMeshPoints > mesh.DefaultMaxPoints {
		o.MaxMeshPoints = mesh.DefaultMaxPoints
	}
	if o.MaxBatchSize <= 0 {
		o.MaxBatchSize = d.MaxBatchSize
	}
	return o
}

// observe 在 defer 中调用，记录耗时、结果状态，失败时输出日志
func observe(ctx context.Context, m *metrics.Metrics, op string, start time.Time, errp *error) {
	err := *errp
	m.RecordOperation(op, err, time.Since(start))
	if err != nil {
		logger.Warn(ctx, "pricing operation failed", "operation", op, "error", err)
		return
	}
	logger.Debug(ctx, "pricing operation completed", "operation", op, "duration", time.Since(start))
}

// 极端参数下结果可能溢出，decimal 无法表示 NaN/Inf
func ensureFinite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", domain.ErrDomain, name)
		}
	}
	return nil
}
