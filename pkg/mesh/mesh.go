// Package mesh 生成等差参数网格，用于敏感性分析
package mesh

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxPoints 单个网格的最大点数
const DefaultMaxPoints = 1_000_000

var (
	ErrInvalidMesh   = errors.New("invalid mesh")
	ErrTooManyPoints = errors.New("mesh has too many points")
)

// Create 生成 start, start+step, ... 直至 end（含端点）
func Create(start, end, step float64) ([]float64, error) {
	return CreateWithLimit(start, end, step, DefaultMaxPoints)
}

// CreateWithLimit 同 Create，点数超过 maxPoints 时返回 ErrTooManyPoints。
// maxPoints <= 0 时使用 DefaultMaxPoints。
func CreateWithLimit(start, end, step float64, maxPoints int) ([]float64, error) {
	for _, v := range []float64{start, end, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: bounds and step must be finite", ErrInvalidMesh)
		}
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %v", ErrInvalidMesh, step)
	}
	if end < start {
		return nil, fmt.Errorf("%w: end %v is before start %v", ErrInvalidMesh, end, start)
	}

	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}

	// 容差吸收 (end-start)/step 的浮点误差，保证端点被包含。
	// 先以 float64 与上限比较，再转换为 int
	count := math.Floor((end-start)/step+1e-9) + 1
	if count > float64(maxPoints) {
		return nil, fmt.Errorf("%w: %g points exceeds limit %d", ErrTooManyPoints, count, maxPoints)
	}
	n := int(count)

	points := make([]float64, n)
	for i := range points {
		points[i] = start + float64(i)*step
	}
	return points, nil
}
