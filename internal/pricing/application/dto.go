package application

import "github.com/shopspring/decimal"

// PricingResult 单个期权定价结果
type PricingResult struct {
	OptionType     string          `json:"option_type"`
	UnderlyingType string          `json:"underlying_type"`
	Price          decimal.Decimal `json:"price"`
	CostOfCarry    decimal.Decimal `json:"cost_of_carry"`
	CalculatedAt   int64           `json:"calculated_at"`
}

// GreeksResult 解析解希腊字母
type GreeksResult struct {
	Delta decimal.Decimal `json:"delta"`
	Gamma decimal.Decimal `json:"gamma"`
	Vega  decimal.Decimal `json:"vega"`
	Theta decimal.Decimal `json:"theta"`
}

// ParityResult 平价推导结果
type ParityResult struct {
	ObservedType string          `json:"observed_type"`
	DerivedType  string          `json:"derived_type"`
	Price        decimal.Decimal `json:"price"`
	Difference   decimal.Decimal `json:"difference"`
}

// MeshPoint 网格上的一个点，Delta/Gamma 仅在标的价格网格上给出
type MeshPoint struct {
	Value float64          `json:"value"`
	Price decimal.Decimal  `json:"price"`
	Delta *decimal.Decimal `json:"delta,omitempty"`
	Gamma *decimal.Decimal `json:"gamma,omitempty"`
}

// MeshResult 网格定价结果
type MeshResult struct {
	Parameter string      `json:"parameter"`
	Points    []MeshPoint `json:"points"`
}

// GreeksApproximationResult 解析解与有限差分近似的对比
type GreeksApproximationResult struct {
	DeltaStep   float64         `json:"delta_step"`
	GammaStep   float64         `json:"gamma_step"`
	Delta       decimal.Decimal `json:"delta"`
	DeltaApprox decimal.Decimal `json:"delta_approx"`
	DeltaError  decimal.Decimal `json:"delta_error"`
	Gamma       decimal.Decimal `json:"gamma"`
	GammaApprox decimal.Decimal `json:"gamma_approx"`
	GammaError  decimal.Decimal `json:"gamma_error"`
}

// BatchItem 批量定价中的单项，失败时 Error 非空
type BatchItem struct {
	Index  int            `json:"index"`
	Result *PricingResult `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// PriceSummary 批量成功项的价格统计
type PriceSummary struct {
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Mean   decimal.Decimal `json:"mean"`
	Median decimal.Decimal `json:"median"`
	StdDev decimal.Decimal `json:"std_dev"`
}

// BatchPricingResult 批量定价结果
type BatchPricingResult struct {
	BatchID      string        `json:"batch_id"`
	Items        []BatchItem   `json:"items"`
	SuccessCount int           `json:"success_count"`
	FailureCount int           `json:"failure_count"`
	AverageTime  float64       `json:"average_time"` // 秒
	Summary      *PriceSummary `json:"summary,omitempty"`
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decPtr(v float64) *decimal.Decimal {
	d := dec(v)
	return &d
}
