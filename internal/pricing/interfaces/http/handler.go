package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/exactpricing/internal/pricing/application"
	"github.com/wyfcoding/exactpricing/internal/pricing/domain"
	"github.com/wyfcoding/exactpricing/pkg/response"
)

// 错误码
const (
	CodeDomainError        = "DOMAIN_ERROR"
	CodeConfigurationError = "CONFIGURATION_ERROR"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInternalError      = "INTERNAL_ERROR"
)

// HTTP 处理器
// 负责处理与定价相关的 HTTP 请求
type PricingHandler struct {
	cmd   *application.PricingCommandService
	query *application.PricingQueryService
}

// 创建 HTTP 处理器实例
func NewPricingHandler(cmd *application.PricingCommandService, query *application.PricingQueryService) *PricingHandler {
	return &PricingHandler{cmd: cmd, query: query}
}

// 注册路由
// 将处理器方法绑定到 Gin 路由引擎
func (h *PricingHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/option/price", h.PriceOption)
		api.POST("/option/greeks", h.GetGreeks)
		api.POST("/option/greeks/approximation", h.ApproximateGreeks)
		api.POST("/option/parity", h.CheckParity)
		api.POST("/option/mesh", h.PriceOverMesh)
		api.POST("/option/batch", h.BatchPriceOptions)
	}
}

// OptionRequest 期权参数请求
type OptionRequest struct {
	OptionType      string  `json:"option_type" binding:"required"`
	UnderlyingType  string  `json:"underlying_type"`
	UnderlyingPrice float64 `json:"underlying_price"`
	StrikePrice     float64 `json:"strike_price"`
	TimeToMaturity  float64 `json:"time_to_maturity"`
	RiskFreeRate    float64 `json:"risk_free_rate"`
	Volatility      float64 `json:"volatility"`
	DividendYield   float64 `json:"dividend_yield"`
	ForeignRate     float64 `json:"foreign_rate"`
}

func (r OptionRequest) toCommand() application.OptionCommand {
	return application.OptionCommand{
		OptionType:      r.OptionType,
		UnderlyingType:  r.UnderlyingType,
		UnderlyingPrice: r.UnderlyingPrice,
		StrikePrice:     r.StrikePrice,
		TimeToMaturity:  r.TimeToMaturity,
		RiskFreeRate:    r.RiskFreeRate,
		Volatility:      r.Volatility,
		DividendYield:   r.DividendYield,
		ForeignRate:     r.ForeignRate,
	}
}

// ParityRequest 平价推导请求
type ParityRequest struct {
	Option        OptionRequest `json:"option"`
	ObservedPrice *float64      `json:"observed_price" binding:"required"`
}

// MeshRequest 网格定价请求，values 与 start/end/step 二选一
type MeshRequest struct {
	Option    OptionRequest `json:"option"`
	Parameter string        `json:"parameter" binding:"required"`
	Values    []float64     `json:"values"`
	Start     float64       `json:"start"`
	End       float64       `json:"end"`
	Step      float64       `json:"step"`
}

// ApproximationRequest 有限差分近似请求
type ApproximationRequest struct {
	Option    OptionRequest `json:"option"`
	DeltaStep float64       `json:"delta_step"`
	GammaStep float64       `json:"gamma_step"`
}

// BatchRequest 批量定价请求
type BatchRequest struct {
	BatchID string          `json:"batch_id"`
	Options []OptionRequest `json:"options" binding:"required,min=1,dive"`
}

// PriceOption 期权定价
func (h *PricingHandler) PriceOption(c *gin.Context) {
	var req OptionRequest
	if !bind(c, &req) {
		return
	}
	result, err := h.cmd.PriceOption(c.Request.Context(), req.toCommand())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

// GetGreeks 获取希腊字母
func (h *PricingHandler) GetGreeks(c *gin.Context) {
	var req OptionRequest
	if !bind(c, &req) {
		return
	}
	greeks, err := h.query.GetGreeks(c.Request.Context(), req.toCommand())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, greeks)
}

// ApproximateGreeks 对比解析解与差分近似
func (h *PricingHandler) ApproximateGreeks(c *gin.Context) {
	var req ApproximationRequest
	if !bind(c, &req) {
		return
	}
	result, err := h.query.ApproximateGreeks(c.Request.Context(), application.GreeksApproximationCommand{
		Option:    req.Option.toCommand(),
		DeltaStep: req.DeltaStep,
		GammaStep: req.GammaStep,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

// CheckParity 平价推导
func (h *PricingHandler) CheckParity(c *gin.Context) {
	var req ParityRequest
	if !bind(c, &req) {
		return
	}
	result, err := h.query.CheckParity(c.Request.Context(), application.ParityCommand{
		Option:        req.Option.toCommand(),
		ObservedPrice: *req.ObservedPrice,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

// PriceOverMesh 网格定价
func (h *PricingHandler) PriceOverMesh(c *gin.Context) {
	var req MeshRequest
	if !bind(c, &req) {
		return
	}
	result, err := h.cmd.PriceOverMesh(c.Request.Context(), application.MeshPricingCommand{
		Option:    req.Option.toCommand(),
		Parameter: req.Parameter,
		Values:    req.Values,
		Start:     req.Start,
		End:       req.End,
		Step:      req.Step,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

// BatchPriceOptions 批量定价
func (h *PricingHandler) BatchPriceOptions(c *gin.Context) {
	var req BatchRequest
	if !bind(c, &req) {
		return
	}
	options := make([]application.OptionCommand, len(req.Options))
	for i, o := range req.Options {
		options[i] = o.toCommand()
	}
	result, err := h.cmd.BatchPriceOptions(c.Request.Context(), application.BatchPriceOptionsCommand{
		BatchID: req.BatchID,
		Options: options,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return false
	}
	return true
}

// 领域错误与配置错误都是调用方输入问题，返回 400
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		response.ErrorWithStatus(c, http.StatusBadRequest, CodeConfigurationError, err.Error())
	case errors.Is(err, domain.ErrDomain):
		response.ErrorWithStatus(c, http.StatusBadRequest, CodeDomainError, err.Error())
	default:
		response.ErrorWithStatus(c, http.StatusInternalServerError, CodeInternalError, err.Error())
	}
}
