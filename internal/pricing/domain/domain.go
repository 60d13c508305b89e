// 包 定价服务的领域模型：欧式期权参数与广义 Black-Scholes-Merton 定价引擎
package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDomain 参数超出模型定义域（S、K、σ 非正，T 为负，σ√T 为零等）
	ErrDomain = errors.New("domain error")
	// ErrConfiguration 无法识别的枚举取值（期权类型、标的类型、网格参数）
	ErrConfiguration = errors.New("configuration error")
)

// OptionType 期权类型
type OptionType string

const (
	OptionTypeCall OptionType = "CALL" // 看涨期权
	OptionTypePut  OptionType = "PUT"  // 看跌期权
)

// ParseOptionType 解析期权类型，大小写不敏感
func ParseOptionType(s string) (OptionType, error) {
	t := OptionType(strings.ToUpper(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t OptionType) Validate() error {
	switch t {
	case OptionTypeCall, OptionTypePut:
		return nil
	}
	return fmt.Errorf("%w: unknown option type %q", ErrConfiguration, string(t))
}

// Sign 看涨 +1，看跌 -1
func (t OptionType) Sign() float64 {
	if t == OptionTypePut {
		return -1
	}
	return 1
}

// Opposite 返回平价关系中的另一方
func (t OptionType) Opposite() OptionType {
	if t == OptionTypePut {
		return OptionTypeCall
	}
	return OptionTypePut
}

// UnderlyingType 标的资产类别，决定持有成本 b 的计算方式
type UnderlyingType string

const (
	UnderlyingStock         UnderlyingType = "STOCK"          // b = r
	UnderlyingDividendStock UnderlyingType = "DIVIDEND_STOCK" // b = r - q
	UnderlyingFutures       UnderlyingType = "FUTURES"        // b = 0
	UnderlyingCurrency      UnderlyingType = "CURRENCY"       // b = r - Rf
)

// ParseUnderlyingType 解析标的类别，DIVIDEND 视为 DIVIDEND_STOCK
func ParseUnderlyingType(s string) (UnderlyingType, error) {
	u := UnderlyingType(strings.ToUpper(strings.TrimSpace(s)))
	if u == "DIVIDEND" {
		u = UnderlyingDividendStock
	}
	if err := u.Validate(); err != nil {
		return "", err
	}
	return u, nil
}

func (u UnderlyingType) Validate() error {
	switch u {
	case UnderlyingStock, UnderlyingDividendStock, UnderlyingFutures, UnderlyingCurrency:
		return nil
	}
	return fmt.Errorf("%w: unknown underlying type %q", ErrConfiguration, string(u))
}

// Parameter 网格定价时被替换的参数
type Parameter string

const (
	ParameterUnderlying Parameter = "UNDERLYING"
	ParameterStrike     Parameter = "STRIKE"
	ParameterTime       Parameter = "TIME"
	ParameterRate       Parameter = "RATE"
	ParameterVolatility Parameter = "VOLATILITY"
	ParameterCarry      Parameter = "CARRY"
)

// ParseParameter 解析网格参数，SIGMA 视为 VOLATILITY
func ParseParameter(s string) (Parameter, error) {
	p := Parameter(strings.ToUpper(strings.TrimSpace(s)))
	if p == "SIGMA" {
		p = ParameterVolatility
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p Parameter) Validate() error {
	switch p {
	case ParameterUnderlying, ParameterStrike, ParameterTime, ParameterRate, ParameterVolatility, ParameterCarry:
		return nil
	}
	return fmt.Errorf("%w: unknown mesh parameter %q", ErrConfiguration, string(p))
}
