// Package response 统一 HTTP JSON 响应结构
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 成功码
const CodeOK = "OK"

// Body 响应体
type Body struct {
	Code      string `json:"code"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success 返回 200 与数据
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{
		Code:      CodeOK,
		Data:      data,
		RequestID: c.GetString("request_id"),
	})
}

// ErrorWithStatus 以指定状态码返回错误并终止后续 handler
func ErrorWithStatus(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Body{
		Code:      code,
		Message:   message,
		RequestID: c.GetString("request_id"),
	})
}
