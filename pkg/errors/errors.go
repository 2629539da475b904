package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiyensi/store-settings-service/internal/middleware"
	"github.com/kiyensi/store-settings-service/pkg/code"
)

// AppError 统一应用错误结构体
// 包含错误码、消息、详情、追踪ID和时间戳
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As 链式匹配
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// NewAppErrorWithMessage creates an AppError whose message replaces the
// registered one, for errors that carry caller-supplied text.
// NewAppErrorWithMessage 创建带自定义消息的 AppError
func NewAppErrorWithMessage(errorCode int, message string, cause error) *AppError {
	return &AppError{
		Code:      errorCode,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithTraceID 设置 TraceID 并返回自身（链式调用）
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// WithDetails 设置详情并返回自身（链式调用）
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = details
	return e
}

// ErrorResponse 统一错误响应处理
// 从 gin.Context 获取 TraceID，将错误转换为 AppError 并返回 JSON 响应
func ErrorResponse(c *gin.Context, err error) {
	traceID := middleware.GetTraceIDFromGin(c)

	var appErr *AppError
	if errors.As(err, &appErr) {
		appErr.TraceID = traceID
		c.JSON(http.StatusOK, appErr)
		return
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		c.JSON(http.StatusOK, &AppError{
			Code:      codeErr.Code(),
			Message:   codeErr.Msg(),
			Details:   codeErr.Details(),
			TraceID:   traceID,
			Timestamp: time.Now(),
		})
		return
	}

	// 未知错误统一按内部错误返回
	c.JSON(http.StatusOK, &AppError{
		Code:      code.ErrorServerInternal.Code(),
		Message:   code.ErrorServerInternal.Msg(),
		TraceID:   traceID,
		Timestamp: time.Now(),
	})
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 从错误链中获取 AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
