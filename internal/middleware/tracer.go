package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultTraceIDHeader 默认的 Trace ID 请求头名称
	DefaultTraceIDHeader = "X-Trace-ID"
	// TraceIDKey Context 中存储 Trace ID 的键
	TraceIDKey = "trace_id"
)

// TraceMiddlewareWithConfig 创建请求追踪中间件（支持依赖注入）
// 功能：
// 1. 从请求头获取或生成唯一的 Trace ID
// 2. 将 Trace ID 注入到 gin.Context 和 request.Context
// 3. 在响应头中返回 Trace ID
func TraceMiddlewareWithConfig(enabled bool, header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultTraceIDHeader
	}
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		traceID := c.GetHeader(header)
		if traceID == "" {
			traceID = generateTraceID()
		}

		c.Set(TraceIDKey, traceID)

		ctx := context.WithValue(c.Request.Context(), TraceIDKey, traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(header, traceID)

		c.Next()
	}
}

// generateTraceID 生成唯一的 Trace ID
// 格式: {timestamp_nano}-{random_hex}
func generateTraceID() string {
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		// 随机数生成失败时使用时间戳兜底
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}

	return fmt.Sprintf("%d-%s",
		time.Now().UnixNano(),
		hex.EncodeToString(randomBytes)[:8])
}

// GetTraceID 从 context.Context 获取 Trace ID
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(TraceIDKey).(string); ok {
		return id
	}
	return ""
}

// GetTraceIDFromGin 从 gin.Context 获取 Trace ID
func GetTraceIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if id, exists := c.Get(TraceIDKey); exists {
		if traceID, ok := id.(string); ok {
			return traceID
		}
	}
	return ""
}
