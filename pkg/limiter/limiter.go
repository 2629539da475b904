package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	// Key 从请求中提取限流键
	Key(c *gin.Context) string
	// GetBucket 获取键对应的令牌桶
	GetBucket(key string) (*ratelimit.Bucket, bool)
	// AddBuckets 注册限流规则
	AddBuckets(rules ...BucketRule) Face
}

// Limiter 按键存放令牌桶
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// BucketRule defines one token bucket: fill FillInterval adds Quantum
// tokens up to Capacity.
// BucketRule 单条限流规则
type BucketRule struct {
	// Key 限流键，通常为路由前缀
	Key string
	// FillInterval 放入令牌的间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放入的令牌数量
	Quantum int64
}
