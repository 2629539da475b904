// Package domain 定义领域模型和接口
package domain

import "context"

// SettingsRepository 设置仓储接口
// 针对唯一的一条逻辑记录，upsert 为字段级合并语义
type SettingsRepository interface {
	// Get 获取已持久化的设置文档（可能为部分字段），记录不存在时返回空映射
	Get(ctx context.Context) (map[string]any, error)

	// Count 返回设置记录数量
	Count(ctx context.Context) (int64, error)

	// Create 以给定字段集创建单例记录
	Create(ctx context.Context, fields map[string]any) error

	// Upsert 将补丁按字段合并进单例记录，记录不存在则创建
	Upsert(ctx context.Context, patch map[string]any) error
}
