// Package dao 实现数据访问层
package dao

import (
	"context"
	"errors"

	"github.com/kiyensi/store-settings-service/internal/domain"
	"github.com/kiyensi/store-settings-service/internal/model"
	"github.com/kiyensi/store-settings-service/pkg/timex"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// settingsRepository 实现 domain.SettingsRepository 接口
type settingsRepository struct {
	dao *Dao
}

// NewSettingsRepository 创建 SettingsRepository 实例
func NewSettingsRepository(dao *Dao) domain.SettingsRepository {
	return &settingsRepository{dao: dao}
}

// decodeFields 将 JSON 列解码为字段映射，空列返回空映射
func (r *settingsRepository) decodeFields(raw datatypes.JSON) (map[string]any, error) {
	fields := make(map[string]any)
	if len(raw) == 0 {
		return fields, nil
	}
	if err := sonic.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Get 获取已持久化的设置文档，记录不存在时返回空映射
func (r *settingsRepository) Get(ctx context.Context) (map[string]any, error) {
	var m model.StoreSettings
	err := r.dao.DB().WithContext(ctx).
		Where("id = ?", model.SingletonID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return make(map[string]any), nil
		}
		return nil, err
	}
	return r.decodeFields(m.Fields)
}

// Count 返回设置记录数量
func (r *settingsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.DB().WithContext(ctx).
		Model(&model.StoreSettings{}).
		Count(&count).Error
	return count, err
}

// Create 以给定字段集创建单例记录
func (r *settingsRepository) Create(ctx context.Context, fields map[string]any) error {
	raw, err := sonic.Marshal(fields)
	if err != nil {
		return err
	}
	return r.dao.ExecuteWrite(ctx, func(db *gorm.DB) error {
		m := &model.StoreSettings{
			ID:        model.SingletonID,
			Fields:    datatypes.JSON(raw),
			CreatedAt: timex.Now(),
			UpdatedAt: timex.Now(),
		}
		return db.WithContext(ctx).Create(m).Error
	})
}

// Upsert 将补丁按字段合并进单例记录，记录不存在则创建
// 合并在事务内完成，保持单文档原子性
func (r *settingsRepository) Upsert(ctx context.Context, patch map[string]any) error {
	return r.dao.ExecuteWrite(ctx, func(db *gorm.DB) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var m model.StoreSettings
			err := tx.Where("id = ?", model.SingletonID).First(&m).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				raw, merr := sonic.Marshal(patch)
				if merr != nil {
					return merr
				}
				return tx.Create(&model.StoreSettings{
					ID:        model.SingletonID,
					Fields:    datatypes.JSON(raw),
					CreatedAt: timex.Now(),
					UpdatedAt: timex.Now(),
				}).Error
			}

			fields, err := r.decodeFields(m.Fields)
			if err != nil {
				return err
			}
			for k, v := range patch {
				fields[k] = v
			}
			raw, err := sonic.Marshal(fields)
			if err != nil {
				return err
			}
			return tx.Model(&model.StoreSettings{}).
				Where("id = ?", model.SingletonID).
				Updates(map[string]any{
					"fields":     datatypes.JSON(raw),
					"updated_at": timex.Now(),
				}).Error
		})
	})
}
