// Package model 定义数据模型
package model

import (
	"github.com/kiyensi/store-settings-service/pkg/timex"

	"gorm.io/datatypes"
)

const TableNameStoreSettings = "store_settings"

// SingletonID 设置记录的固定主键，逻辑上有且只有一条记录
const SingletonID int64 = 1

// StoreSettings mapped from table <store_settings>
// Fields 仅保存被显式设置过的字段，完整视图由默认值表合并得到
type StoreSettings struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Fields    datatypes.JSON `gorm:"column:fields" json:"fields" form:"fields"`
	CreatedAt timex.Time     `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time     `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName StoreSettings's table name
func (*StoreSettings) TableName() string {
	return TableNameStoreSettings
}
