package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "StoreSettings":
		return db.AutoMigrate(StoreSettings{})
	}
	return nil
}
