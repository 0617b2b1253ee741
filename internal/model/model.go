// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名称执行自动迁移
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Photo":
		return db.AutoMigrate(Photo{})
	case "Letter":
		return db.AutoMigrate(Letter{})
	}
	return nil
}

// AutoMigrateAll 迁移全部模型
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"Photo", "Letter"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
