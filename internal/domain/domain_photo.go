// Package domain 定义领域模型和接口
package domain

import "time"

// Photo 照片领域模型，创建后不可修改
type Photo struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	ImageURL    string
	// AssetID 托管存储中的对象键，本地存储时为空
	AssetID string
}

// Asset 存储后端写入结果
type Asset struct {
	URL string
	ID  string
}
