package model

import "time"

const TableNamePhoto = "photo"

// Photo mapped from table <photo>
type Photo struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	Title       string    `gorm:"column:title;not null;default:''" json:"title" form:"title"`
	Description string    `gorm:"column:description;type:text" json:"description" form:"description"`
	Date        time.Time `gorm:"column:date;not null;index:idx_photo_date" json:"date" form:"date"`
	ImageURL    string    `gorm:"column:image_url;not null;default:''" json:"imageUrl" form:"imageUrl"`
	AssetID     string    `gorm:"column:asset_id;not null;default:''" json:"assetId" form:"assetId"`
}

// TableName Photo's table name
func (*Photo) TableName() string {
	return TableNamePhoto
}
