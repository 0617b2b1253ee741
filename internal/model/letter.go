package model

import "time"

const TableNameLetter = "letter"

// Letter mapped from table <letter>
type Letter struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	Title     string    `gorm:"column:title;not null;default:'';index:idx_letter_title" json:"title" form:"title"`
	Content   string    `gorm:"column:content;type:text" json:"content" form:"content"`
	Signature string    `gorm:"column:signature;not null;default:''" json:"signature" form:"signature"`
	Date      time.Time `gorm:"column:date;not null;index:idx_letter_date" json:"date" form:"date"`
}

// TableName Letter's table name
func (*Letter) TableName() string {
	return TableNameLetter
}
