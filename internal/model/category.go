package model

import (
	"time"
)

// Category 工具分类模型
type Category struct {
	CategoryID uint64    `gorm:"primaryKey;column:category_id;autoIncrement" json:"category_id"`
	Slug       string    `gorm:"column:slug;type:varchar(100);uniqueIndex;not null" json:"slug"`
	NameZh     string    `gorm:"column:name_zh;type:varchar(100);not null" json:"name_zh"`
	NameEn     string    `gorm:"column:name_en;type:varchar(100)" json:"name_en"`
	Icon       string    `gorm:"column:icon;type:varchar(50)" json:"icon"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "ap_category"
}

// Name 按语言取分类名，英文缺失时回退中文
func (c *Category) Name(locale string) string {
	if locale == LocaleEn && c.NameEn != "" {
		return c.NameEn
	}
	return c.NameZh
}
