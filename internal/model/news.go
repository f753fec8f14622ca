package model

import (
	"time"
)

// News 资讯模型。与工具是非占有的多对多关联，双方都可独立存在。
type News struct {
	NewsID       uint64    `gorm:"primaryKey;column:news_id;autoIncrement" json:"news_id"`
	Title        string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Content      string    `gorm:"column:content;type:text" json:"content"`
	SourceURL    string    `gorm:"column:source_url;type:varchar(500)" json:"source_url"`
	Status       string    `gorm:"column:status;type:varchar(20);default:PUBLISHED;index" json:"status"`
	RelatedTools []*Tool   `gorm:"many2many:ap_news_tool;joinForeignKey:NewsID;joinReferences:ToolID" json:"related_tools,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName 指定表名
func (News) TableName() string {
	return "ap_news"
}
