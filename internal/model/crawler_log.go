package model

import (
	"time"
)

// 巡检/采集任务结果
const (
	CrawlerLogSuccess = "SUCCESS"
	CrawlerLogFailed  = "FAILED"
)

// CrawlerLog 自动化任务审计日志，只追加不修改
type CrawlerLog struct {
	LogID     uint64    `gorm:"primaryKey;column:log_id;autoIncrement" json:"log_id"`
	Status    string    `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Message   string    `gorm:"column:message;type:varchar(1000)" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName 指定表名
func (CrawlerLog) TableName() string {
	return "ap_crawler_log"
}
