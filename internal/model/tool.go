package model

import (
	"time"
)

// 工具状态机:
// PENDING   采集注入后的初始状态，等待人工审核
// PUBLISHED 审核通过，对外可见
// OFFLINE   链接失效(巡检或人工标记)
// REJECTED  人工拒绝，终态，自动化不再写入
const (
	StatusPending   = "PENDING"
	StatusPublished = "PUBLISHED"
	StatusOffline   = "OFFLINE"
	StatusRejected  = "REJECTED"
)

// ValidStatus 是否为合法状态值
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPublished, StatusOffline, StatusRejected:
		return true
	}
	return false
}

// CanTransition 校验状态迁移是否允许。重复应用当前状态视为幂等，允许。
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	switch to {
	case StatusOffline, StatusRejected:
		// 任意状态可下线或拒绝
		return true
	case StatusPublished:
		return from == StatusPending
	case StatusPending:
		// 撤回重审
		return from == StatusPublished
	}
	return false
}

// Tool 工具模型。URL是采集upsert的自然主键；UpdatedAt同时充当
// "最近一次确认可达"的时间戳，供链接巡检轮转使用。
type Tool struct {
	ToolID        uint64    `gorm:"primaryKey;column:tool_id;autoIncrement" json:"tool_id"`
	URL           string    `gorm:"column:url;type:varchar(500);uniqueIndex;not null" json:"url"`
	TitleZh       string    `gorm:"column:title_zh;type:varchar(255);not null" json:"title_zh"`
	TitleEn       string    `gorm:"column:title_en;type:varchar(255)" json:"title_en"`
	SummaryZh     string    `gorm:"column:summary_zh;type:varchar(1000)" json:"summary_zh"`
	SummaryEn     string    `gorm:"column:summary_en;type:varchar(1000)" json:"summary_en"`
	ContentZh     string    `gorm:"column:content_zh;type:text" json:"content_zh"`
	ContentEn     string    `gorm:"column:content_en;type:text" json:"content_en"`
	Logo          string    `gorm:"column:logo;type:varchar(500)" json:"logo"`
	ScreenshotURL string    `gorm:"column:screenshot_url;type:varchar(500)" json:"screenshot_url"`
	VideoURL      string    `gorm:"column:video_url;type:varchar(500)" json:"video_url"`
	Rate          float64   `gorm:"column:rate;type:decimal(3,1);default:5.0" json:"rate"`
	Region        string    `gorm:"column:region;type:varchar(50);default:Global" json:"region"`
	IsHot         bool      `gorm:"column:is_hot;default:false" json:"is_hot"`
	Status        string    `gorm:"column:status;type:varchar(20);default:PENDING;index" json:"status"`
	IsDeleted     bool      `gorm:"column:is_deleted;default:false" json:"is_deleted"`
	CoreValue     string    `gorm:"column:core_value;type:text" json:"core_value"`
	UseCases      string    `gorm:"column:use_cases;type:text" json:"use_cases"`
	ProsCons      string    `gorm:"column:pros_cons;type:text" json:"pros_cons"`
	CategoryID    uint64    `gorm:"column:category_id;not null;index" json:"category_id"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName 指定表名
func (Tool) TableName() string {
	return "ap_tool"
}

// Title 按语言取标题，英文缺失时回退中文
func (t *Tool) Title(locale string) string {
	if locale == LocaleEn && t.TitleEn != "" {
		return t.TitleEn
	}
	return t.TitleZh
}

// Summary 按语言取摘要
func (t *Tool) Summary(locale string) string {
	if locale == LocaleEn && t.SummaryEn != "" {
		return t.SummaryEn
	}
	return t.SummaryZh
}

// Content 按语言取正文
func (t *Tool) Content(locale string) string {
	if locale == LocaleEn && t.ContentEn != "" {
		return t.ContentEn
	}
	return t.ContentZh
}
