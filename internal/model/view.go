package model

import (
	"time"
)

// LocalizedTool 按请求语言投影后的工具视图，分类名已按同一语言展开
type LocalizedTool struct {
	ToolID        uint64    `json:"tool_id"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Content       string    `json:"content,omitempty"`
	Logo          string    `json:"logo,omitempty"`
	ScreenshotURL string    `json:"screenshot_url,omitempty"`
	VideoURL      string    `json:"video_url,omitempty"`
	Rate          float64   `json:"rate"`
	Region        string    `json:"region"`
	IsHot         bool      `json:"is_hot"`
	CoreValue     string    `json:"core_value,omitempty"`
	UseCases      string    `json:"use_cases,omitempty"`
	ProsCons      string    `json:"pros_cons,omitempty"`
	CategoryID    uint64    `json:"category_id"`
	CategorySlug  string    `json:"category_slug"`
	CategoryName  string    `json:"category_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToolBrief 资讯关联工具的简要视图
type ToolBrief struct {
	ToolID uint64 `json:"tool_id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// LocalizedNews 按请求语言投影后的资讯视图
type LocalizedNews struct {
	NewsID       uint64      `json:"news_id"`
	Title        string      `json:"title"`
	Content      string      `json:"content,omitempty"`
	SourceURL    string      `json:"source_url,omitempty"`
	RelatedTools []ToolBrief `json:"related_tools,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// LocalizedCategory 分类的本地化视图
type LocalizedCategory struct {
	CategoryID uint64 `json:"category_id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Icon       string `json:"icon,omitempty"`
}
