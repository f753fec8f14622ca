package model

import (
	"time"
)

// Admin 管理员模型。启动时由seed步骤显式创建初始账号，
// 不在登录接口里隐式建号。
type Admin struct {
	AdminID      uint64    `gorm:"primaryKey;column:admin_id;autoIncrement" json:"admin_id"`
	Username     string    `gorm:"column:username;type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName 指定表名
func (Admin) TableName() string {
	return "ap_admin"
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
