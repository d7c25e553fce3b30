package model

import "time"

// ── 角色常量 ──

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User 用户表 — 对应 users
// 管理员账号不归属任何部门（DepartmentID 为空）
type User struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	DepartmentID *string    `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	IsActive     bool       `gorm:"not null;default:true"                          json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	BaseModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// DepartmentName 返回所属部门名称（无部门时为空串）
func (u *User) DepartmentName() string {
	if u.Department == nil {
		return ""
	}
	return u.Department.Name
}
