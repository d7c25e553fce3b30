package model

// Department 部门表 — 对应 departments
// Code 由名称派生（slug），全局唯一；冲突时由 Service 层追加数字后缀重试
type Department struct {
	DepartmentID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Code         string  `gorm:"type:varchar(60);not null;uniqueIndex"          json:"code"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Website      *string `gorm:"type:varchar(255)"                              json:"website,omitempty"`
	Description  *string `gorm:"type:text"                                      json:"description,omitempty"`
	Category     *string `gorm:"type:varchar(50)"                               json:"category,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
