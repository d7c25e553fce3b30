package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求（管理员操作）
// 管理员账号不允许携带部门
type CreateUserRequest struct {
	Username     string `json:"username"      binding:"required,min=3,max=50"`
	Password     string `json:"password"      binding:"required,min=8,max=64"`
	Role         string `json:"role"          binding:"required,oneof=admin member"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
}

// SetUserActiveRequest 启用/停用用户请求
type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ResetPasswordRequest 重置密码请求（管理员操作）
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}
