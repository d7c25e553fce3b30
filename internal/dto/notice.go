package dto

// ── 通知模块 DTO ──

// FileUpload 上传文件内容（Handler 从 multipart 读出后传给 Service）
type FileUpload struct {
	Data        []byte
	Name        string
	ContentType string
}

// CreateNoticeRequest 创建通知请求（multipart form，附件单独传递）
type CreateNoticeRequest struct {
	Title        string   `form:"title"         binding:"required,max=200"`
	Content      string   `form:"content"       binding:"required"`
	Priority     string   `form:"priority"      binding:"required"`
	Deadline     string   `form:"deadline"      binding:"required"` // YYYY-MM-DD
	IsBroadcast  bool     `form:"is_broadcast"`
	RecipientIDs []string `form:"recipient_ids" binding:"omitempty,dive,uuid"`
}

// CreateNoticeResponse 创建通知响应
type CreateNoticeResponse struct {
	NoticeID string `json:"notice_id"`
}

// UpdateStatusRequest 更新接收状态请求（multipart form，回执文件单独传递）
type UpdateStatusRequest struct {
	Status string `form:"status" binding:"required"`
	Remark string `form:"remark" binding:"required"`
}

// ── 投影视图 ──

// InboxRow 收件箱行：一条发给当前用户的通知及其接收状态
type InboxRow struct {
	NoticeID       string `json:"notice_id"`
	Title          string `json:"title"`
	Priority       string `json:"priority"`
	Deadline       string `json:"deadline"`
	IssuerName     string `json:"issuer_name"`
	Status         string `json:"status"`
	Remark         string `json:"remark,omitempty"`
	IsRead         bool   `json:"is_read"`
	Overdue        bool   `json:"overdue"`
	DaysLapsed     int    `json:"days_lapsed"`
	AttachmentName string `json:"attachment_name,omitempty"`
}

// RecipientStatusRow 发件箱/管理视图中的单个接收人状态
type RecipientStatusRow struct {
	RecipientID   string `json:"recipient_id"`
	RecipientName string `json:"recipient_name"`
	Department    string `json:"department,omitempty"`
	Status        string `json:"status"`
	Remark        string `json:"remark,omitempty"`
	IsRead        bool   `json:"is_read"`
	UpdatedAt     string `json:"updated_at"`
}

// StatusCounts 接收状态计数
type StatusCounts struct {
	Pending   int `json:"pending"`
	Noted     int `json:"noted"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// OutboxRow 发件箱行：当前用户创建的一条通知及其接收进度
type OutboxRow struct {
	NoticeID    string               `json:"notice_id"`
	Title       string               `json:"title"`
	Priority    string               `json:"priority"`
	Deadline    string               `json:"deadline"`
	IsBroadcast bool                 `json:"is_broadcast"`
	Overdue     bool                 `json:"overdue"`
	DaysLapsed  int                  `json:"days_lapsed"`
	Counts      StatusCounts         `json:"counts"`
	Recipients  []RecipientStatusRow `json:"recipients"`
	CreatedAt   string               `json:"created_at"`
}

// AdminNoticeRow 管理员全量视图行：通知 + 发布人信息 + 接收进度
type AdminNoticeRow struct {
	OutboxRow
	IssuerName       string `json:"issuer_name"`
	IssuerDepartment string `json:"issuer_department,omitempty"`
}

// NoticeDetailResponse 通知详情：通知本体 + 全部接收状态
type NoticeDetailResponse struct {
	NoticeID       string               `json:"notice_id"`
	Title          string               `json:"title"`
	Content        string               `json:"content"`
	Priority       string               `json:"priority"`
	Deadline       string               `json:"deadline"`
	IsBroadcast    bool                 `json:"is_broadcast"`
	IssuerName     string               `json:"issuer_name"`
	AttachmentPath string               `json:"attachment_path,omitempty"`
	AttachmentName string               `json:"attachment_name,omitempty"`
	Overdue        bool                 `json:"overdue"`
	DaysLapsed     int                  `json:"days_lapsed"`
	Statuses       []RecipientStatusRow `json:"statuses"`
	CreatedAt      string               `json:"created_at"`
}

// ── 管理聚合视图 ──

// AdminSummaryResponse 管理面板汇总计数
type AdminSummaryResponse struct {
	TotalNotices   int64 `json:"total_notices"`
	PendingRows    int64 `json:"pending_rows"`
	OverdueNotices int64 `json:"overdue_notices"`
}

// MonthlyStatRow 月度完成统计行（存量 + 归档合并后）
type MonthlyStatRow struct {
	Month     string `json:"month"` // YYYY-MM
	Completed int64  `json:"completed"`
}

// DelayReportRow 延迟回应报表行
type DelayReportRow struct {
	RecipientID      string `json:"recipient_id"`
	RecipientName    string `json:"recipient_name"`
	Department       string `json:"department,omitempty"`
	TotalResponded   int    `json:"total_responded"`
	DelayedCount     int    `json:"delayed_count"`
	TotalDaysDelayed int    `json:"total_days_delayed"`
}
