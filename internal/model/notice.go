package model

import "time"

// ── 优先级常量 ──

const (
	PriorityHigh   = "High"
	PriorityNormal = "Normal"
	PriorityLow    = "Low"
)

// ValidPriority 检查优先级取值是否合法
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityNormal || p == PriorityLow
}

// Notice 通知表 — 对应 notices
// 通知与其接收状态行（notice_statuses）同事务创建，
// 不存在零接收人的通知
type Notice struct {
	NoticeID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notice_id"`
	Title          string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string    `gorm:"type:text;not null"                             json:"content"`
	Priority       string    `gorm:"type:varchar(10);not null"                      json:"priority"`
	Deadline       time.Time `gorm:"type:date;not null"                             json:"deadline"`
	CreatedBy      string    `gorm:"type:uuid;not null"                             json:"created_by"`
	IsBroadcast    bool      `gorm:"not null;default:false"                         json:"is_broadcast"`
	AttachmentPath *string   `gorm:"type:varchar(500)"                              json:"attachment_path,omitempty"`
	AttachmentName *string   `gorm:"type:varchar(255)"                              json:"attachment_name,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Creator  *User          `gorm:"foreignKey:CreatedBy;references:UserID"   json:"creator,omitempty"`
	Statuses []NoticeStatus `gorm:"foreignKey:NoticeID;references:NoticeID"  json:"statuses,omitempty"`
}

// TableName 指定表名
func (Notice) TableName() string { return "notices" }
