package model

import "time"

// ── 状态常量（状态机：Pending → Noted → Completed，单向）──

const (
	StatusPending   = "Pending"
	StatusNoted     = "Noted"
	StatusCompleted = "Completed"
)

// StatusRank 状态排序权重：Pending=0, Noted=1, Completed=2
func StatusRank(s string) int {
	switch s {
	case StatusPending:
		return 0
	case StatusNoted:
		return 1
	case StatusCompleted:
		return 2
	default:
		return 3
	}
}

// NoticeStatus 通知接收状态表 — 对应 notice_statuses
// (notice_id, recipient_id) 唯一；是"谁尚未回应"的唯一事实来源。
// notice_id 外键带 ON DELETE CASCADE，关闭通知时级联删除。
type NoticeStatus struct {
	StatusID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"              json:"status_id"`
	NoticeID    string    `gorm:"type:uuid;not null;uniqueIndex:uniq_notice_recipient"        json:"notice_id"`
	RecipientID string    `gorm:"type:uuid;not null;uniqueIndex:uniq_notice_recipient"        json:"recipient_id"`
	Status      string    `gorm:"type:varchar(10);not null;default:'Pending'"                 json:"status"`
	Remark      string    `gorm:"type:text"                                                   json:"remark"`
	ReplyPath   *string   `gorm:"type:varchar(500)"                                           json:"reply_path,omitempty"`
	ReplyName   *string   `gorm:"type:varchar(255)"                                           json:"reply_name,omitempty"`
	IsRead      bool      `gorm:"not null;default:false"                                      json:"is_read"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                          json:"updated_at"`

	// 关联
	Notice    *Notice `gorm:"foreignKey:NoticeID;references:NoticeID;constraint:OnDelete:CASCADE" json:"notice,omitempty"`
	Recipient *User   `gorm:"foreignKey:RecipientID;references:UserID"                            json:"recipient,omitempty"`
}

// TableName 指定表名
func (NoticeStatus) TableName() string { return "notice_statuses" }
