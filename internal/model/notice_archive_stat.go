package model

import "time"

// NoticeArchiveStat 月度完成量归档表 — 对应 notice_archive_stats
// 通知关闭时按月写入一次，之后不再更新；独立于任何 Notice 存在，
// 保证通知删除后月度完成统计依然正确。
type NoticeArchiveStat struct {
	StatID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"stat_id"`
	Month          string    `gorm:"type:varchar(7);not null;index"                 json:"month"` // YYYY-MM
	CompletedCount int64     `gorm:"not null"                                       json:"completed_count"`
	ArchivedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"archived_at"`
}

// TableName 指定表名
func (NoticeArchiveStat) TableName() string { return "notice_archive_stats" }
