package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"noticedesk/internal/model"
)

// NoticeStatusRepository 通知接收状态数据访问接口
type NoticeStatusRepository interface {
	GetByNoticeAndRecipient(ctx context.Context, noticeID, recipientID string) (*model.NoticeStatus, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]model.NoticeStatus, error)
	ListByNotice(ctx context.Context, noticeID string) ([]model.NoticeStatus, error)
	ListByNoticeIDs(ctx context.Context, noticeIDs []string) ([]model.NoticeStatus, error)
	Update(ctx context.Context, status *model.NoticeStatus) error
	// MarkRead 只翻转已读标记，不触碰 updated_at
	//（updated_at 驱动月度统计分桶，读取不得污染它）
	MarkRead(ctx context.Context, statusID string) error
	CountPending(ctx context.Context) (int64, error)
	// CountOverdueWithPending 统计"已过期且仍有 Pending 接收人"的通知数（去重）
	CountOverdueWithPending(ctx context.Context, today time.Time) (int64, error)
	// CountCompletedByMonth 存量 Completed 行按 updated_at 的 UTC 月份分桶计数
	//（归档分桶同样按 UTC，避免会话时区把月初行错移一个月）
	CountCompletedByMonth(ctx context.Context) (map[string]int64, error)
	// ListResponded 全部已回应（非 Pending）的状态行，带通知与接收人
	ListResponded(ctx context.Context) ([]model.NoticeStatus, error)
}

// noticeStatusRepo NoticeStatusRepository 的 GORM 实现
type noticeStatusRepo struct {
	db *gorm.DB
}

// NewNoticeStatusRepo 创建 NoticeStatusRepository 实例
func NewNoticeStatusRepo(db *gorm.DB) NoticeStatusRepository {
	return &noticeStatusRepo{db: db}
}

func (r *noticeStatusRepo) GetByNoticeAndRecipient(ctx context.Context, noticeID, recipientID string) (*model.NoticeStatus, error) {
	var status model.NoticeStatus
	err := r.db.WithContext(ctx).
		Where("notice_id = ? AND recipient_id = ?", noticeID, recipientID).
		First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *noticeStatusRepo) ListByRecipient(ctx context.Context, recipientID string) ([]model.NoticeStatus, error) {
	var statuses []model.NoticeStatus
	err := r.db.WithContext(ctx).
		Preload("Notice").
		Preload("Notice.Creator").
		Where("recipient_id = ?", recipientID).
		Find(&statuses).Error
	return statuses, err
}

func (r *noticeStatusRepo) ListByNotice(ctx context.Context, noticeID string) ([]model.NoticeStatus, error) {
	var statuses []model.NoticeStatus
	err := r.db.WithContext(ctx).
		Preload("Recipient").
		Preload("Recipient.Department").
		Where("notice_id = ?", noticeID).
		Find(&statuses).Error
	return statuses, err
}

func (r *noticeStatusRepo) ListByNoticeIDs(ctx context.Context, noticeIDs []string) ([]model.NoticeStatus, error) {
	var statuses []model.NoticeStatus
	err := r.db.WithContext(ctx).
		Preload("Recipient").
		Preload("Recipient.Department").
		Where("notice_id IN ?", noticeIDs).
		Find(&statuses).Error
	return statuses, err
}

func (r *noticeStatusRepo) Update(ctx context.Context, status *model.NoticeStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *noticeStatusRepo) MarkRead(ctx context.Context, statusID string) error {
	return r.db.WithContext(ctx).
		Model(&model.NoticeStatus{}).
		Where("status_id = ?", statusID).
		UpdateColumn("is_read", true).Error
}

func (r *noticeStatusRepo) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NoticeStatus{}).
		Where("status = ?", model.StatusPending).
		Count(&count).Error
	return count, err
}

func (r *noticeStatusRepo) CountOverdueWithPending(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NoticeStatus{}).
		Distinct("notice_statuses.notice_id").
		Joins("JOIN notices ON notices.notice_id = notice_statuses.notice_id").
		Where("notice_statuses.status = ? AND notices.deadline < ?", model.StatusPending, today.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

func (r *noticeStatusRepo) CountCompletedByMonth(ctx context.Context) (map[string]int64, error) {
	type monthCount struct {
		Month string
		Count int64
	}

	var rows []monthCount
	err := r.db.WithContext(ctx).
		Model(&model.NoticeStatus{}).
		Select("to_char(updated_at AT TIME ZONE 'UTC', 'YYYY-MM') AS month, COUNT(*) AS count").
		Where("status = ?", model.StatusCompleted).
		Group("to_char(updated_at AT TIME ZONE 'UTC', 'YYYY-MM')").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Month] = row.Count
	}
	return result, nil
}

func (r *noticeStatusRepo) ListResponded(ctx context.Context) ([]model.NoticeStatus, error) {
	var statuses []model.NoticeStatus
	err := r.db.WithContext(ctx).
		Preload("Notice").
		Preload("Recipient").
		Preload("Recipient.Department").
		Where("status <> ?", model.StatusPending).
		Find(&statuses).Error
	return statuses, err
}
