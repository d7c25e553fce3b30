package repository

import (
	"context"

	"gorm.io/gorm"

	"noticedesk/internal/model"
)

// NoticeRepository 通知数据访问接口
type NoticeRepository interface {
	// CreateWithStatuses 在同一事务中创建通知及其全部 Pending 状态行。
	// recipientIDs 需由调用方去重；零接收人属于调用方错误。
	CreateWithStatuses(ctx context.Context, notice *model.Notice, recipientIDs []string) error
	GetByID(ctx context.Context, id string) (*model.Notice, error)
	ListByCreator(ctx context.Context, creatorID string) ([]model.Notice, error)
	ListAll(ctx context.Context) ([]model.Notice, error)
	Count(ctx context.Context) (int64, error)
	// DeleteWithArchive 在同一事务中写入月度归档行并删除通知
	// （notice_statuses 由外键级联删除）。顺序不可调换：
	// 崩溃时要么归档与删除都生效，要么都不生效。
	DeleteWithArchive(ctx context.Context, noticeID string, stats []model.NoticeArchiveStat) error
}

// noticeRepo NoticeRepository 的 GORM 实现
type noticeRepo struct {
	db *gorm.DB
}

// NewNoticeRepo 创建 NoticeRepository 实例
func NewNoticeRepo(db *gorm.DB) NoticeRepository {
	return &noticeRepo{db: db}
}

func (r *noticeRepo) CreateWithStatuses(ctx context.Context, notice *model.Notice, recipientIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(notice).Error; err != nil {
			return err
		}

		statuses := make([]model.NoticeStatus, 0, len(recipientIDs))
		for _, rid := range recipientIDs {
			statuses = append(statuses, model.NoticeStatus{
				NoticeID:    notice.NoticeID,
				RecipientID: rid,
				Status:      model.StatusPending,
			})
		}
		return tx.Create(&statuses).Error
	})
}

func (r *noticeRepo) GetByID(ctx context.Context, id string) (*model.Notice, error) {
	var notice model.Notice
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Creator.Department").
		Where("notice_id = ?", id).
		First(&notice).Error
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

func (r *noticeRepo) ListByCreator(ctx context.Context, creatorID string) ([]model.Notice, error) {
	var notices []model.Notice
	err := r.db.WithContext(ctx).
		Where("created_by = ?", creatorID).
		Order("created_at DESC").
		Find(&notices).Error
	return notices, err
}

func (r *noticeRepo) ListAll(ctx context.Context) ([]model.Notice, error) {
	var notices []model.Notice
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Creator.Department").
		Order("created_at DESC").
		Find(&notices).Error
	return notices, err
}

func (r *noticeRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notice{}).
		Count(&count).Error
	return count, err
}

func (r *noticeRepo) DeleteWithArchive(ctx context.Context, noticeID string, stats []model.NoticeArchiveStat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(stats) > 0 {
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		}
		return tx.Where("notice_id = ?", noticeID).
			Delete(&model.Notice{}).Error
	})
}
