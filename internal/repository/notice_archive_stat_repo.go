package repository

import (
	"context"

	"gorm.io/gorm"

	"noticedesk/internal/model"
)

// ArchiveStatRepository 月度归档统计数据访问接口
// 归档行的写入发生在 NoticeRepository.DeleteWithArchive 的事务内，
// 这里只提供读取
type ArchiveStatRepository interface {
	// MonthTotals 按月份汇总归档完成量
	MonthTotals(ctx context.Context) (map[string]int64, error)
}

// archiveStatRepo ArchiveStatRepository 的 GORM 实现
type archiveStatRepo struct {
	db *gorm.DB
}

// NewArchiveStatRepo 创建 ArchiveStatRepository 实例
func NewArchiveStatRepo(db *gorm.DB) ArchiveStatRepository {
	return &archiveStatRepo{db: db}
}

func (r *archiveStatRepo) MonthTotals(ctx context.Context) (map[string]int64, error) {
	type monthTotal struct {
		Month string
		Total int64
	}

	var rows []monthTotal
	err := r.db.WithContext(ctx).
		Model(&model.NoticeArchiveStat{}).
		Select("month, SUM(completed_count) AS total").
		Group("month").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Month] = row.Total
	}
	return result, nil
}
