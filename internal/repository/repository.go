package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Department   DepartmentRepository
	Notice       NoticeRepository
	NoticeStatus NoticeStatusRepository
	ArchiveStat  ArchiveStatRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Department:   NewDepartmentRepo(db),
		Notice:       NewNoticeRepo(db),
		NoticeStatus: NewNoticeStatusRepo(db),
		ArchiveStat:  NewArchiveStatRepo(db),
	}
}
