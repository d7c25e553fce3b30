package service

import (
	"go.uber.org/zap"

	"noticedesk/config"
	"noticedesk/internal/repository"
	"noticedesk/internal/storage"
	"noticedesk/pkg/jwt"
	"noticedesk/pkg/redis"
)

// Service 业务层聚合
type Service struct {
	Auth       AuthService
	User       UserService
	Department DepartmentService
	Notice     NoticeService
	Export     ExportService
}

// NewService 创建业务层聚合实例
// rdb 可为 nil（Redis 不可用时登出黑名单降级为无操作）
func NewService(cfg *config.Config, repo *repository.Repository, store storage.Store, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	notices := NewNoticeService(repo, store, logger)

	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, rdb, cfg.Auth.AccessTokenTTL, logger),
		User:       NewUserService(repo, logger),
		Department: NewDepartmentService(repo, logger),
		Notice:     notices,
		Export:     NewExportService(notices, logger),
	}
}
