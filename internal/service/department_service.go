package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"noticedesk/internal/dto"
	"noticedesk/internal/model"
	"noticedesk/internal/repository"
)

// ── 部门模块业务错误 ──

var (
	ErrDepartmentNotFound      = errors.New("部门不存在")
	ErrDepartmentCodeExhausted = errors.New("部门标识码生成失败，请更换名称")
)

// codeMaxAttempts 标识码冲突时的后缀重试上限
const codeMaxAttempts = 10

// DepartmentService 部门管理业务接口
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentDetailResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentDetailResponse, error)
	List(ctx context.Context) ([]dto.DepartmentDetailResponse, error)
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// Create 创建部门，标识码由名称派生。
// 冲突时追加数字后缀重试，超过上限返回 ErrDepartmentCodeExhausted。
func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentDetailResponse, error) {
	base := slugify(req.Name)

	for i := 0; i < codeMaxAttempts; i++ {
		code := base
		if i > 0 {
			code = fmt.Sprintf("%s_%d", base, i)
		}

		_, err := s.repo.Department.GetByCode(ctx, code)
		if err == nil {
			continue // 已被占用，尝试下一个后缀
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询部门标识码失败", zap.String("code", code), zap.Error(err))
			return nil, err
		}

		dept := &model.Department{
			Code: code,
			Name: req.Name,
		}
		if req.Website != "" {
			dept.Website = &req.Website
		}
		if req.Description != "" {
			dept.Description = &req.Description
		}
		if req.Category != "" {
			dept.Category = &req.Category
		}

		if err := s.repo.Department.Create(ctx, dept); err != nil {
			// 查询与插入之间被并发创建抢占：视同占用，换下一个后缀
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			s.logger.Error("创建部门失败", zap.String("name", req.Name), zap.Error(err))
			return nil, err
		}

		s.logger.Info("部门已创建",
			zap.String("department_id", dept.DepartmentID),
			zap.String("code", dept.Code),
		)

		resp := toDepartmentDetail(dept)
		return &resp, nil
	}

	return nil, ErrDepartmentCodeExhausted
}

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentDetailResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("department_id", id), zap.Error(err))
		return nil, err
	}
	resp := toDepartmentDetail(dept)
	return &resp, nil
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentDetailResponse, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("查询部门列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DepartmentDetailResponse, 0, len(depts))
	for i := range depts {
		result = append(result, toDepartmentDetail(&depts[i]))
	}
	return result, nil
}

func toDepartmentDetail(dept *model.Department) dto.DepartmentDetailResponse {
	resp := dto.DepartmentDetailResponse{
		ID:   dept.DepartmentID,
		Code: dept.Code,
		Name: dept.Name,
	}
	if dept.Website != nil {
		resp.Website = *dept.Website
	}
	if dept.Description != nil {
		resp.Description = *dept.Description
	}
	if dept.Category != nil {
		resp.Category = *dept.Category
	}
	if !dept.CreatedAt.IsZero() {
		resp.CreatedAt = dept.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// slugify 名称转小写下划线标识码：保留字母数字，
// 空白与连字符折叠为单个下划线，其余字符丢弃。
func slugify(name string) string {
	var b strings.Builder
	lastUnderscore := true // 抑制前导下划线
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r == ' ' || r == '-' || r == '_':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	code := strings.TrimSuffix(b.String(), "_")
	if code == "" {
		code = "dept"
	}
	return code
}
