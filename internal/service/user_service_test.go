package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"noticedesk/internal/dto"
	"noticedesk/internal/model"
	"noticedesk/internal/repository"
)

// ── 测试辅助 ──

func setupTestUserService() (UserService, *mockUserRepo, *mockDeptRepo) {
	userRepo := newMockUserRepo()
	deptRepo := newMockDeptRepo()

	userRepo.users["user-1"] = &model.User{
		UserID:   "user-1",
		Username: "existing",
		Role:     model.RoleMember,
		IsActive: true,
	}
	deptRepo.departments["dept-1"] = &model.Department{
		DepartmentID: "dept-1",
		Code:         "tech",
		Name:         "技术部",
	}

	repo := &repository.Repository{
		User:         userRepo,
		Department:   deptRepo,
		Notice:       newMockNoticeRepo(),
		NoticeStatus: newMockStatusRepo(),
		ArchiveStat:  newMockArchiveRepo(),
	}
	svc := NewUserService(repo, zap.NewNop())
	return svc, userRepo, deptRepo
}

// ── Create 测试 ──

func TestUserService_Create_MemberWithDepartment(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()

	result, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username:     "lisi",
		Password:     "password123",
		Role:         model.RoleMember,
		DepartmentID: "dept-1",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Username != "lisi" || result.Role != model.RoleMember {
		t.Errorf("返回信息错误: %+v", result)
	}
	if !result.IsActive {
		t.Error("新用户应默认启用")
	}

	created, _ := userRepo.GetByUsername(context.Background(), "lisi")
	if created.DepartmentID == nil || *created.DepartmentID != "dept-1" {
		t.Error("成员应归属指定部门")
	}
	// 密码不得明文保存
	if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")) != nil {
		t.Error("密码哈希应能通过校验")
	}
}

func TestUserService_Create_AdminWithDepartmentRejected(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username:     "newadmin",
		Password:     "password123",
		Role:         model.RoleAdmin,
		DepartmentID: "dept-1",
	})
	if !errors.Is(err, ErrAdminHasDepartment) {
		t.Errorf("期望 ErrAdminHasDepartment，实际: %v", err)
	}
}

func TestUserService_Create_UsernameTaken(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username: "existing",
		Password: "password123",
		Role:     model.RoleMember,
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
}

func TestUserService_Create_UnknownDepartment(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username:     "wangwu",
		Password:     "password123",
		Role:         model.RoleMember,
		DepartmentID: "nonexistent",
	})
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际: %v", err)
	}
}

// ── SetActive 测试 ──

func TestUserService_SetActive_Toggle(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()

	if err := svc.SetActive(context.Background(), "user-1", false); err != nil {
		t.Fatalf("停用应成功: %v", err)
	}
	if userRepo.users["user-1"].IsActive {
		t.Error("用户应已停用")
	}

	// 幂等：重复停用无副作用
	if err := svc.SetActive(context.Background(), "user-1", false); err != nil {
		t.Fatalf("重复停用应成功: %v", err)
	}

	if err := svc.SetActive(context.Background(), "user-1", true); err != nil {
		t.Fatalf("重新启用应成功: %v", err)
	}
	if !userRepo.users["user-1"].IsActive {
		t.Error("用户应已启用")
	}
}

func TestUserService_SetActive_NotFound(t *testing.T) {
	svc, _, _ := setupTestUserService()

	if err := svc.SetActive(context.Background(), "nonexistent", false); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── ResetPassword 测试 ──

func TestUserService_ResetPassword(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()

	if err := svc.ResetPassword(context.Background(), "user-1", "brand-new-pass"); err != nil {
		t.Fatalf("ResetPassword 应成功: %v", err)
	}
	hash := userRepo.users["user-1"].PasswordHash
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("brand-new-pass")) != nil {
		t.Error("重置后的密码应能通过校验")
	}
}

// ── List 测试 ──

func TestUserService_List_Pagination(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()
	userRepo.users["user-2"] = &model.User{UserID: "user-2", Username: "b", Role: model.RoleMember, IsActive: true}
	userRepo.users["user-3"] = &model.User{UserID: "user-3", Username: "c", Role: model.RoleMember, IsActive: true}

	req := &dto.UserListRequest{}
	req.Page = 1
	req.PageSize = 2

	users, total, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 3 {
		t.Errorf("期望总数 3，实际=%d", total)
	}
	if len(users) != 2 {
		t.Errorf("期望本页 2 条，实际=%d", len(users))
	}
}
