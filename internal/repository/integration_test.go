//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"noticedesk/internal/model"
	"noticedesk/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=noticedesk password=noticedesk_password dbname=noticedesk_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Department{},
		&model.User{},
		&model.Notice{},
		&model.NoticeStatus{},
		&model.NoticeArchiveStat{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建发布人与两个接收人，返回清理函数
func setupTestData(t *testing.T) (issuer, r1, r2 *model.User, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	mkUser := func(name string) *model.User {
		u := &model.User{
			Username:     fmt.Sprintf("%s-%d", name, suffix),
			PasswordHash: "$2a$10$placeholder",
			Role:         model.RoleMember,
			IsActive:     true,
		}
		if err := testDB.WithContext(ctx).Create(u).Error; err != nil {
			t.Fatalf("创建用户失败: %v", err)
		}
		return u
	}

	issuer = mkUser("issuer")
	r1 = mkUser("recipient1")
	r2 = mkUser("recipient2")

	cleanup = func() {
		testDB.Where("1 = 1").Delete(&model.NoticeStatus{})
		testDB.Where("1 = 1").Delete(&model.Notice{})
		testDB.Where("1 = 1").Delete(&model.NoticeArchiveStat{})
		testDB.Where("user_id IN ?", []string{issuer.UserID, r1.UserID, r2.UserID}).Delete(&model.User{})
	}
	return issuer, r1, r2, cleanup
}

func mkNotice(t *testing.T, repo *repository.Repository, issuerID string, recipientIDs ...string) *model.Notice {
	t.Helper()
	notice := &model.Notice{
		Title:     "集成测试通知",
		Content:   "内容",
		Priority:  model.PriorityNormal,
		Deadline:  time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		CreatedBy: issuerID,
	}
	if err := repo.Notice.CreateWithStatuses(context.Background(), notice, recipientIDs); err != nil {
		t.Fatalf("CreateWithStatuses 失败: %v", err)
	}
	return notice
}

// ═══════════════════════════════════════════════════════════
// NoticeRepository
// ═══════════════════════════════════════════════════════════

func TestNoticeRepo_CreateWithStatuses(t *testing.T) {
	issuer, r1, r2, cleanup := setupTestData(t)
	defer cleanup()
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	notice := mkNotice(t, repo, issuer.UserID, r1.UserID, r2.UserID)

	rows, err := repo.NoticeStatus.ListByNotice(ctx, notice.NoticeID)
	if err != nil {
		t.Fatalf("ListByNotice 失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望 2 条状态行，实际=%d", len(rows))
	}
	for _, row := range rows {
		if row.Status != model.StatusPending {
			t.Errorf("新建状态行应为 Pending，实际=%s", row.Status)
		}
	}
}

func TestNoticeStatusRepo_UniqueNoticeRecipient(t *testing.T) {
	issuer, r1, _, cleanup := setupTestData(t)
	defer cleanup()
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	notice := mkNotice(t, repo, issuer.UserID, r1.UserID)

	// 同一 (notice, recipient) 第二行应违反唯一约束
	dup := &model.NoticeStatus{
		NoticeID:    notice.NoticeID,
		RecipientID: r1.UserID,
		Status:      model.StatusPending,
	}
	if err := testDB.WithContext(ctx).Create(dup).Error; err == nil {
		t.Error("重复的 (notice_id, recipient_id) 应被唯一约束拒绝")
	}
}

func TestNoticeStatusRepo_MarkReadKeepsUpdatedAt(t *testing.T) {
	issuer, r1, _, cleanup := setupTestData(t)
	defer cleanup()
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	notice := mkNotice(t, repo, issuer.UserID, r1.UserID)

	before, err := repo.NoticeStatus.GetByNoticeAndRecipient(ctx, notice.NoticeID, r1.UserID)
	if err != nil {
		t.Fatalf("GetByNoticeAndRecipient 失败: %v", err)
	}

	if err := repo.NoticeStatus.MarkRead(ctx, before.StatusID); err != nil {
		t.Fatalf("MarkRead 失败: %v", err)
	}

	after, _ := repo.NoticeStatus.GetByNoticeAndRecipient(ctx, notice.NoticeID, r1.UserID)
	if !after.IsRead {
		t.Error("MarkRead 应翻转 is_read")
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Errorf("MarkRead 不应改变 updated_at: before=%v after=%v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestNoticeRepo_DeleteWithArchiveCascades(t *testing.T) {
	issuer, r1, r2, cleanup := setupTestData(t)
	defer cleanup()
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	notice := mkNotice(t, repo, issuer.UserID, r1.UserID, r2.UserID)

	stats := []model.NoticeArchiveStat{
		{Month: "2025-06", CompletedCount: 2, ArchivedAt: time.Now()},
	}
	if err := repo.Notice.DeleteWithArchive(ctx, notice.NoticeID, stats); err != nil {
		t.Fatalf("DeleteWithArchive 失败: %v", err)
	}

	if _, err := repo.Notice.GetByID(ctx, notice.NoticeID); err != gorm.ErrRecordNotFound {
		t.Errorf("通知应已删除，实际: %v", err)
	}
	rows, _ := repo.NoticeStatus.ListByNotice(ctx, notice.NoticeID)
	if len(rows) != 0 {
		t.Errorf("状态行应被级联删除，实际残留=%d", len(rows))
	}

	totals, err := repo.ArchiveStat.MonthTotals(ctx)
	if err != nil {
		t.Fatalf("MonthTotals 失败: %v", err)
	}
	if totals["2025-06"] != 2 {
		t.Errorf("期望 2025-06 归档 2 条，实际=%d", totals["2025-06"])
	}
}

func TestNoticeStatusRepo_CountCompletedByMonth(t *testing.T) {
	issuer, r1, r2, cleanup := setupTestData(t)
	defer cleanup()
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	notice := mkNotice(t, repo, issuer.UserID, r1.UserID, r2.UserID)

	row, _ := repo.NoticeStatus.GetByNoticeAndRecipient(ctx, notice.NoticeID, r1.UserID)
	row.Status = model.StatusCompleted
	row.UpdatedAt = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	if err := repo.NoticeStatus.Update(ctx, row); err != nil {
		t.Fatalf("Update 失败: %v", err)
	}

	counts, err := repo.NoticeStatus.CountCompletedByMonth(ctx)
	if err != nil {
		t.Fatalf("CountCompletedByMonth 失败: %v", err)
	}
	if counts["2025-06"] != 1 {
		t.Errorf("期望 2025-06 完成 1 条，实际=%d", counts["2025-06"])
	}
}
