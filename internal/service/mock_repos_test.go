package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"noticedesk/internal/model"
	"noticedesk/internal/storage"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListActiveMembers(_ context.Context, excludeID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.IsActive && u.Role == model.RoleMember && u.UserID != excludeID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	departments map[string]*model.Department
	// phantomCodes 模拟并发创建抢占的标识码：
	// GetByCode 查不到，但插入时报唯一约束冲突
	phantomCodes map[string]bool
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{
		departments:  make(map[string]*model.Department),
		phantomCodes: make(map[string]bool),
	}
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	if m.phantomCodes[dept.Code] {
		return gorm.ErrDuplicatedKey
	}
	for _, d := range m.departments {
		if d.Code == dept.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if dept.DepartmentID == "" {
		dept.DepartmentID = "dept-" + dept.Code
	}
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.departments[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) GetByCode(_ context.Context, code string) (*model.Department, error) {
	for _, d := range m.departments {
		if d.Code == code {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.departments {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock NoticeRepository / NoticeStatusRepository / ArchiveStatRepository ──
//
// 三者互相引用以模拟外键级联与事务内归档

type mockNoticeRepo struct {
	notices  map[string]*model.Notice
	seq      int
	statuses *mockStatusRepo
	archive  *mockArchiveRepo
	users    *mockUserRepo
	failTx   bool // 置 true 时 CreateWithStatuses/DeleteWithArchive 直接失败
}

func newMockNoticeRepo() *mockNoticeRepo {
	return &mockNoticeRepo{notices: make(map[string]*model.Notice)}
}

func (m *mockNoticeRepo) CreateWithStatuses(_ context.Context, notice *model.Notice, recipientIDs []string) error {
	if m.failTx {
		return fmt.Errorf("模拟事务失败")
	}
	if notice.NoticeID == "" {
		m.seq++
		notice.NoticeID = fmt.Sprintf("notice-%d", m.seq)
	}
	m.notices[notice.NoticeID] = notice
	for _, rid := range recipientIDs {
		m.statuses.add(&model.NoticeStatus{
			NoticeID:    notice.NoticeID,
			RecipientID: rid,
			Status:      model.StatusPending,
			UpdatedAt:   notice.CreatedAt,
		})
	}
	return nil
}

func (m *mockNoticeRepo) GetByID(_ context.Context, id string) (*model.Notice, error) {
	n, ok := m.notices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withCreator(n), nil
}

func (m *mockNoticeRepo) ListByCreator(_ context.Context, creatorID string) ([]model.Notice, error) {
	var result []model.Notice
	for _, n := range m.notices {
		if n.CreatedBy == creatorID {
			result = append(result, *m.withCreator(n))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockNoticeRepo) ListAll(_ context.Context) ([]model.Notice, error) {
	var result []model.Notice
	for _, n := range m.notices {
		result = append(result, *m.withCreator(n))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockNoticeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.notices)), nil
}

func (m *mockNoticeRepo) DeleteWithArchive(_ context.Context, noticeID string, stats []model.NoticeArchiveStat) error {
	if m.failTx {
		return fmt.Errorf("模拟事务失败")
	}
	m.archive.stats = append(m.archive.stats, stats...)
	delete(m.notices, noticeID)
	// 外键级联删除状态行
	for id, row := range m.statuses.rows {
		if row.NoticeID == noticeID {
			delete(m.statuses.rows, id)
		}
	}
	return nil
}

// withCreator 模拟 Preload("Creator")
func (m *mockNoticeRepo) withCreator(n *model.Notice) *model.Notice {
	cp := *n
	if m.users != nil {
		if u, ok := m.users.users[n.CreatedBy]; ok {
			cp.Creator = u
		}
	}
	return &cp
}

type mockStatusRepo struct {
	rows    map[string]*model.NoticeStatus
	seq     int
	notices *mockNoticeRepo
	users   *mockUserRepo
}

func newMockStatusRepo() *mockStatusRepo {
	return &mockStatusRepo{rows: make(map[string]*model.NoticeStatus)}
}

func (m *mockStatusRepo) add(row *model.NoticeStatus) {
	if row.StatusID == "" {
		m.seq++
		row.StatusID = fmt.Sprintf("status-%d", m.seq)
	}
	m.rows[row.StatusID] = row
}

func (m *mockStatusRepo) GetByNoticeAndRecipient(_ context.Context, noticeID, recipientID string) (*model.NoticeStatus, error) {
	for _, row := range m.rows {
		if row.NoticeID == noticeID && row.RecipientID == recipientID {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStatusRepo) ListByRecipient(_ context.Context, recipientID string) ([]model.NoticeStatus, error) {
	var result []model.NoticeStatus
	for _, row := range m.rows {
		if row.RecipientID == recipientID {
			result = append(result, *m.preload(row))
		}
	}
	return result, nil
}

func (m *mockStatusRepo) ListByNotice(_ context.Context, noticeID string) ([]model.NoticeStatus, error) {
	var result []model.NoticeStatus
	for _, row := range m.rows {
		if row.NoticeID == noticeID {
			result = append(result, *m.preload(row))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StatusID < result[j].StatusID })
	return result, nil
}

func (m *mockStatusRepo) ListByNoticeIDs(_ context.Context, noticeIDs []string) ([]model.NoticeStatus, error) {
	idSet := make(map[string]bool, len(noticeIDs))
	for _, id := range noticeIDs {
		idSet[id] = true
	}
	var result []model.NoticeStatus
	for _, row := range m.rows {
		if idSet[row.NoticeID] {
			result = append(result, *m.preload(row))
		}
	}
	return result, nil
}

func (m *mockStatusRepo) Update(_ context.Context, status *model.NoticeStatus) error {
	m.rows[status.StatusID] = status
	return nil
}

func (m *mockStatusRepo) MarkRead(_ context.Context, statusID string) error {
	row, ok := m.rows[statusID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// 只翻转 is_read，updated_at 保持不变
	row.IsRead = true
	return nil
}

func (m *mockStatusRepo) CountPending(_ context.Context) (int64, error) {
	var count int64
	for _, row := range m.rows {
		if row.Status == model.StatusPending {
			count++
		}
	}
	return count, nil
}

func (m *mockStatusRepo) CountOverdueWithPending(_ context.Context, today time.Time) (int64, error) {
	day := today.Format("2006-01-02")
	seen := make(map[string]bool)
	for _, row := range m.rows {
		if row.Status != model.StatusPending {
			continue
		}
		n, ok := m.notices.notices[row.NoticeID]
		if !ok {
			continue
		}
		if n.Deadline.Format("2006-01-02") < day {
			seen[row.NoticeID] = true
		}
	}
	return int64(len(seen)), nil
}

func (m *mockStatusRepo) CountCompletedByMonth(_ context.Context) (map[string]int64, error) {
	// 与真实实现一致：按 UTC 月份分桶
	result := make(map[string]int64)
	for _, row := range m.rows {
		if row.Status == model.StatusCompleted {
			result[row.UpdatedAt.UTC().Format("2006-01")]++
		}
	}
	return result, nil
}

func (m *mockStatusRepo) ListResponded(_ context.Context) ([]model.NoticeStatus, error) {
	var result []model.NoticeStatus
	for _, row := range m.rows {
		if row.Status != model.StatusPending {
			result = append(result, *m.preload(row))
		}
	}
	return result, nil
}

// preload 模拟 Preload("Notice") / Preload("Recipient")
func (m *mockStatusRepo) preload(row *model.NoticeStatus) *model.NoticeStatus {
	cp := *row
	if m.notices != nil {
		if n, ok := m.notices.notices[row.NoticeID]; ok {
			cp.Notice = m.notices.withCreator(n)
		}
	}
	if m.users != nil {
		if u, ok := m.users.users[row.RecipientID]; ok {
			cp.Recipient = u
		}
	}
	return &cp
}

type mockArchiveRepo struct {
	stats []model.NoticeArchiveStat
}

func newMockArchiveRepo() *mockArchiveRepo {
	return &mockArchiveRepo{}
}

func (m *mockArchiveRepo) MonthTotals(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, s := range m.stats {
		result[s.Month] += s.CompletedCount
	}
	return result, nil
}

// ── Mock storage.Store ──

type mockStore struct {
	seq      int
	saved    map[string]string // path -> original name
	deleted  []string
	failSave bool
}

func newMockStore() *mockStore {
	return &mockStore{saved: make(map[string]string)}
}

func (m *mockStore) Save(_ context.Context, _ []byte, originalName, _ string) (*storage.SavedFile, error) {
	if m.failSave {
		return nil, fmt.Errorf("模拟存储失败")
	}
	m.seq++
	path := fmt.Sprintf("file-%d", m.seq)
	m.saved[path] = originalName
	return &storage.SavedFile{Path: path, Name: originalName}, nil
}

func (m *mockStore) Delete(_ context.Context, path string) error {
	m.deleted = append(m.deleted, path)
	delete(m.saved, path)
	return nil
}
