package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"noticedesk/internal/dto"
	"noticedesk/internal/model"
	"noticedesk/internal/repository"
	"noticedesk/internal/storage"
)

// ── 通知模块业务错误 ──

var (
	ErrNoticeNotFound   = errors.New("通知不存在")
	ErrInvalidPriority  = errors.New("优先级取值非法")
	ErrInvalidDeadline  = errors.New("截止日期格式非法")
	ErrNoRecipients     = errors.New("接收人列表为空")
	ErrBadRecipient     = errors.New("部分接收人不存在或不可用")
	ErrAdminCannotIssue = errors.New("管理员不能发布通知")
	ErrAdminHasNoInbox  = errors.New("管理员没有收件箱")
	ErrNotRecipient     = errors.New("当前用户不是该通知的接收人")
	ErrInvalidStatus    = errors.New("状态取值非法")
	ErrRemarkRequired   = errors.New("备注不能为空")
	ErrStatusTerminal   = errors.New("该接收状态已完成，不可再变更")
	ErrNotIssuer        = errors.New("只有发布人或管理员可以关闭通知")
	ErrNoticeIncomplete = errors.New("仍有接收人未完成，无法关闭")
	ErrNotNoticeParty   = errors.New("无权查看该通知")
)

// broadcastRecipients 广播通知在接收人列表中的占位名
const broadcastRecipients = "全体成员"

const dateLayout = "2006-01-02"
const monthLayout = "2006-01"

// NoticeService 通知业务接口：分发、状态流转、投影视图与关闭归档
type NoticeService interface {
	Create(ctx context.Context, req *dto.CreateNoticeRequest, attachment *dto.FileUpload, issuerID, issuerRole string) (*dto.CreateNoticeResponse, error)
	UpdateStatus(ctx context.Context, noticeID string, req *dto.UpdateStatusRequest, reply *dto.FileUpload, callerID, callerRole string) error
	Inbox(ctx context.Context, callerID, callerRole string) ([]dto.InboxRow, error)
	Outbox(ctx context.Context, callerID string) ([]dto.OutboxRow, error)
	Detail(ctx context.Context, noticeID, callerID, callerRole string) (*dto.NoticeDetailResponse, error)
	Close(ctx context.Context, noticeID, callerID, callerRole string) error
	AdminAll(ctx context.Context) ([]dto.AdminNoticeRow, error)
	AdminSummary(ctx context.Context) (*dto.AdminSummaryResponse, error)
	MonthlyStats(ctx context.Context) ([]dto.MonthlyStatRow, error)
	DelayReport(ctx context.Context) ([]dto.DelayReportRow, error)
}

type noticeService struct {
	repo   *repository.Repository
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time // 测试中可固定时钟
}

// NewNoticeService 创建 NoticeService 实例
func NewNoticeService(repo *repository.Repository, store storage.Store, logger *zap.Logger) NoticeService {
	return &noticeService{
		repo:   repo,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ── 日期辅助 ──

// dateOf 截断到日历日（忽略时分秒与时区差异，按本地日期分量比较）
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween to 与 from 相差的整天数（to 早于 from 时为负）
func daysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}

// overdue 截止已过且尚未完成
func (s *noticeService) overdue(status string, deadline time.Time) bool {
	return status != model.StatusCompleted && dateOf(deadline).Before(dateOf(s.now()))
}

// daysLapsed 超期天数，未超期为 0
func (s *noticeService) daysLapsed(deadline time.Time) int {
	d := daysBetween(deadline, s.now())
	if d < 0 {
		return 0
	}
	return d
}

// ────────────────────── Create（分发）──────────────────────

func (s *noticeService) Create(ctx context.Context, req *dto.CreateNoticeRequest, attachment *dto.FileUpload, issuerID, issuerRole string) (*dto.CreateNoticeResponse, error) {
	// 管理员只观察和关闭，不发布
	if issuerRole == model.RoleAdmin {
		return nil, ErrAdminCannotIssue
	}

	if !model.ValidPriority(req.Priority) {
		return nil, ErrInvalidPriority
	}
	deadline, err := time.Parse(dateLayout, req.Deadline)
	if err != nil {
		return nil, ErrInvalidDeadline
	}

	recipientIDs, err := s.resolveRecipients(ctx, req, issuerID)
	if err != nil {
		return nil, err
	}

	notice := &model.Notice{
		Title:       req.Title,
		Content:     req.Content,
		Priority:    req.Priority,
		Deadline:    deadline,
		CreatedBy:   issuerID,
		IsBroadcast: req.IsBroadcast,
		CreatedAt:   s.now(),
	}

	// 附件先落存储，存储失败则整个创建中止，
	// 不留下引用缺失文件的 Notice
	if attachment != nil {
		saved, err := s.store.Save(ctx, attachment.Data, attachment.Name, attachment.ContentType)
		if err != nil {
			s.logger.Error("保存附件失败", zap.Error(err))
			return nil, err
		}
		notice.AttachmentPath = &saved.Path
		notice.AttachmentName = &saved.Name
	}

	if err := s.repo.Notice.CreateWithStatuses(ctx, notice, recipientIDs); err != nil {
		s.logger.Error("创建通知失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("通知已发布",
		zap.String("notice_id", notice.NoticeID),
		zap.String("issuer_id", issuerID),
		zap.Bool("broadcast", req.IsBroadcast),
		zap.Int("recipients", len(recipientIDs)),
	)

	return &dto.CreateNoticeResponse{NoticeID: notice.NoticeID}, nil
}

// resolveRecipients 解析接收人集合。
// 广播：全部活跃普通成员，排除发布人自己；
// 指定：去重并剔除发布人后必须非空，且每个 ID 都是活跃普通成员。
func (s *noticeService) resolveRecipients(ctx context.Context, req *dto.CreateNoticeRequest, issuerID string) ([]string, error) {
	if req.IsBroadcast {
		users, err := s.repo.User.ListActiveMembers(ctx, issuerID)
		if err != nil {
			s.logger.Error("解析广播接收人失败", zap.Error(err))
			return nil, err
		}
		ids := make([]string, 0, len(users))
		for i := range users {
			ids = append(ids, users[i].UserID)
		}
		if len(ids) == 0 {
			return nil, ErrNoRecipients
		}
		return ids, nil
	}

	seen := make(map[string]bool, len(req.RecipientIDs))
	ids := make([]string, 0, len(req.RecipientIDs))
	for _, id := range req.RecipientIDs {
		if id == issuerID || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrNoRecipients
	}

	users, err := s.repo.User.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("查询接收人失败", zap.Error(err))
		return nil, err
	}
	userMap := make(map[string]*model.User, len(users))
	for i := range users {
		userMap[users[i].UserID] = &users[i]
	}
	for _, id := range ids {
		u, ok := userMap[id]
		if !ok || !u.IsActive || u.Role != model.RoleMember {
			return nil, ErrBadRecipient
		}
	}

	return ids, nil
}

// ────────────────────── UpdateStatus（状态机）──────────────────────

func (s *noticeService) UpdateStatus(ctx context.Context, noticeID string, req *dto.UpdateStatusRequest, reply *dto.FileUpload, callerID, callerRole string) error {
	if callerRole == model.RoleAdmin {
		return ErrAdminHasNoInbox
	}
	// 目标状态只允许 Noted / Completed；Pending 只是创建默认值，不可回设
	if req.Status != model.StatusNoted && req.Status != model.StatusCompleted {
		return ErrInvalidStatus
	}
	if strings.TrimSpace(req.Remark) == "" {
		return ErrRemarkRequired
	}

	if _, err := s.repo.Notice.GetByID(ctx, noticeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoticeNotFound
		}
		s.logger.Error("查询通知失败", zap.String("notice_id", noticeID), zap.Error(err))
		return err
	}

	row, err := s.repo.NoticeStatus.GetByNoticeAndRecipient(ctx, noticeID, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotRecipient
		}
		s.logger.Error("查询接收状态失败", zap.String("notice_id", noticeID), zap.Error(err))
		return err
	}

	// Completed 是硬终态，写前复核
	if row.Status == model.StatusCompleted {
		return ErrStatusTerminal
	}

	if reply != nil {
		saved, err := s.store.Save(ctx, reply.Data, reply.Name, reply.ContentType)
		if err != nil {
			s.logger.Error("保存回执文件失败", zap.Error(err))
			return err
		}
		row.ReplyPath = &saved.Path
		row.ReplyName = &saved.Name
	}

	row.Status = req.Status
	row.Remark = req.Remark
	row.IsRead = true
	row.UpdatedAt = s.now()

	if err := s.repo.NoticeStatus.Update(ctx, row); err != nil {
		s.logger.Error("更新接收状态失败", zap.String("status_id", row.StatusID), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Inbox ──────────────────────

func (s *noticeService) Inbox(ctx context.Context, callerID, callerRole string) ([]dto.InboxRow, error) {
	// 管理员没有个人收件箱
	if callerRole == model.RoleAdmin {
		return []dto.InboxRow{}, nil
	}

	rows, err := s.repo.NoticeStatus.ListByRecipient(ctx, callerID)
	if err != nil {
		s.logger.Error("查询收件箱失败", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.InboxRow, 0, len(rows))
	for i := range rows {
		n := rows[i].Notice
		if n == nil {
			continue
		}
		issuer := ""
		if n.Creator != nil {
			issuer = n.Creator.Username
		}
		attachment := ""
		if n.AttachmentName != nil {
			attachment = *n.AttachmentName
		}
		result = append(result, dto.InboxRow{
			NoticeID:       n.NoticeID,
			Title:          n.Title,
			Priority:       n.Priority,
			Deadline:       n.Deadline.Format(dateLayout),
			IssuerName:     issuer,
			Status:         rows[i].Status,
			Remark:         rows[i].Remark,
			IsRead:         rows[i].IsRead,
			Overdue:        s.overdue(rows[i].Status, n.Deadline),
			DaysLapsed:     s.daysLapsed(n.Deadline),
			AttachmentName: attachment,
		})
	}

	// 主序：状态权重（Pending < Noted < Completed）；次序：截止日期升序。
	// Deadline 是 YYYY-MM-DD，字典序即日期序
	sort.SliceStable(result, func(i, j int) bool {
		ri, rj := model.StatusRank(result[i].Status), model.StatusRank(result[j].Status)
		if ri != rj {
			return ri < rj
		}
		return result[i].Deadline < result[j].Deadline
	})

	return result, nil
}

// ────────────────────── Outbox / 管理视图 ──────────────────────

func (s *noticeService) Outbox(ctx context.Context, callerID string) ([]dto.OutboxRow, error) {
	notices, err := s.repo.Notice.ListByCreator(ctx, callerID)
	if err != nil {
		s.logger.Error("查询发件箱失败", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}
	return s.annotate(ctx, notices)
}

func (s *noticeService) AdminAll(ctx context.Context) ([]dto.AdminNoticeRow, error) {
	notices, err := s.repo.Notice.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询全量通知失败", zap.Error(err))
		return nil, err
	}

	rows, err := s.annotate(ctx, notices)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AdminNoticeRow, 0, len(rows))
	for i := range rows {
		row := dto.AdminNoticeRow{OutboxRow: rows[i]}
		if c := notices[i].Creator; c != nil {
			row.IssuerName = c.Username
			row.IssuerDepartment = c.DepartmentName()
		}
		result = append(result, row)
	}
	return result, nil
}

// annotate 为一组通知补全接收状态计数与接收人明细。
// 一次批量查询避免 N+1；广播通知的接收人列表折叠为单条占位。
func (s *noticeService) annotate(ctx context.Context, notices []model.Notice) ([]dto.OutboxRow, error) {
	if len(notices) == 0 {
		return []dto.OutboxRow{}, nil
	}

	ids := make([]string, 0, len(notices))
	for i := range notices {
		ids = append(ids, notices[i].NoticeID)
	}
	statuses, err := s.repo.NoticeStatus.ListByNoticeIDs(ctx, ids)
	if err != nil {
		s.logger.Error("查询接收状态失败", zap.Error(err))
		return nil, err
	}
	byNotice := make(map[string][]model.NoticeStatus, len(notices))
	for i := range statuses {
		byNotice[statuses[i].NoticeID] = append(byNotice[statuses[i].NoticeID], statuses[i])
	}

	result := make([]dto.OutboxRow, 0, len(notices))
	for i := range notices {
		n := &notices[i]
		rows := byNotice[n.NoticeID]

		var counts dto.StatusCounts
		anyPending := false
		for j := range rows {
			switch rows[j].Status {
			case model.StatusPending:
				counts.Pending++
				anyPending = true
			case model.StatusNoted:
				counts.Noted++
			case model.StatusCompleted:
				counts.Completed++
			}
		}
		counts.Total = len(rows)

		var recipients []dto.RecipientStatusRow
		if n.IsBroadcast {
			recipients = []dto.RecipientStatusRow{{RecipientName: broadcastRecipients}}
		} else {
			recipients = make([]dto.RecipientStatusRow, 0, len(rows))
			for j := range rows {
				recipients = append(recipients, toRecipientStatusRow(&rows[j]))
			}
		}

		// 通知级 overdue：未全员完成且已过截止
		status := model.StatusCompleted
		if anyPending || counts.Completed < counts.Total {
			status = model.StatusPending
		}
		result = append(result, dto.OutboxRow{
			NoticeID:    n.NoticeID,
			Title:       n.Title,
			Priority:    n.Priority,
			Deadline:    n.Deadline.Format(dateLayout),
			IsBroadcast: n.IsBroadcast,
			Overdue:     s.overdue(status, n.Deadline),
			DaysLapsed:  s.daysLapsed(n.Deadline),
			Counts:      counts,
			Recipients:  recipients,
			CreatedAt:   n.CreatedAt.Format(time.RFC3339),
		})
	}

	return result, nil
}

func toRecipientStatusRow(row *model.NoticeStatus) dto.RecipientStatusRow {
	r := dto.RecipientStatusRow{
		RecipientID: row.RecipientID,
		Status:      row.Status,
		Remark:      row.Remark,
		IsRead:      row.IsRead,
		UpdatedAt:   row.UpdatedAt.Format(time.RFC3339),
	}
	if row.Recipient != nil {
		r.RecipientName = row.Recipient.Username
		r.Department = row.Recipient.DepartmentName()
	}
	return r
}

// ────────────────────── Detail（含读标记副作用）──────────────────────

func (s *noticeService) Detail(ctx context.Context, noticeID, callerID, callerRole string) (*dto.NoticeDetailResponse, error) {
	notice, err := s.repo.Notice.GetByID(ctx, noticeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		s.logger.Error("查询通知失败", zap.String("notice_id", noticeID), zap.Error(err))
		return nil, err
	}

	statuses, err := s.repo.NoticeStatus.ListByNotice(ctx, noticeID)
	if err != nil {
		s.logger.Error("查询接收状态失败", zap.String("notice_id", noticeID), zap.Error(err))
		return nil, err
	}

	// 非管理员必须是发布人或接收人之一
	var own *model.NoticeStatus
	for i := range statuses {
		if statuses[i].RecipientID == callerID {
			own = &statuses[i]
			break
		}
	}
	if callerRole != model.RoleAdmin && notice.CreatedBy != callerID && own == nil {
		return nil, ErrNotNoticeParty
	}

	// 唯一带写副作用的查询：接收人首次查看时翻转已读标记。
	// 只改 is_read，幂等，重复查看无额外效果。
	if own != nil && !own.IsRead {
		if err := s.repo.NoticeStatus.MarkRead(ctx, own.StatusID); err != nil {
			s.logger.Warn("标记已读失败", zap.String("status_id", own.StatusID), zap.Error(err))
		} else {
			own.IsRead = true
		}
	}

	resp := &dto.NoticeDetailResponse{
		NoticeID:    notice.NoticeID,
		Title:       notice.Title,
		Content:     notice.Content,
		Priority:    notice.Priority,
		Deadline:    notice.Deadline.Format(dateLayout),
		IsBroadcast: notice.IsBroadcast,
		Overdue:     s.overdue(detailStatus(statuses), notice.Deadline),
		DaysLapsed:  s.daysLapsed(notice.Deadline),
		CreatedAt:   notice.CreatedAt.Format(time.RFC3339),
	}
	if notice.Creator != nil {
		resp.IssuerName = notice.Creator.Username
	}
	if notice.AttachmentPath != nil {
		resp.AttachmentPath = *notice.AttachmentPath
	}
	if notice.AttachmentName != nil {
		resp.AttachmentName = *notice.AttachmentName
	}
	resp.Statuses = make([]dto.RecipientStatusRow, 0, len(statuses))
	for i := range statuses {
		resp.Statuses = append(resp.Statuses, toRecipientStatusRow(&statuses[i]))
	}

	return resp, nil
}

// detailStatus 通知级状态：全员完成视作 Completed，否则按未完成处理
func detailStatus(statuses []model.NoticeStatus) string {
	for i := range statuses {
		if statuses[i].Status != model.StatusCompleted {
			return model.StatusPending
		}
	}
	return model.StatusCompleted
}

// ────────────────────── Close（关闭与归档）──────────────────────
//
// 顺序是正确性的核心：
//   1. 按月份统计本通知的 Completed 行，生成归档行
//   2. 收集附件与回执文件引用（行删除前）
//   3. 归档 + 删除在同一事务提交（notice_statuses 级联删除）
//   4. 事务成功后 best-effort 删除文件；存储失败只记日志，不影响结果

func (s *noticeService) Close(ctx context.Context, noticeID, callerID, callerRole string) error {
	notice, err := s.repo.Notice.GetByID(ctx, noticeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoticeNotFound
		}
		s.logger.Error("查询通知失败", zap.String("notice_id", noticeID), zap.Error(err))
		return err
	}

	statuses, err := s.repo.NoticeStatus.ListByNotice(ctx, noticeID)
	if err != nil {
		s.logger.Error("查询接收状态失败", zap.String("notice_id", noticeID), zap.Error(err))
		return err
	}

	if callerRole != model.RoleAdmin {
		if notice.CreatedBy != callerID {
			return ErrNotIssuer
		}
		for i := range statuses {
			if statuses[i].Status != model.StatusCompleted {
				return ErrNoticeIncomplete
			}
		}
	}

	// 1. 按月分桶 Completed 行；零完成的通知不伪造归档行。
	// 统一按 UTC 分桶，与存量统计的 AT TIME ZONE 'UTC' 一致，
	// 关闭前后同一行落在同一个月
	months := make(map[string]int64)
	for i := range statuses {
		if statuses[i].Status == model.StatusCompleted {
			months[statuses[i].UpdatedAt.UTC().Format(monthLayout)]++
		}
	}
	stats := make([]model.NoticeArchiveStat, 0, len(months))
	for month, count := range months {
		stats = append(stats, model.NoticeArchiveStat{
			Month:          month,
			CompletedCount: count,
			ArchivedAt:     s.now(),
		})
	}

	// 2. 行删除前收集文件引用
	var files []string
	if notice.AttachmentPath != nil {
		files = append(files, *notice.AttachmentPath)
	}
	for i := range statuses {
		if statuses[i].ReplyPath != nil {
			files = append(files, *statuses[i].ReplyPath)
		}
	}

	// 3. 归档 + 删除，单事务
	if err := s.repo.Notice.DeleteWithArchive(ctx, noticeID, stats); err != nil {
		s.logger.Error("关闭通知失败", zap.String("notice_id", noticeID), zap.Error(err))
		return err
	}

	s.logger.Info("通知已关闭",
		zap.String("notice_id", noticeID),
		zap.String("caller_id", callerID),
		zap.Int("archive_rows", len(stats)),
	)

	// 4. 数据库状态是事实来源；文件删除失败容忍泄漏
	for _, f := range files {
		if err := s.store.Delete(ctx, f); err != nil {
			s.logger.Warn("删除文件失败（已忽略）", zap.String("path", f), zap.Error(err))
		}
	}

	return nil
}

// ────────────────────── 管理聚合 ──────────────────────

func (s *noticeService) AdminSummary(ctx context.Context) (*dto.AdminSummaryResponse, error) {
	total, err := s.repo.Notice.Count(ctx)
	if err != nil {
		s.logger.Error("统计通知总数失败", zap.Error(err))
		return nil, err
	}
	pending, err := s.repo.NoticeStatus.CountPending(ctx)
	if err != nil {
		s.logger.Error("统计 Pending 行失败", zap.Error(err))
		return nil, err
	}
	overdue, err := s.repo.NoticeStatus.CountOverdueWithPending(ctx, s.now())
	if err != nil {
		s.logger.Error("统计过期通知失败", zap.Error(err))
		return nil, err
	}

	return &dto.AdminSummaryResponse{
		TotalNotices:   total,
		PendingRows:    pending,
		OverdueNotices: overdue,
	}, nil
}

// MonthlyStats 月度完成统计 = 存量 Completed 行 + 归档行，
// 两个按月预聚合的来源在内存中合并后按月份升序输出。
// 同一月份的数据无论仍在存量、已全部归档还是两者混合，总数都正确。
func (s *noticeService) MonthlyStats(ctx context.Context) ([]dto.MonthlyStatRow, error) {
	live, err := s.repo.NoticeStatus.CountCompletedByMonth(ctx)
	if err != nil {
		s.logger.Error("统计存量完成量失败", zap.Error(err))
		return nil, err
	}
	archived, err := s.repo.ArchiveStat.MonthTotals(ctx)
	if err != nil {
		s.logger.Error("统计归档完成量失败", zap.Error(err))
		return nil, err
	}

	merged := make(map[string]int64, len(live)+len(archived))
	for month, count := range live {
		merged[month] += count
	}
	for month, count := range archived {
		merged[month] += count
	}

	result := make([]dto.MonthlyStatRow, 0, len(merged))
	for month, count := range merged {
		result = append(result, dto.MonthlyStatRow{Month: month, Completed: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })

	return result, nil
}

// DelayReport 延迟回应报表：只统计回应过（Noted/Completed）的接收人，
// 单次回应的延迟 = max(0, date(回应时间) − date(截止日期))。
// 按延迟总天数降序输出。
func (s *noticeService) DelayReport(ctx context.Context) ([]dto.DelayReportRow, error) {
	rows, err := s.repo.NoticeStatus.ListResponded(ctx)
	if err != nil {
		s.logger.Error("查询已回应状态失败", zap.Error(err))
		return nil, err
	}

	agg := make(map[string]*dto.DelayReportRow)
	for i := range rows {
		row := &rows[i]
		if row.Notice == nil {
			continue
		}

		entry, ok := agg[row.RecipientID]
		if !ok {
			entry = &dto.DelayReportRow{RecipientID: row.RecipientID}
			if row.Recipient != nil {
				entry.RecipientName = row.Recipient.Username
				entry.Department = row.Recipient.DepartmentName()
			}
			agg[row.RecipientID] = entry
		}

		entry.TotalResponded++
		if delay := daysBetween(row.Notice.Deadline, row.UpdatedAt); delay > 0 {
			entry.DelayedCount++
			entry.TotalDaysDelayed += delay
		}
	}

	result := make([]dto.DelayReportRow, 0, len(agg))
	for _, entry := range agg {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalDaysDelayed != result[j].TotalDaysDelayed {
			return result[i].TotalDaysDelayed > result[j].TotalDaysDelayed
		}
		if result[i].DelayedCount != result[j].DelayedCount {
			return result[i].DelayedCount > result[j].DelayedCount
		}
		return result[i].RecipientName < result[j].RecipientName
	})

	return result, nil
}
