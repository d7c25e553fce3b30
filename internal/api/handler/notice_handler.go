package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"noticedesk/internal/dto"
	"noticedesk/internal/service"
	"noticedesk/internal/storage"
	"noticedesk/pkg/response"
)

// NoticeHandler 通知模块 HTTP 处理器
type NoticeHandler struct {
	noticeSvc service.NoticeService
}

// NewNoticeHandler 创建 NoticeHandler
func NewNoticeHandler(noticeSvc service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeSvc: noticeSvc}
}

// CreateNotice 发布通知（multipart，附件可选）
// POST /api/v1/notices
func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateNoticeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	attachment, err := readUpload(c, "attachment")
	if err != nil {
		response.BadRequest(c, 10001, "附件读取失败")
		return
	}

	result, err := h.noticeSvc.Create(c.Request.Context(), &req, attachment, userID, role)
	if err != nil {
		h.handleNoticeError(c, err)
		return
	}

	response.Created(c, result)
}

// GetInbox 当前用户收件箱
// GET /api/v1/notices/inbox
func (h *NoticeHandler) GetInbox(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	rows, err := h.noticeSvc.Inbox(c.Request.Context(), userID, role)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// GetOutbox 当前用户发件箱
// GET /api/v1/notices/outbox
func (h *NoticeHandler) GetOutbox(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	rows, err := h.noticeSvc.Outbox(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// GetNotice 通知详情（接收人首次查看会翻转已读标记）
// GET /api/v1/notices/:id
func (h *NoticeHandler) GetNotice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知ID不能为空")
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	detail, err := h.noticeSvc.Detail(c.Request.Context(), id, userID, role)
	if err != nil {
		h.handleNoticeError(c, err)
		return
	}

	response.OK(c, detail)
}

// UpdateStatus 接收人更新自己的接收状态（multipart，回执文件可选）
// PUT /api/v1/notices/:id/status
func (h *NoticeHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知ID不能为空")
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reply, err := readUpload(c, "reply")
	if err != nil {
		response.BadRequest(c, 10001, "回执文件读取失败")
		return
	}

	if err := h.noticeSvc.UpdateStatus(c.Request.Context(), id, &req, reply, userID, role); err != nil {
		h.handleNoticeError(c, err)
		return
	}

	response.OK(c, nil)
}

// CloseNotice 关闭并归档通知（不可逆）
// DELETE /api/v1/notices/:id
func (h *NoticeHandler) CloseNotice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知ID不能为空")
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.noticeSvc.Close(c.Request.Context(), id, userID, role); err != nil {
		h.handleNoticeError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 管理员视图 ──

// AdminListNotices 全量通知列表
// GET /api/v1/admin/notices
func (h *NoticeHandler) AdminListNotices(c *gin.Context) {
	rows, err := h.noticeSvc.AdminAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// AdminSummary 管理面板汇总计数
// GET /api/v1/admin/summary
func (h *NoticeHandler) AdminSummary(c *gin.Context) {
	summary, err := h.noticeSvc.AdminSummary(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, summary)
}

// AdminMonthlyStats 月度完成统计（存量 + 归档）
// GET /api/v1/admin/stats/monthly
func (h *NoticeHandler) AdminMonthlyStats(c *gin.Context) {
	rows, err := h.noticeSvc.MonthlyStats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// AdminDelayReport 延迟回应报表
// GET /api/v1/admin/reports/delays
func (h *NoticeHandler) AdminDelayReport(c *gin.Context) {
	rows, err := h.noticeSvc.DelayReport(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// readUpload 读取可选的 multipart 文件字段；字段缺失时返回 nil
func readUpload(c *gin.Context, field string) (*dto.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return readFileHeader(fh)
}

func readFileHeader(fh *multipart.FileHeader) (*dto.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &dto.FileUpload{
		Data:        data,
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}

// handleNoticeError 统一处理通知模块业务错误
func (h *NoticeHandler) handleNoticeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoticeNotFound):
		response.NotFound(c, 14001, "通知不存在")
	case errors.Is(err, service.ErrInvalidPriority):
		response.BadRequest(c, 14002, "优先级取值非法")
	case errors.Is(err, service.ErrInvalidDeadline):
		response.BadRequest(c, 14003, "截止日期格式非法")
	case errors.Is(err, service.ErrNoRecipients):
		response.BadRequest(c, 14004, "接收人列表为空")
	case errors.Is(err, service.ErrBadRecipient):
		response.BadRequest(c, 14005, "部分接收人不存在或不可用")
	case errors.Is(err, service.ErrAdminCannotIssue):
		response.Forbidden(c, 14006, "管理员不能发布通知")
	case errors.Is(err, service.ErrAdminHasNoInbox):
		response.Forbidden(c, 14007, "管理员没有收件箱")
	case errors.Is(err, service.ErrNotRecipient):
		response.Forbidden(c, 14008, "当前用户不是该通知的接收人")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 14009, "状态取值非法")
	case errors.Is(err, service.ErrRemarkRequired):
		response.BadRequest(c, 14010, "备注不能为空")
	case errors.Is(err, service.ErrStatusTerminal):
		response.Conflict(c, 14011, "该接收状态已完成，不可再变更")
	case errors.Is(err, service.ErrNotIssuer):
		response.Forbidden(c, 14012, "只有发布人或管理员可以关闭通知")
	case errors.Is(err, service.ErrNoticeIncomplete):
		response.Conflict(c, 14013, "仍有接收人未完成，无法关闭")
	case errors.Is(err, service.ErrNotNoticeParty):
		response.Forbidden(c, 14014, "无权查看该通知")
	case errors.Is(err, storage.ErrFileTooLarge):
		response.BadRequest(c, 14015, "上传文件超出大小限制")
	default:
		response.InternalError(c)
	}
}
