package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"noticedesk/internal/service"
	"noticedesk/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAdminReports 导出管理报表（延迟回应 + 月度完成）
// GET /api/v1/admin/reports/export
func (h *ExportHandler) ExportAdminReports(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportAdminReports(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
