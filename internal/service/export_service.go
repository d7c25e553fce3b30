package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportService 管理报表导出业务接口
type ExportService interface {
	// ExportAdminReports 生成管理报表 xlsx（延迟回应 + 月度完成两个工作表），
	// 返回文件内容与建议文件名
	ExportAdminReports(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	notices NoticeService
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(notices NoticeService, logger *zap.Logger) ExportService {
	return &exportService{
		notices: notices,
		logger:  logger,
		now:     time.Now,
	}
}

const (
	sheetDelays  = "延迟回应"
	sheetMonthly = "月度完成"
)

func (s *exportService) ExportAdminReports(ctx context.Context) (*bytes.Buffer, string, error) {
	delays, err := s.notices.DelayReport(ctx)
	if err != nil {
		return nil, "", err
	}
	monthly, err := s.notices.MonthlyStats(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("关闭导出文件失败", zap.Error(err))
		}
	}()

	// ── 延迟回应表 ──
	if err := f.SetSheetName("Sheet1", sheetDelays); err != nil {
		return nil, "", fmt.Errorf("重命名工作表失败: %w", err)
	}
	delayHeaders := []interface{}{"接收人", "部门", "回应总数", "延迟次数", "延迟总天数"}
	if err := f.SetSheetRow(sheetDelays, "A1", &delayHeaders); err != nil {
		return nil, "", fmt.Errorf("写入表头失败: %w", err)
	}
	for i, row := range delays {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.RecipientName,
			row.Department,
			row.TotalResponded,
			row.DelayedCount,
			row.TotalDaysDelayed,
		}
		if err := f.SetSheetRow(sheetDelays, cell, &values); err != nil {
			return nil, "", fmt.Errorf("写入延迟数据失败: %w", err)
		}
	}

	// ── 月度完成表 ──
	if _, err := f.NewSheet(sheetMonthly); err != nil {
		return nil, "", fmt.Errorf("创建工作表失败: %w", err)
	}
	monthlyHeaders := []interface{}{"月份", "完成数量"}
	if err := f.SetSheetRow(sheetMonthly, "A1", &monthlyHeaders); err != nil {
		return nil, "", fmt.Errorf("写入表头失败: %w", err)
	}
	for i, row := range monthly {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{row.Month, row.Completed}
		if err := f.SetSheetRow(sheetMonthly, cell, &values); err != nil {
			return nil, "", fmt.Errorf("写入统计数据失败: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成导出文件失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("notice_reports_%s.xlsx", s.now().Format("20060102"))

	s.logger.Info("管理报表已导出",
		zap.Int("delay_rows", len(delays)),
		zap.Int("monthly_rows", len(monthly)),
	)

	return buf, filename, nil
}
