package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"therapy_dashboard/internal/chart"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/repository"
	"therapy_dashboard/internal/util"
	"therapy_dashboard/pkg/logger"
	"therapy_dashboard/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// RenderChart 渲染并记录耗时
func RenderChart(spec chart.Spec, format string, w io.Writer) error {
	start := time.Now()
	err := chart.Render(spec, format, w)
	monitoring.ObserveChart(string(spec.Kind), start)
	return err
}

// ExportService 将图表渲染结果保存到存储，可选记录历史
type ExportService struct {
	Views   *ViewService
	Storage *StorageService
	Repo    *repository.ExportRepository
}

func NewExportService(views *ViewService, storage *StorageService, repo *repository.ExportRepository) *ExportService {
	return &ExportService{Views: views, Storage: storage, Repo: repo}
}

func (s *ExportService) Export(ctx context.Context, view model.ViewConfig, ds *model.Dataset, index int, format string) (*model.ExportRecord, error) {
	if format == "" {
		format = util.FormatSVG
	}
	spec, err := s.Views.Chart(view, ds, index)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := RenderChart(spec, format, &buf); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("charts/%s/%s-%d.%s", view.ID, time.Now().Format(util.ExportFormat), index, format)
	size := int64(buf.Len())
	url, err := s.Storage.Upload(ctx, objectName, &buf, size, util.ContentType(format))
	if err != nil {
		return nil, fmt.Errorf("upload chart: %w", err)
	}

	record := &model.ExportRecord{
		ViewID:     view.ID,
		ChartIndex: index,
		ChartTitle: spec.Title,
		Format:     format,
		ObjectName: objectName,
		URL:        url,
		Size:       size,
	}
	if s.Repo != nil {
		if err := s.Repo.Create(record); err != nil {
			if delErr := s.Storage.Delete(ctx, objectName); delErr != nil {
				logger.Log.Warn("Failed to remove orphaned export", zap.String("object", objectName), zap.Error(delErr))
			}
			return nil, fmt.Errorf("save export record: %w", err)
		}
	} else {
		record.ID = model.GenerateUUID()
		record.CreatedAt = time.Now()
	}

	logger.Log.Info("Chart exported",
		zap.String("view", view.ID),
		zap.Int("chart", index),
		zap.String("object", objectName),
		zap.Int64("size", size),
	)
	return record, nil
}

// History 最近的导出记录，未启用数据库时返回 ErrHistoryDisabled
func (s *ExportService) History(viewID string, limit int) ([]model.ExportRecord, error) {
	if s.Repo == nil {
		return nil, util.ErrHistoryDisabled
	}
	return s.Repo.FindRecent(viewID, limit)
}
