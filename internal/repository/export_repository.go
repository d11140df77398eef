package repository

import (
	"therapy_dashboard/internal/model"

	"gorm.io/gorm"
)

type ExportRepository struct {
	DB *gorm.DB
}

func NewExportRepository(db *gorm.DB) *ExportRepository {
	return &ExportRepository{DB: db}
}

func (r *ExportRepository) Create(record *model.ExportRecord) error {
	return r.DB.Create(record).Error
}

// FindRecent 按创建时间倒序，viewID 为空时不过滤
func (r *ExportRepository) FindRecent(viewID string, limit int) ([]model.ExportRecord, error) {
	var records []model.ExportRecord
	query := r.DB.Order("created_at desc")
	if viewID != "" {
		query = query.Where("view_id = ?", viewID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
