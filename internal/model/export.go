package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExportRecord 图表导出记录，只保存元数据，图片本身在对象存储中
type ExportRecord struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ViewID     string    `gorm:"type:varchar(32);index:idx_view_created;not null" json:"viewId"`
	ChartIndex int       `gorm:"not null" json:"chartIndex"`
	ChartTitle string    `gorm:"type:varchar(255)" json:"chartTitle"`
	Format     string    `gorm:"type:varchar(8);not null" json:"format"`
	ObjectName string    `gorm:"type:varchar(255);not null" json:"objectName"`
	URL        string    `gorm:"type:varchar(512)" json:"url"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `gorm:"index:idx_view_created" json:"createdAt"`
}

func (ExportRecord) TableName() string {
	return "chart_exports"
}

func (r *ExportRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = GenerateUUID()
	}
	return nil
}

func GenerateUUID() string {
	return uuid.New().String()
}
