package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"therapy_dashboard/internal/config"
	"therapy_dashboard/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageProvider(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: dir})

	url, err := storage.Upload(context.Background(), "charts/rq1/a.svg", strings.NewReader("<svg/>"), 6, util.MimeSVG)
	require.NoError(t, err)
	assert.Equal(t, "/exports/charts/rq1/a.svg", url)

	data, err := os.ReadFile(filepath.Join(dir, "charts", "rq1", "a.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	require.NoError(t, storage.Delete(context.Background(), "charts/rq1/a.svg"))
	assert.NoFileExists(t, filepath.Join(dir, "charts", "rq1", "a.svg"))
}

func TestStorageFallsBackToLocal(t *testing.T) {
	storage := NewStorageService(&config.StorageConfig{Type: util.StorageMinio, LocalPath: t.TempDir()})
	_, ok := storage.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}

func TestExportWithoutHistory(t *testing.T) {
	dir := t.TempDir()
	views := newViewService()
	svc := NewExportService(views, NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: dir}), nil)

	record, err := svc.Export(context.Background(), mustView(t, "rq6"), fullDataset(nil), 1, util.FormatPNG)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "rq6", record.ViewID)
	assert.Equal(t, 1, record.ChartIndex)
	assert.Equal(t, "Social Behavior Impact by Autism Level Across Sessions", record.ChartTitle)
	assert.True(t, strings.HasPrefix(record.ObjectName, "charts/rq6/"))
	assert.True(t, strings.HasSuffix(record.ObjectName, "-1.png"))
	assert.Positive(t, record.Size)
	assert.FileExists(t, filepath.Join(dir, record.ObjectName))

	_, err = svc.History("rq6", 10)
	assert.ErrorIs(t, err, util.ErrHistoryDisabled)
}

func TestExportErrors(t *testing.T) {
	svc := NewExportService(newViewService(), NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()}), nil)

	_, err := svc.Export(context.Background(), mustView(t, "rq1"), fullDataset(nil), 3, "")
	assert.ErrorIs(t, err, util.ErrChartNotFound)

	_, err = svc.Export(context.Background(), mustView(t, "rq1"), fullDataset(nil), 0, "bmp")
	assert.ErrorIs(t, err, util.ErrUnknownFormat)
}
