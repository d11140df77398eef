package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"therapy_dashboard/internal/config"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/util"
	"therapy_dashboard/pkg/logger"
	"therapy_dashboard/pkg/monitoring"
	"therapy_dashboard/pkg/tracing"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// LoadError 数据加载失败，Status 为直接展示给用户的提示
type LoadError struct {
	Path   string
	Status string
	Err    error
}

func (e *LoadError) Error() string {
	return e.Status
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SurveyRepository 问卷数据的加载与缓存。
// 首次 Get 时读取 CSV，成功结果被缓存直到 Invalidate；失败不缓存。
type SurveyRepository struct {
	mu      sync.Mutex
	cfg     config.DataConfig
	scale   model.ScaleMap
	dataset *model.Dataset
}

func NewSurveyRepository(cfg config.DataConfig, scale model.ScaleMap) *SurveyRepository {
	return &SurveyRepository{cfg: cfg, scale: scale}
}

// Get 返回缓存的数据集，必要时加载
func (r *SurveyRepository) Get(ctx context.Context) (*model.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dataset != nil {
		return r.dataset, nil
	}

	_, span := tracing.Tracer.Start(ctx, "SurveyRepository.Load")
	defer span.End()
	span.SetAttributes(attribute.String("data.path", r.cfg.Path))

	table, err := LoadSurveyTable(r.cfg)
	if err != nil {
		monitoring.DatasetLoads.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Log.Error("Failed to load survey data",
			zap.String("path", r.cfg.Path),
			zap.Error(err),
		)
		return nil, err
	}

	monitoring.DatasetLoads.WithLabelValues("ok").Inc()
	monitoring.DatasetRows.Set(float64(table.Len()))
	span.SetAttributes(attribute.Int("data.rows", table.Len()))
	logger.Log.Info("Survey data loaded",
		zap.String("path", r.cfg.Path),
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(table.Columns())),
	)

	r.dataset = &model.Dataset{
		Table:    table,
		Scale:    r.scale,
		Path:     r.cfg.Path,
		LoadedAt: time.Now(),
	}
	return r.dataset, nil
}

// Invalidate 丢弃缓存，下次 Get 重新加载
func (r *SurveyRepository) Invalidate() {
	r.mu.Lock()
	r.dataset = nil
	r.mu.Unlock()
	monitoring.DatasetRows.Set(0)
}

// Reconfigure 更新数据源与刻度映射，并丢弃缓存
func (r *SurveyRepository) Reconfigure(cfg config.DataConfig, scale model.ScaleMap) {
	r.mu.Lock()
	r.cfg = cfg
	r.scale = scale
	r.dataset = nil
	r.mu.Unlock()
}

// Path 当前数据文件路径
func (r *SurveyRepository) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.Path
}

// LoadSurveyTable 读取并解码 CSV，表头去空格，题目列与会话列转为数值
func LoadSurveyTable(cfg config.DataConfig) (*model.SurveyTable, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{
				Path:   cfg.Path,
				Status: fmt.Sprintf("Error: '%s' not found.", cfg.Path),
				Err:    util.ErrDatasetNotFound,
			}
		}
		return nil, loadFailure(cfg.Path, err)
	}
	defer f.Close()

	table, err := ReadSurveyTable(f, cfg.Encoding, cfg.Delimiter)
	if err != nil {
		return nil, loadFailure(cfg.Path, err)
	}
	return table, nil
}

func loadFailure(path string, err error) *LoadError {
	return &LoadError{
		Path:   path,
		Status: fmt.Sprintf("Data Load Error: %s", err.Error()),
		Err:    err,
	}
}

// ReadSurveyTable 从 reader 解析问卷表
func ReadSurveyTable(r io.Reader, encodingName, delimiter string) (*model.SurveyTable, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(enc.NewDecoder().Reader(r))
	if delimiter != "" {
		d, _ := utf8.DecodeRuneInString(delimiter)
		cr.Comma = d
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no columns to parse from file")
		}
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlankRecord(rec) {
			continue
		}
		rows = append(rows, rec)
	}

	numeric := append([]string{model.ColumnSession}, model.NumericColumns...)
	return model.NewSurveyTable(header, rows, numeric...), nil
}

func isBlankRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
