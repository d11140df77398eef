package util

import "errors"

var (
	ErrDatasetNotFound = errors.New("dataset file not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrViewNotFound    = errors.New("view not found")
	ErrChartNotFound   = errors.New("chart not found")
	ErrNoData          = errors.New("no data to plot")
	ErrUnknownFormat   = errors.New("unsupported chart format")
	ErrHistoryDisabled = errors.New("export history is disabled")
)
