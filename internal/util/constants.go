package util

const (
	TimeFormat   = "2006-01-02 15:04:05"
	ExportFormat = "20060102-150405"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 图表输出格式
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

const (
	MimeSVG = "image/svg+xml"
	MimePNG = "image/png"
)

// ContentType 返回图表格式对应的 MIME 类型
func ContentType(format string) string {
	if format == FormatPNG {
		return MimePNG
	}
	return MimeSVG
}
