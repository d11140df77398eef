package chart

import (
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/gofont/gobold"
)

const (
	titleFontSize      = 13.0
	axisNameFontSize   = 12.0
	tickFontSize       = 10.0
	annotationFontSize = 10.0
	legendFontSize     = 11.0

	axisLineWidth   = 1.5
	seriesLineWidth = 2.5
	gridLineWidth   = 0.5
	markerRadius    = 5.0
	markerEdgeWidth = 2.0
	barEdgeWidth    = 1.5
	barWidth        = 0.6
)

var (
	gridColor  = drawing.Color{R: 128, G: 128, B: 128, A: 51}
	axisColor  = drawing.Color{R: 51, G: 51, B: 51, A: 255}
	edgeColor  = drawing.ColorBlack
	whiteColor = drawing.ColorWhite
)

var (
	fontOnce    sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
	fontErr     error
)

// loadFonts 解析内置字体，只执行一次
func loadFonts() (regular, bold *truetype.Font, err error) {
	fontOnce.Do(func() {
		regularFont, fontErr = gochart.GetDefaultFont()
		if fontErr != nil {
			return
		}
		boldFont, fontErr = truetype.Parse(gobold.TTF)
	})
	return regularFont, boldFont, fontErr
}

// ParseColor 解析 "#RRGGBB" 或 "RRGGBB"，空值为黑色
func ParseColor(hex string) drawing.Color {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(hex)
}

// PaletteColor 按序号循环取色
func PaletteColor(palette []string, i int) string {
	if len(palette) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

func gridStyle() gochart.Style {
	return gochart.Style{
		StrokeColor: gridColor,
		StrokeWidth: gridLineWidth,
	}
}

func hiddenGrid() (major, minor gochart.Style) {
	return gochart.Hidden(), gochart.Hidden()
}
