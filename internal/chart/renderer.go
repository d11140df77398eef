package chart

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/util"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// ErrNoData 所有序列都没有数据点
var ErrNoData = util.ErrNoData

const (
	DefaultWidth  = 1200
	DefaultHeight = 700
)

type YRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Series 一条待绘制的趋势
type Series struct {
	Label       string             `json:"label"`
	Color       string             `json:"color"`
	Marker      model.MarkerShape  `json:"marker,omitempty"`
	LabelOffset int                `json:"labelOffset"`
	Points      []model.TrendPoint `json:"points"`
}

// Spec 一张图的完整描述
type Spec struct {
	Title  string            `json:"title"`
	XLabel string            `json:"xLabel"`
	YLabel string            `json:"yLabel"`
	Kind   model.ChartKind   `json:"kind"`
	YRange YRange            `json:"yRange"`
	Ticks  []model.ScaleTick `json:"ticks"`
	Grid   model.GridMode    `json:"grid"`
	Legend bool              `json:"legend"`
	Series []Series          `json:"series"`
	Width  int               `json:"width,omitempty"`
	Height int               `json:"height,omitempty"`
}

// HasData 至少有一条序列包含数据点
func (s Spec) HasData() bool {
	for _, series := range s.Series {
		if len(series.Points) > 0 {
			return true
		}
	}
	return false
}

// Render 将图表以 svg 或 png 写入 w。空序列不绘制；全部为空时返回 ErrNoData。
func Render(spec Spec, format string, w io.Writer) error {
	var provider gochart.RendererProvider
	switch format {
	case util.FormatSVG, "":
		provider = gochart.SVG
	case util.FormatPNG:
		provider = gochart.PNG
	default:
		return fmt.Errorf("%w: %s", util.ErrUnknownFormat, format)
	}

	c, err := build(spec)
	if err != nil {
		return err
	}
	return c.Render(provider, w)
}

func build(spec Spec) (*gochart.Chart, error) {
	if !spec.HasData() {
		return nil, ErrNoData
	}

	regular, bold, err := loadFonts()
	if err != nil {
		return nil, err
	}

	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var series []gochart.Series
	for _, s := range spec.Series {
		if len(s.Points) == 0 {
			continue
		}
		if spec.Kind == model.ChartBar {
			series = append(series, newBarSeries(s, bold))
		} else {
			series = append(series, newTrendSeries(s, bold))
		}
	}

	xr := sessionRange(spec)
	yr := valueRange(spec)

	axisStyle := gochart.Style{
		StrokeColor: axisColor,
		StrokeWidth: axisLineWidth,
		FontSize:    tickFontSize,
	}
	nameStyle := gochart.Style{
		Font:     bold,
		FontSize: axisNameFontSize,
	}

	c := &gochart.Chart{
		Title: spec.Title,
		TitleStyle: gochart.Style{
			Font:     bold,
			FontSize: titleFontSize,
			Padding:  gochart.Box{Top: 15},
		},
		Width:  width,
		Height: height,
		Font:   regular,
		Background: gochart.Style{
			FillColor: whiteColor,
			Padding:   gochart.Box{Top: 60, Left: 50, Right: 30, Bottom: 20, IsSet: true},
		},
		XAxis: gochart.XAxis{
			Name:      spec.XLabel,
			NameStyle: nameStyle,
			Style:     axisStyle,
			Range:     xr,
		},
		// 主 Y 轴绘制在右侧，隐藏；序列使用左侧的副 Y 轴
		YAxis: gochart.YAxis{
			Style: gochart.Hidden(),
			Range: &gochart.ContinuousRange{Min: yr.Min, Max: yr.Max},
		},
		YAxisSecondary: gochart.YAxis{
			Name:      spec.YLabel,
			NameStyle: nameStyle,
			Style:     axisStyle,
			Range:     yr,
		},
		Series: series,
	}

	c.YAxisSecondary.GridLines = gridLines(yr.ticks)
	if spec.Grid == model.GridFull {
		c.XAxis.GridLines = gridLines(xr.ticks)
	} else {
		c.XAxis.GridMajorStyle, c.XAxis.GridMinorStyle = hiddenGrid()
	}

	if spec.Legend {
		c.Elements = []gochart.Renderable{
			gochart.Legend(c, gochart.Style{
				FontSize:    legendFontSize,
				StrokeColor: gridColor,
			}),
		}
	}
	return c, nil
}

func gridLines(ticks []gochart.Tick) []gochart.GridLine {
	lines := make([]gochart.GridLine, 0, len(ticks))
	for _, t := range ticks {
		lines = append(lines, gochart.GridLine{Value: t.Value, Style: gridStyle()})
	}
	return lines
}

// sessionRange 会话轴在首尾各留半个单位
func sessionRange(spec Spec) *fixedRange {
	min, max := math.Inf(1), math.Inf(-1)
	seen := make(map[float64]bool)
	var sessions []float64
	for _, s := range spec.Series {
		for _, p := range s.Points {
			min = math.Min(min, p.Session)
			max = math.Max(max, p.Session)
			if !seen[p.Session] {
				seen[p.Session] = true
				sessions = append(sessions, p.Session)
			}
		}
	}

	ticks := make([]gochart.Tick, 0, len(sessions))
	for _, v := range sessions {
		ticks = append(ticks, gochart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Value < ticks[j].Value })
	return newFixedRange(min-0.5, max+0.5, ticks)
}

// valueRange 未指定范围时按数据与刻度推算
func valueRange(spec Spec) *fixedRange {
	ticks := make([]gochart.Tick, 0, len(spec.Ticks))
	for _, t := range spec.Ticks {
		ticks = append(ticks, gochart.Tick{Value: float64(t.Value), Label: t.Label})
	}

	min, max := spec.YRange.Min, spec.YRange.Max
	if min >= max {
		min, max = math.Inf(1), math.Inf(-1)
		for _, s := range spec.Series {
			for _, p := range s.Points {
				min = math.Min(min, p.Mean)
				max = math.Max(max, p.Mean)
			}
		}
		for _, t := range ticks {
			min = math.Min(min, t.Value)
			max = math.Max(max, t.Value)
		}
		if spec.Kind == model.ChartBar {
			min = math.Min(min, 0)
		}
		min, max = min-0.5, max+0.5
	}
	if len(ticks) == 0 {
		for v := math.Ceil(min); v <= math.Floor(max); v++ {
			ticks = append(ticks, gochart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
		}
	}
	return newFixedRange(min, max, ticks)
}
