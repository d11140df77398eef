package chart

import (
	"fmt"
	"therapy_dashboard/internal/model"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// annotation 数值标注，Offset 为像素，正值在点上方
type annotation struct {
	Font   *truetype.Font
	Color  drawing.Color
	Offset int
	Size   float64
}

func (a annotation) draw(r gochart.Renderer, x, y int, value float64) {
	style := gochart.Style{
		Font:      a.Font,
		FontSize:  a.Size,
		FontColor: a.Color,
	}
	label := fmt.Sprintf("%.2f", value)
	tb := gochart.Draw.MeasureText(r, label, style)

	tx := x - tb.Width()/2
	ty := y - a.Offset
	if a.Offset < 0 {
		ty += tb.Height()
	}
	gochart.Draw.Text(r, label, tx, ty, style)
}

// trendSeries 带标记与数值标注的折线
type trendSeries struct {
	gochart.ContinuousSeries
	marker model.MarkerShape
	label  annotation
}

func newTrendSeries(s Series, font *truetype.Font) *trendSeries {
	color := ParseColor(s.Color)
	ts := &trendSeries{
		ContinuousSeries: gochart.ContinuousSeries{
			Name:  s.Label,
			YAxis: gochart.YAxisSecondary,
			Style: gochart.Style{
				StrokeColor: color,
				StrokeWidth: seriesLineWidth,
			},
		},
		marker: s.Marker,
		label: annotation{
			Font:   font,
			Color:  color,
			Offset: s.LabelOffset,
			Size:   annotationFontSize,
		},
	}
	for _, p := range s.Points {
		ts.XValues = append(ts.XValues, p.Session)
		ts.YValues = append(ts.YValues, p.Mean)
	}
	return ts
}

func (s *trendSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, defaults gochart.Style) {
	style := s.Style.InheritFrom(defaults)
	gochart.Draw.LineSeries(r, canvasBox, xrange, yrange, style, s)

	color := style.GetStrokeColor()
	for i := 0; i < s.Len(); i++ {
		vx, vy := s.GetValues(i)
		x := canvasBox.Left + xrange.Translate(vx)
		y := canvasBox.Bottom - yrange.Translate(vy)
		drawMarker(r, s.marker, color, x, y)
		s.label.draw(r, x, y, vy)
	}
}

func drawMarker(r gochart.Renderer, shape model.MarkerShape, color drawing.Color, x, y int) {
	r.SetFillColor(color)
	r.SetStrokeColor(whiteColor)
	r.SetStrokeWidth(markerEdgeWidth)
	r.SetStrokeDashArray(nil)

	switch shape {
	case model.MarkerSquare:
		h := int(markerRadius)
		r.MoveTo(x-h, y-h)
		r.LineTo(x+h, y-h)
		r.LineTo(x+h, y+h)
		r.LineTo(x-h, y+h)
		r.LineTo(x-h, y-h)
		r.Close()
		r.FillStroke()
	default:
		r.Circle(markerRadius, x, y)
		r.FillStroke()
	}
	r.ResetStyle()
}

// barSeries 以会话为中心的竖直柱，黑色描边，数值标在柱顶
type barSeries struct {
	gochart.ContinuousSeries
	label annotation
}

func newBarSeries(s Series, font *truetype.Font) *barSeries {
	color := ParseColor(s.Color)
	bs := &barSeries{
		ContinuousSeries: gochart.ContinuousSeries{
			Name:  s.Label,
			YAxis: gochart.YAxisSecondary,
			Style: gochart.Style{
				FillColor:   color,
				StrokeColor: edgeColor,
				StrokeWidth: barEdgeWidth,
			},
		},
		label: annotation{
			Font:   font,
			Color:  color,
			Offset: s.LabelOffset,
			Size:   annotationFontSize + 1,
		},
	}
	for _, p := range s.Points {
		bs.XValues = append(bs.XValues, p.Session)
		bs.YValues = append(bs.YValues, p.Mean)
	}
	return bs
}

func (s *barSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, defaults gochart.Style) {
	style := s.Style.InheritFrom(defaults)
	half := barWidth / 2
	base := canvasBox.Bottom - yrange.Translate(0)

	for i := 0; i < s.Len(); i++ {
		vx, vy := s.GetValues(i)
		left := canvasBox.Left + xrange.Translate(vx-half)
		right := canvasBox.Left + xrange.Translate(vx+half)
		top := canvasBox.Bottom - yrange.Translate(vy)
		bottom := base
		if top > bottom {
			top, bottom = bottom, top
		}
		gochart.Draw.Box(r, gochart.Box{Top: top, Left: left, Right: right, Bottom: bottom}, style)

		x := canvasBox.Left + xrange.Translate(vx)
		s.label.draw(r, x, canvasBox.Bottom-yrange.Translate(vy), vy)
	}
}

// fixedRange 固定上下限并提供自定义刻度的坐标范围
type fixedRange struct {
	*gochart.ContinuousRange
	ticks []gochart.Tick
}

func newFixedRange(min, max float64, ticks []gochart.Tick) *fixedRange {
	return &fixedRange{
		ContinuousRange: &gochart.ContinuousRange{Min: min, Max: max},
		ticks:           ticks,
	}
}

func (fr *fixedRange) GetTicks(r gochart.Renderer, defaults gochart.Style, vf gochart.ValueFormatter) []gochart.Tick {
	return fr.ticks
}
