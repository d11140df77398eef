package model

type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

type GridMode string

const (
	GridHorizontal GridMode = "horizontal"
	GridFull       GridMode = "full"
)

type MarkerShape string

const (
	MarkerCircle MarkerShape = "circle"
	MarkerSquare MarkerShape = "square"
)

// QuestionLine 图表上方展示的题目说明
type QuestionLine struct {
	Code   string `json:"code"`
	Column string `json:"column"`
}

// SeriesConfig 一条折线/柱的来源与样式。
// Role 非空时只统计该角色提交的记录。
type SeriesConfig struct {
	Column      string      `json:"column"`
	Label       string      `json:"label"`
	Color       string      `json:"color"`
	Marker      MarkerShape `json:"marker,omitempty"`
	LabelOffset int         `json:"labelOffset"`
	Role        Role        `json:"role,omitempty"`
}

// ChartConfig 单张图的静态配置
type ChartConfig struct {
	Title  string    `json:"title"`
	XLabel string    `json:"xLabel"`
	YLabel string    `json:"yLabel"`
	Kind   ChartKind `json:"kind"`
	YMin   float64   `json:"yMin"`
	YMax   float64   `json:"yMax"`
	Grid   GridMode  `json:"grid"`
	Legend bool      `json:"legend"`

	// Scaled 为 true 时使用 0-4 刻度标签（配置映射优先，其次 DefaultScale）；
	// 两者都为空或 Scaled 为 false 时使用 Ticks
	Scaled       bool           `json:"scaled"`
	DefaultScale ScaleMap       `json:"-"`
	Ticks        []ScaleTick    `json:"ticks,omitempty"`
	Series       []SeriesConfig `json:"series"`
}

// StratifyConfig 按分类列分层的第二张图
type StratifyConfig struct {
	Heading        string      `json:"heading"`
	CategoryColumn string      `json:"categoryColumn"`
	LabelPrefix    string      `json:"labelPrefix"`
	Palette        []string    `json:"palette"`
	LabelOffset    int         `json:"labelOffset"`
	MissingMessage string      `json:"-"`
	Chart          ChartConfig `json:"chart"`
}

// CommentConfig 文字评论抽样
type CommentConfig struct {
	Column         string `json:"column"`
	Heading        string `json:"heading"`
	Limit          int    `json:"limit"`
	EmptyMessage   string `json:"-"`
	MissingMessage string `json:"-"`
}

// ViewConfig 一个研究问题视图
type ViewConfig struct {
	ID        string          `json:"id"`
	MenuLabel string          `json:"menuLabel"`
	Heading   string          `json:"heading"`
	Questions []QuestionLine  `json:"questions"`
	Primary   ChartConfig     `json:"primary"`
	Stratify  *StratifyConfig `json:"stratify,omitempty"`
	Comments  *CommentConfig  `json:"comments,omitempty"`
}

// Charts 按展示顺序返回视图中的所有图表配置
func (v ViewConfig) Charts() []ChartConfig {
	charts := []ChartConfig{v.Primary}
	if v.Stratify != nil {
		charts = append(charts, v.Stratify.Chart)
	}
	return charts
}
