package service

import (
	"fmt"
	"therapy_dashboard/internal/model"
)

// EngagementScale 参与度类题目的默认标签
var EngagementScale = model.ScaleMap{
	0: "Not at all",
	1: "Slightly",
	2: "Moderately",
	3: "Very",
	4: "Fully",
}

// DistressScale 困扰程度题目的默认标签
var DistressScale = model.ScaleMap{
	0: "Calm",
	1: "Slightly",
	2: "Moderately",
	3: "Very",
	4: "High Distress",
}

// ResolveScale 生成坐标轴刻度：优先使用 mapping，为空时使用 def。
// 按分值升序，标签为 "{分值}: {文字}"。
func ResolveScale(mapping, def model.ScaleMap) []model.ScaleTick {
	source := mapping
	if len(source) == 0 {
		source = def
	}
	ticks := make([]model.ScaleTick, 0, len(source))
	for _, k := range source.Keys() {
		ticks = append(ticks, model.ScaleTick{
			Value: k,
			Label: fmt.Sprintf("%d: %s", k, source[k]),
		})
	}
	return ticks
}

// ScaleReference 刻度对照表的行，未提供映射时为空
func ScaleReference(mapping model.ScaleMap) []model.ScaleTick {
	rows := make([]model.ScaleTick, 0, len(mapping))
	for _, k := range mapping.Keys() {
		rows = append(rows, model.ScaleTick{Value: k, Label: mapping[k]})
	}
	return rows
}

// PlainTicks 仅含数字标签的刻度
func PlainTicks(values ...int) []model.ScaleTick {
	ticks := make([]model.ScaleTick, len(values))
	for i, v := range values {
		ticks[i] = model.ScaleTick{Value: v, Label: fmt.Sprintf("%d", v)}
	}
	return ticks
}
