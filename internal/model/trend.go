package model

import "sort"

// ScaleMap 分值 -> 文字标签
type ScaleMap map[int]string

// ScaleTick 坐标轴刻度
type ScaleTick struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Keys 按升序返回所有分值
func (m ScaleMap) Keys() []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// TrendPoint 某一次会话的均值
type TrendPoint struct {
	Session float64 `json:"session"`
	Mean    float64 `json:"mean"`
	Count   int     `json:"count"`
}

// Trend 单个数值列随会话变化的均值序列，按会话升序
type Trend struct {
	Column string       `json:"column"`
	Label  string       `json:"label,omitempty"`
	Points []TrendPoint `json:"points"`
}

func (t Trend) Empty() bool {
	return len(t.Points) == 0
}

// Point 查找某次会话的数据点
func (t Trend) Point(session float64) (TrendPoint, bool) {
	for _, p := range t.Points {
		if p.Session == session {
			return p, true
		}
	}
	return TrendPoint{}, false
}

// CategoryTrend 按分类列分层后的趋势
type CategoryTrend struct {
	Category string `json:"category"`
	Trend
}

// Summary 概览页指标
type Summary struct {
	TotalRecords     int      `json:"totalRecords"`
	AvgEngagement    *float64 `json:"avgEngagement"`
	MinDistress      *float64 `json:"minDistress"`
	MaxSocialImpact  *float64 `json:"maxSocialImpact"`
	Sessions         int      `json:"sessions"`
	MissingQuestions []string `json:"missingQuestions,omitempty"`
}
