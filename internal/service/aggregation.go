package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/util"
)

type accumulator struct {
	sum   float64
	count int
}

func (a *accumulator) add(v float64) {
	a.sum += v
	a.count++
}

func (a accumulator) point(session float64) model.TrendPoint {
	return model.TrendPoint{Session: session, Mean: a.sum / float64(a.count), Count: a.count}
}

func sessionScores(t *model.SurveyTable) ([]model.Score, error) {
	sessions, ok := t.Scores(model.ColumnSession)
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrColumnNotFound, model.ColumnSession)
	}
	return sessions, nil
}

func columnScores(t *model.SurveyTable, column string) ([]model.Score, error) {
	scores, ok := t.Scores(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrColumnNotFound, column)
	}
	return scores, nil
}

// trendOf 对 include 为 true 的行按会话求均值
func trendOf(column string, sessions, values []model.Score, include func(row int) bool) model.Trend {
	groups := make(map[float64]*accumulator)
	for i, s := range sessions {
		if !s.Valid || math.IsNaN(s.Value) {
			continue
		}
		v := values[i]
		if !v.Valid || math.IsNaN(v.Value) {
			continue
		}
		if include != nil && !include(i) {
			continue
		}
		acc, ok := groups[s.Value]
		if !ok {
			acc = &accumulator{}
			groups[s.Value] = acc
		}
		acc.add(v.Value)
	}

	keys := make([]float64, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	trend := model.Trend{Column: column, Points: make([]model.TrendPoint, 0, len(keys))}
	for _, k := range keys {
		trend.Points = append(trend.Points, groups[k].point(k))
	}
	return trend
}

// AggregateBySession 每个列按会话求均值，忽略缺失值与缺失会话号的行。
// 只有存在有效值的会话才会出现在结果中。
func AggregateBySession(t *model.SurveyTable, columns ...string) ([]model.Trend, error) {
	sessions, err := sessionScores(t)
	if err != nil {
		return nil, err
	}

	trends := make([]model.Trend, 0, len(columns))
	for _, column := range columns {
		values, err := columnScores(t, column)
		if err != nil {
			return nil, err
		}
		trends = append(trends, trendOf(column, sessions, values, nil))
	}
	return trends, nil
}

// AggregateByCategory 按 (会话, 分类) 求均值，分类升序，空分类与无数据的分类忽略
func AggregateByCategory(t *model.SurveyTable, column, categoryColumn string) ([]model.CategoryTrend, error) {
	sessions, err := sessionScores(t)
	if err != nil {
		return nil, err
	}
	values, err := columnScores(t, column)
	if err != nil {
		return nil, err
	}
	categories, ok := t.Text(categoryColumn)
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrColumnNotFound, categoryColumn)
	}

	seen := make(map[string]bool)
	var names []string
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		names = append(names, c)
	}
	sortCategories(names)

	out := make([]model.CategoryTrend, 0, len(names))
	for _, name := range names {
		name := name
		trend := trendOf(column, sessions, values, func(row int) bool {
			return strings.TrimSpace(categories[row]) == name
		})
		if trend.Empty() {
			continue
		}
		out = append(out, model.CategoryTrend{Category: name, Trend: trend})
	}
	return out, nil
}

// sortCategories 全部为数字时按数值排序，否则按字典序
func sortCategories(names []string) {
	numeric := true
	for _, n := range names {
		if !model.ParseScore(n).Valid {
			numeric = false
			break
		}
	}
	if !numeric {
		sort.Strings(names)
		return
	}
	sort.SliceStable(names, func(i, j int) bool {
		return model.ParseScore(names[i]).Value < model.ParseScore(names[j]).Value
	})
}

// AggregateByRole 分别统计治疗师(T)与家长(P)提交的记录，其他角色忽略
func AggregateByRole(t *model.SurveyTable, column string) (therapist, parent model.Trend, err error) {
	sessions, err := sessionScores(t)
	if err != nil {
		return model.Trend{}, model.Trend{}, err
	}
	values, err := columnScores(t, column)
	if err != nil {
		return model.Trend{}, model.Trend{}, err
	}
	roles, ok := t.Text(model.ColumnSubmittedBy)
	if !ok {
		return model.Trend{}, model.Trend{}, fmt.Errorf("%w: %s", util.ErrColumnNotFound, model.ColumnSubmittedBy)
	}

	byRole := func(role model.Role) func(int) bool {
		return func(row int) bool {
			return model.Role(roles[row]) == role
		}
	}
	therapist = trendOf(column, sessions, values, byRole(model.RoleTherapist))
	parent = trendOf(column, sessions, values, byRole(model.RoleParent))
	return therapist, parent, nil
}

// Summarize 概览指标，列缺失时对应指标为空
func Summarize(t *model.SurveyTable) model.Summary {
	summary := model.Summary{TotalRecords: t.Len()}

	if sessions, ok := t.Scores(model.ColumnSession); ok {
		distinct := make(map[float64]struct{})
		for _, s := range sessions {
			if s.Valid {
				distinct[s.Value] = struct{}{}
			}
		}
		summary.Sessions = len(distinct)
	}

	stat := func(column string, reduce func(acc, v float64) float64, mean bool) *float64 {
		scores, ok := t.Scores(column)
		if !ok {
			summary.MissingQuestions = append(summary.MissingQuestions, column)
			return nil
		}
		var (
			result float64
			n      int
		)
		for _, s := range scores {
			if !s.Valid {
				continue
			}
			if n == 0 {
				result = s.Value
			} else {
				result = reduce(result, s.Value)
			}
			n++
		}
		if n == 0 {
			return nil
		}
		if mean {
			result /= float64(n)
		}
		rounded := math.Round(result*100) / 100
		return &rounded
	}

	summary.AvgEngagement = stat(model.QuestionEngagement, func(acc, v float64) float64 { return acc + v }, true)
	summary.MinDistress = stat(model.QuestionDistress, math.Min, false)
	summary.MaxSocialImpact = stat(model.QuestionSocialImpact, math.Max, false)
	return summary
}
