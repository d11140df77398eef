package model

import (
	"strconv"
	"strings"
	"time"
)

// 数据表中的固定列名（已去除首尾空格）
const (
	ColumnSession     = "Session number"
	ColumnSubmittedBy = "Submitted_by"
	ColumnAutismLevel = "Autism Level"
)

// 问卷题目列
const (
	QuestionEngagement   = "How engaged was the participant during today's storytelling session?"
	QuestionConnection   = "Did the participant demonstrate emotional connection?"
	QuestionDistress     = "Did the participant exhibit distress, boredom, or frustration?"
	QuestionInitiation   = "Did the participant initiate interactions related to the story?"
	QuestionGeneralise   = "Did the participant generalise the behaviour outside the story?"
	QuestionRealLife     = "Did the participant link the story to real-life experiences?"
	QuestionSocialImpact = "How much different scenarios stories impact overall social behaviour ?"
	QuestionRelationship = "How much did the relationship between a participant and carer/parent improved?"
)

// NumericColumns 加载时强制转换为数值的列
var NumericColumns = []string{
	QuestionEngagement,
	QuestionConnection,
	QuestionDistress,
	QuestionInitiation,
	QuestionGeneralise,
	QuestionRealLife,
	QuestionSocialImpact,
	QuestionRelationship,
}

type Role string

const (
	RoleTherapist Role = "T"
	RoleParent    Role = "P"
)

// Score 一个可能缺失的数值单元格
type Score struct {
	Value float64
	Valid bool
}

// ParseScore 解析数值，无法解析的值记为缺失
func ParseScore(raw string) Score {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Score{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Score{}
	}
	return Score{Value: v, Valid: true}
}

// SurveyTable 按列存储的只读问卷表。
// 文本列保留原始单元格，数值列在加载时转换。
type SurveyTable struct {
	columns []string
	index   map[string]int
	cells   [][]string
	numeric map[string][]Score
	rows    int
}

// NewSurveyTable 以行数据构造表，表头去除首尾空格，
// 短行补空值。numeric 中存在于表头的列会被转换为数值。
func NewSurveyTable(header []string, rows [][]string, numeric ...string) *SurveyTable {
	t := &SurveyTable{
		columns: make([]string, len(header)),
		index:   make(map[string]int, len(header)),
		cells:   make([][]string, len(header)),
		numeric: make(map[string][]Score),
		rows:    len(rows),
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		t.columns[i] = name
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
		t.cells[i] = make([]string, len(rows))
	}
	for r, row := range rows {
		for c := range header {
			if c < len(row) {
				t.cells[c][r] = row[c]
			}
		}
	}
	for _, name := range numeric {
		i, ok := t.index[name]
		if !ok {
			continue
		}
		t.numeric[name] = parseColumn(t.cells[i])
	}
	return t
}

func parseColumn(cells []string) []Score {
	out := make([]Score, len(cells))
	for i, cell := range cells {
		out[i] = ParseScore(cell)
	}
	return out
}

func (t *SurveyTable) Len() int {
	return t.rows
}

func (t *SurveyTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *SurveyTable) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Text 返回某列原始文本的副本
func (t *SurveyTable) Text(name string) ([]string, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(t.cells[i]))
	copy(out, t.cells[i])
	return out, true
}

// Scores 返回某列的数值视图。非预转换列按需解析，不修改表。
func (t *SurveyTable) Scores(name string) ([]Score, bool) {
	if scores, ok := t.numeric[name]; ok {
		out := make([]Score, len(scores))
		copy(out, scores)
		return out, true
	}
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return parseColumn(t.cells[i]), true
}

// IsNumeric 表示该列在加载时已被转换
func (t *SurveyTable) IsNumeric(name string) bool {
	_, ok := t.numeric[name]
	return ok
}

// Dataset 一次加载得到的数据及其刻度映射
type Dataset struct {
	Table    *SurveyTable
	Scale    ScaleMap
	Path     string
	LoadedAt time.Time
}
