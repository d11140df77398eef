package service

import (
	"fmt"
	"strings"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/util"
)

const DefaultCommentLimit = 6

// SampleComments 按出现顺序返回去重后的非空评论，最多 limit 条。
// 列不存在时返回 ErrColumnNotFound。
func SampleComments(t *model.SurveyTable, column string, limit int) ([]string, error) {
	cells, ok := t.Text(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrColumnNotFound, column)
	}
	if limit <= 0 {
		limit = DefaultCommentLimit
	}

	seen := make(map[string]bool)
	comments := make([]string, 0, limit)
	for _, cell := range cells {
		c := strings.TrimSpace(cell)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		comments = append(comments, c)
		if len(comments) == limit {
			break
		}
	}
	return comments, nil
}
