package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"therapy_dashboard/internal/config"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = " Session number ,Submitted_by,How engaged was the participant during today's storytelling session?,Notes\n" +
	"1,T,3,Liked the dragon\n" +
	"1,P,n/a,\n" +
	",,,\n" +
	"2,T,4,Didn\x92t want to stop\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadSurveyTable(t *testing.T) {
	table, err := ReadSurveyTable(strings.NewReader(sampleCSV), "windows-1252", ",")
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.True(t, table.HasColumn(model.ColumnSession))
	assert.True(t, table.IsNumeric(model.ColumnSession))
	assert.True(t, table.IsNumeric(model.QuestionEngagement))
	assert.False(t, table.IsNumeric("Notes"))

	scores, _ := table.Scores(model.QuestionEngagement)
	assert.Equal(t, []model.Score{{Value: 3, Valid: true}, {}, {Value: 4, Valid: true}}, scores)

	notes, _ := table.Text("Notes")
	assert.Equal(t, "Didn’t want to stop", notes[2])
}

func TestReadSurveyTableBOMAndDelimiter(t *testing.T) {
	table, err := ReadSurveyTable(strings.NewReader("\uFEFFSession number;Submitted_by\n1;T\n"), "utf-8", ";")
	require.NoError(t, err)
	assert.Equal(t, []string{model.ColumnSession, model.ColumnSubmittedBy}, table.Columns())
	assert.Equal(t, 1, table.Len())
}

func TestReadSurveyTableEmpty(t *testing.T) {
	_, err := ReadSurveyTable(strings.NewReader(""), "", ",")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns to parse from file")
}

func TestReadSurveyTableUnknownEncoding(t *testing.T) {
	_, err := ReadSurveyTable(strings.NewReader("a\n1\n"), "ebcdic", ",")
	assert.Error(t, err)
}

func TestLoadSurveyTableNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	_, err := LoadSurveyTable(config.DataConfig{Path: path})
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "Error: '"+path+"' not found.", loadErr.Status)
	assert.Equal(t, path, loadErr.Path)
	assert.ErrorIs(t, err, util.ErrDatasetNotFound)
}

func TestLoadSurveyTableParseFailure(t *testing.T) {
	path := writeCSV(t, "")
	_, err := LoadSurveyTable(config.DataConfig{Path: path})

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, strings.HasPrefix(loadErr.Status, "Data Load Error: "))
}

func TestSurveyRepositoryCachesSuccess(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	scale := model.ScaleMap{0: "Not at all"}
	repo := NewSurveyRepository(config.DataConfig{Path: path}, scale)

	first, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, first.Path)
	assert.Equal(t, scale, first.Scale)

	second, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	repo.Invalidate()
	third, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestSurveyRepositoryDoesNotCacheFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.csv")
	repo := NewSurveyRepository(config.DataConfig{Path: path}, nil)

	_, err := repo.Get(context.Background())
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))
	ds, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Table.Len())
}

func TestSurveyRepositoryReconfigure(t *testing.T) {
	first := writeCSV(t, sampleCSV)
	repo := NewSurveyRepository(config.DataConfig{Path: first}, nil)
	_, err := repo.Get(context.Background())
	require.NoError(t, err)

	second := writeCSV(t, "Session number\n1\n2\n3\n4\n")
	repo.Reconfigure(config.DataConfig{Path: second}, model.ScaleMap{1: "One"})
	assert.Equal(t, second, repo.Path())

	ds, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Table.Len())
	assert.Equal(t, "One", ds.Scale[1])
}
