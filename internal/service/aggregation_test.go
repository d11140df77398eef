package service

import (
	"testing"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func surveyTable(header []string, rows ...[]string) *model.SurveyTable {
	numeric := append([]string{model.ColumnSession}, model.NumericColumns...)
	return model.NewSurveyTable(header, rows, numeric...)
}

func TestAggregateBySession(t *testing.T) {
	table := surveyTable(
		[]string{model.ColumnSession, model.QuestionEngagement, model.QuestionConnection},
		[]string{"1", "2", "4"},
		[]string{"1", "4", ""},
		[]string{"3", "", "1"},
		[]string{"", "4", "4"},
		[]string{"2", "1", "2"},
	)

	trends, err := AggregateBySession(table, model.QuestionEngagement, model.QuestionConnection)
	require.NoError(t, err)
	require.Len(t, trends, 2)

	assert.Equal(t, model.QuestionEngagement, trends[0].Column)
	assert.Equal(t, []model.TrendPoint{
		{Session: 1, Mean: 3, Count: 2},
		{Session: 2, Mean: 1, Count: 1},
	}, trends[0].Points)

	assert.Equal(t, []model.TrendPoint{
		{Session: 1, Mean: 4, Count: 1},
		{Session: 2, Mean: 2, Count: 1},
		{Session: 3, Mean: 1, Count: 1},
	}, trends[1].Points)
}

func TestAggregateBySessionMissingColumn(t *testing.T) {
	table := surveyTable([]string{model.ColumnSession}, []string{"1"})
	_, err := AggregateBySession(table, model.QuestionDistress)
	assert.ErrorIs(t, err, util.ErrColumnNotFound)

	noSession := surveyTable([]string{model.QuestionDistress}, []string{"1"})
	_, err = AggregateBySession(noSession, model.QuestionDistress)
	assert.ErrorIs(t, err, util.ErrColumnNotFound)
}

func TestAggregateByRole(t *testing.T) {
	table := surveyTable(
		[]string{model.ColumnSession, model.ColumnSubmittedBy, model.QuestionRelationship},
		[]string{"1", "T", "2"},
		[]string{"1", "T", "3"},
		[]string{"2", "T", "4"},
		[]string{"1", "P", "1"},
		[]string{"1", "X", "0"},
		[]string{"2", "t", "0"},
	)

	therapist, parent, err := AggregateByRole(table, model.QuestionRelationship)
	require.NoError(t, err)

	assert.Equal(t, []model.TrendPoint{
		{Session: 1, Mean: 2.5, Count: 2},
		{Session: 2, Mean: 4, Count: 1},
	}, therapist.Points)
	assert.Equal(t, []model.TrendPoint{{Session: 1, Mean: 1, Count: 1}}, parent.Points)
}

func TestAggregateByRoleMissingRoleColumn(t *testing.T) {
	table := surveyTable([]string{model.ColumnSession, model.QuestionRelationship}, []string{"1", "2"})
	_, _, err := AggregateByRole(table, model.QuestionRelationship)
	assert.ErrorIs(t, err, util.ErrColumnNotFound)
}

func TestAggregateByCategory(t *testing.T) {
	table := surveyTable(
		[]string{model.ColumnSession, model.ColumnAutismLevel, model.QuestionEngagement},
		[]string{"1", "3", "1"},
		[]string{"1", "1", "3"},
		[]string{"2", " 1 ", "4"},
		[]string{"1", "10", "2"},
		[]string{"1", "", "4"},
		[]string{"1", "2", ""},
	)

	trends, err := AggregateByCategory(table, model.QuestionEngagement, model.ColumnAutismLevel)
	require.NoError(t, err)
	require.Len(t, trends, 3)

	assert.Equal(t, "1", trends[0].Category)
	assert.Equal(t, []model.TrendPoint{
		{Session: 1, Mean: 3, Count: 1},
		{Session: 2, Mean: 4, Count: 1},
	}, trends[0].Points)
	assert.Equal(t, "3", trends[1].Category)
	assert.Equal(t, "10", trends[2].Category)
}

func TestAggregateByCategoryTextual(t *testing.T) {
	table := surveyTable(
		[]string{model.ColumnSession, model.ColumnAutismLevel, model.QuestionEngagement},
		[]string{"1", "Level 2", "1"},
		[]string{"1", "Level 1", "3"},
		[]string{"1", "3", "2"},
	)

	trends, err := AggregateByCategory(table, model.QuestionEngagement, model.ColumnAutismLevel)
	require.NoError(t, err)
	var names []string
	for _, tr := range trends {
		names = append(names, tr.Category)
	}
	assert.Equal(t, []string{"3", "Level 1", "Level 2"}, names)
}

func TestSummarize(t *testing.T) {
	table := surveyTable(
		[]string{model.ColumnSession, model.QuestionEngagement, model.QuestionDistress},
		[]string{"1", "2", "3"},
		[]string{"1", "3", "1"},
		[]string{"2", "3", ""},
	)

	summary := Summarize(table)
	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, 2, summary.Sessions)
	require.NotNil(t, summary.AvgEngagement)
	assert.Equal(t, 2.67, *summary.AvgEngagement)
	require.NotNil(t, summary.MinDistress)
	assert.Equal(t, 1.0, *summary.MinDistress)
	assert.Nil(t, summary.MaxSocialImpact)
	assert.Equal(t, []string{model.QuestionSocialImpact}, summary.MissingQuestions)
}

func TestSampleComments(t *testing.T) {
	table := surveyTable(
		[]string{"Notes"},
		[]string{" great "}, []string{""}, []string{"great"}, []string{"calm"}, []string{"happy"},
	)

	comments, err := SampleComments(table, "Notes", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"great", "calm"}, comments)

	all, err := SampleComments(table, "Notes", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"great", "calm", "happy"}, all)

	_, err = SampleComments(table, "Other", 3)
	assert.ErrorIs(t, err, util.ErrColumnNotFound)
}

func TestResolveScale(t *testing.T) {
	ticks := ResolveScale(nil, EngagementScale)
	require.Len(t, ticks, 5)
	assert.Equal(t, model.ScaleTick{Value: 0, Label: "0: Not at all"}, ticks[0])
	assert.Equal(t, model.ScaleTick{Value: 4, Label: "4: Fully"}, ticks[4])

	custom := ResolveScale(model.ScaleMap{2: "Mid", 0: "Low"}, DistressScale)
	assert.Equal(t, []model.ScaleTick{{Value: 0, Label: "0: Low"}, {Value: 2, Label: "2: Mid"}}, custom)

	assert.Equal(t, "4: High Distress", ResolveScale(model.ScaleMap{}, DistressScale)[4].Label)
}

func TestScaleReferenceAndPlainTicks(t *testing.T) {
	assert.Empty(t, ScaleReference(nil))
	assert.Equal(t, []model.ScaleTick{{Value: 1, Label: "One"}}, ScaleReference(model.ScaleMap{1: "One"}))
	assert.Equal(t, []model.ScaleTick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}}, PlainTicks(0, 1))
}

func TestAggregateByCategoryOmitsEmptySessions(t *testing.T) {
	table := surveyTable(
		[]string{model.ColumnSession, model.ColumnAutismLevel, model.QuestionSocialImpact},
		[]string{"1", "Level 2", "4"},
		[]string{"2", "Level 2", "6"},
		[]string{"3", "Level 1", "8"},
	)

	trends, err := AggregateByCategory(table, model.QuestionSocialImpact, model.ColumnAutismLevel)
	require.NoError(t, err)
	require.Len(t, trends, 2)

	assert.Equal(t, "Level 2", trends[1].Category)
	_, ok := trends[1].Point(3)
	assert.False(t, ok)
	assert.Len(t, trends[1].Points, 2)
}

func TestSampleCommentsFirstSixDistinct(t *testing.T) {
	cells := []string{"  Hi ", "Hi", "", "   ", "Bye", "Bye", "Third", "Fourth", "Fifth", "Sixth", "Seventh"}
	rows := make([][]string, len(cells))
	for i, c := range cells {
		rows[i] = []string{c}
	}
	table := model.NewSurveyTable([]string{"Comment_Q9"}, rows)

	comments, err := SampleComments(table, "Comment_Q9", DefaultCommentLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi", "Bye", "Third", "Fourth", "Fifth", "Sixth"}, comments)
}
