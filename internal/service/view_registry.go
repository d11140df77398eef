package service

import (
	"fmt"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/util"
)

const (
	sessionAxis = "Session Number"

	// 标注像素偏移：成对序列一上一下，单序列在上方
	offsetAbove = 14
	offsetBelow = -14
	offsetBar   = 8
)

// AutismLevelPalette 分层折线的循环配色
var AutismLevelPalette = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8"}

var views = []model.ViewConfig{
	{
		ID:        "rq1",
		MenuLabel: "RQ1: Emotional Growth",
		Heading:   "RQ1: Growth in Engagement & Connection",
		Questions: []model.QuestionLine{
			{Code: "Q1 (Engagement)", Column: model.QuestionEngagement},
			{Code: "Q3 (Connection)", Column: model.QuestionConnection},
		},
		Primary: model.ChartConfig{
			Title:        "Longitudinal Trends in Participant Engagement and Emotional Connection Across Sessions",
			XLabel:       sessionAxis,
			YLabel:       "Score",
			Kind:         model.ChartLine,
			YMin:         -0.8,
			YMax:         4.8,
			Grid:         model.GridFull,
			Legend:       true,
			Scaled:       true,
			DefaultScale: EngagementScale,
			Series: []model.SeriesConfig{
				{Column: model.QuestionEngagement, Label: "Engagement (Q1)", Color: "#0066CC", Marker: model.MarkerCircle, LabelOffset: offsetAbove},
				{Column: model.QuestionConnection, Label: "Connection (Q3)", Color: "#CC0000", Marker: model.MarkerSquare, LabelOffset: offsetBelow},
			},
		},
	},
	{
		ID:        "rq2",
		MenuLabel: "RQ2: Distress Reduction",
		Heading:   "RQ2: Does Distress Decrease Over Time?",
		Questions: []model.QuestionLine{
			{Code: "Q8", Column: model.QuestionDistress},
		},
		Primary: model.ChartConfig{
			Title:        "Longitudinal Trends in Participant Distress Across Sessions",
			XLabel:       sessionAxis,
			YLabel:       "Distress Level",
			Kind:         model.ChartLine,
			YMin:         -0.8,
			YMax:         4.8,
			Grid:         model.GridFull,
			Scaled:       true,
			DefaultScale: DistressScale,
			Series: []model.SeriesConfig{
				{Column: model.QuestionDistress, Label: "Distress (Q8)", Color: "#D32F2F", Marker: model.MarkerCircle, LabelOffset: offsetAbove},
			},
		},
	},
	{
		ID:        "rq3",
		MenuLabel: "RQ3: Real-World Generalization",
		Heading:   "RQ3: Skill Transfer to Daily Life",
		Questions: []model.QuestionLine{
			{Code: "Q22 (Generalization)", Column: model.QuestionGeneralise},
			{Code: "Q25 (Linking to Life)", Column: model.QuestionRealLife},
		},
		Primary: model.ChartConfig{
			Title:  "Longitudinal Trends in Behavioral Generalization and Real-Life Application",
			XLabel: sessionAxis,
			YLabel: "Score",
			Kind:   model.ChartLine,
			YMin:   -0.8,
			YMax:   4.8,
			Grid:   model.GridFull,
			Legend: true,
			Scaled: true,
			Ticks:  PlainTicks(0, 1, 2, 3, 4),
			Series: []model.SeriesConfig{
				{Column: model.QuestionGeneralise, Label: "Generalization (Q22)", Color: "#2E7D32", Marker: model.MarkerCircle, LabelOffset: offsetBelow},
				{Column: model.QuestionRealLife, Label: "Linking to Life (Q25)", Color: "#6A1B9A", Marker: model.MarkerSquare, LabelOffset: offsetAbove},
			},
		},
	},
	{
		ID:        "rq4",
		MenuLabel: "RQ4: Family Relationship Impact",
		Heading:   "RQ4: Family Relationship Impact",
		Questions: []model.QuestionLine{
			{Code: "Q13", Column: model.QuestionRelationship},
		},
		Primary: model.ChartConfig{
			Title:        "Longitudinal Trends in Parent/Carer Relationship Improvement",
			XLabel:       sessionAxis,
			YLabel:       "Improvement Score",
			Kind:         model.ChartLine,
			YMin:         -0.5,
			YMax:         4.5,
			Grid:         model.GridHorizontal,
			Legend:       true,
			Scaled:       true,
			DefaultScale: EngagementScale,
			Series: []model.SeriesConfig{
				{Column: model.QuestionRelationship, Label: "Therapist (T)", Color: "#FF8C00", Marker: model.MarkerCircle, LabelOffset: offsetBelow, Role: model.RoleTherapist},
				{Column: model.QuestionRelationship, Label: "Parent (P)", Color: "#006400", Marker: model.MarkerSquare, LabelOffset: offsetAbove, Role: model.RoleParent},
			},
		},
	},
	{
		ID:        "rq5",
		MenuLabel: "RQ5: Self-Initiated Social Interaction",
		Heading:   "RQ5: Self-Initiated Social Interaction",
		Questions: []model.QuestionLine{
			{Code: "Q9", Column: model.QuestionInitiation},
		},
		Primary: model.ChartConfig{
			Title:        "Longitudinal Trends in Self-Initiated Social Interaction",
			XLabel:       sessionAxis,
			YLabel:       "Initiation Score",
			Kind:         model.ChartLine,
			YMin:         -0.3,
			YMax:         4.3,
			Grid:         model.GridHorizontal,
			Scaled:       true,
			DefaultScale: EngagementScale,
			Series: []model.SeriesConfig{
				{Column: model.QuestionInitiation, Label: "Initiation (Q9)", Color: "#1976D2", Marker: model.MarkerCircle, LabelOffset: offsetAbove},
			},
		},
		Comments: &model.CommentConfig{
			Column:         "Comment_Q9",
			Heading:        "Contextual Examples (from Comment_Q9):",
			Limit:          DefaultCommentLimit,
			EmptyMessage:   "No contextual comments available for Q9.",
			MissingMessage: "No comment column found for contextual evidence.",
		},
	},
	{
		ID:        "rq6",
		MenuLabel: "RQ6: Social Behaviour Impact",
		Heading:   "RQ6: Overall Social Behaviour Improvement",
		Questions: []model.QuestionLine{
			{Code: "Q26", Column: model.QuestionSocialImpact},
		},
		Primary: model.ChartConfig{
			Title:  "Longitudinal Trends in Overall Social Behavior Impact",
			XLabel: sessionAxis,
			YLabel: "Social Impact Score",
			Kind:   model.ChartBar,
			YMin:   -0.5,
			YMax:   11,
			Grid:   model.GridHorizontal,
			Ticks:  PlainTicks(0, 2, 4, 6, 8, 10),
			Series: []model.SeriesConfig{
				{Column: model.QuestionSocialImpact, Label: "Social Impact (Q26)", Color: "#1565C0", LabelOffset: offsetBar},
			},
		},
		Stratify: &model.StratifyConfig{
			Heading:        "Analysis by Autism Level",
			CategoryColumn: model.ColumnAutismLevel,
			LabelPrefix:    "Autism Level: ",
			Palette:        AutismLevelPalette,
			LabelOffset:    offsetBar,
			MissingMessage: "Autism Level column not found for breakdown analysis.",
			Chart: model.ChartConfig{
				Title:  "Social Behavior Impact by Autism Level Across Sessions",
				XLabel: sessionAxis,
				YLabel: "Social Impact Score",
				Kind:   model.ChartLine,
				YMin:   -0.5,
				YMax:   11,
				Grid:   model.GridHorizontal,
				Legend: true,
				Ticks:  PlainTicks(0, 2, 4, 6, 8, 10),
				Series: []model.SeriesConfig{
					{Column: model.QuestionSocialImpact, Marker: model.MarkerCircle},
				},
			},
		},
	},
}

// Views 按菜单顺序返回全部视图
func Views() []model.ViewConfig {
	out := make([]model.ViewConfig, len(views))
	copy(out, views)
	return out
}

// LookupView 按 id 查找视图
func LookupView(id string) (model.ViewConfig, error) {
	for _, v := range views {
		if v.ID == id {
			return v, nil
		}
	}
	return model.ViewConfig{}, fmt.Errorf("%w: %s", util.ErrViewNotFound, id)
}
