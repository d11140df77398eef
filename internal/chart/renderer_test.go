package chart

import (
	"bytes"
	"testing"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineSpec() Spec {
	return Spec{
		Title:  "Engagement",
		XLabel: "Session Number",
		YLabel: "Score",
		Kind:   model.ChartLine,
		YRange: YRange{Min: -0.8, Max: 4.8},
		Ticks:  []model.ScaleTick{{Value: 0, Label: "0: Not at all"}, {Value: 4, Label: "4: Fully"}},
		Grid:   model.GridFull,
		Legend: true,
		Series: []Series{
			{
				Label:       "Engagement (Q1)",
				Color:       "#0066CC",
				Marker:      model.MarkerCircle,
				LabelOffset: 14,
				Points:      []model.TrendPoint{{Session: 1, Mean: 2.5, Count: 2}, {Session: 2, Mean: 3, Count: 1}},
			},
			{
				Label:       "Connection (Q3)",
				Color:       "#CC0000",
				Marker:      model.MarkerSquare,
				LabelOffset: -14,
				Points:      []model.TrendPoint{{Session: 1, Mean: 1.25, Count: 2}},
			},
		},
		Width:  600,
		Height: 400,
	}
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(lineSpec(), util.FormatSVG, &buf))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "2.50")
	assert.Contains(t, out, "1.25")
	assert.Contains(t, out, "0: Not at all")
	assert.Contains(t, out, "Engagement (Q1)")
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(lineSpec(), util.FormatPNG, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderBar(t *testing.T) {
	spec := Spec{
		Title:  "Social Impact",
		Kind:   model.ChartBar,
		YRange: YRange{Min: -0.5, Max: 11},
		Grid:   model.GridHorizontal,
		Series: []Series{{
			Label:       "Social Impact (Q26)",
			Color:       "#1565C0",
			LabelOffset: 8,
			Points:      []model.TrendPoint{{Session: 1, Mean: 6.5, Count: 2}, {Session: 3, Mean: 8, Count: 1}},
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, Render(spec, "", &buf))
	assert.Contains(t, buf.String(), "6.50")
	assert.Contains(t, buf.String(), "8.00")
}

func TestRenderNoData(t *testing.T) {
	spec := lineSpec()
	for i := range spec.Series {
		spec.Series[i].Points = nil
	}
	assert.False(t, spec.HasData())

	var buf bytes.Buffer
	assert.ErrorIs(t, Render(spec, util.FormatSVG, &buf), util.ErrNoData)
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Render(lineSpec(), "gif", &buf), util.ErrUnknownFormat)
}

func TestValueRangeDerived(t *testing.T) {
	spec := Spec{Series: []Series{{Points: []model.TrendPoint{{Session: 1, Mean: 1}, {Session: 2, Mean: 3}}}}}
	r := valueRange(spec)
	assert.Equal(t, 0.5, r.Min)
	assert.Equal(t, 3.5, r.Max)
	require.Len(t, r.ticks, 3)
	assert.Equal(t, "1", r.ticks[0].Label)
}

func TestSessionRange(t *testing.T) {
	spec := Spec{Series: []Series{
		{Points: []model.TrendPoint{{Session: 3}, {Session: 1}}},
		{Points: []model.TrendPoint{{Session: 2}, {Session: 3}}},
	}}
	r := sessionRange(spec)
	assert.Equal(t, 0.5, r.Min)
	assert.Equal(t, 3.5, r.Max)
	require.Len(t, r.ticks, 3)
	assert.Equal(t, []float64{1, 2, 3}, []float64{r.ticks[0].Value, r.ticks[1].Value, r.ticks[2].Value})
}

func TestPaletteColor(t *testing.T) {
	palette := []string{"#111111", "#222222"}
	assert.Equal(t, "#111111", PaletteColor(palette, 2))
	assert.Equal(t, "#222222", PaletteColor(palette, 3))
	assert.Equal(t, "", PaletteColor(nil, 0))
}
