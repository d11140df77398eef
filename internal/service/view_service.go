package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"therapy_dashboard/internal/chart"
	"therapy_dashboard/internal/config"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/util"
	"therapy_dashboard/pkg/logger"
	"therapy_dashboard/pkg/monitoring"
	"therapy_dashboard/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ViewService 按视图配置生成图表与说明文字
type ViewService struct {
	CommentLimit int
	ChartWidth   int
	ChartHeight  int
}

func NewViewService(cfg *config.DashboardConfig) *ViewService {
	return &ViewService{
		CommentLimit: cfg.CommentLimit,
		ChartWidth:   cfg.ChartWidth,
		ChartHeight:  cfg.ChartHeight,
	}
}

// Display 将视图输出到 surface。列缺失时对应部分降级为提示信息。
func (s *ViewService) Display(ctx context.Context, surface Surface, view model.ViewConfig, ds *model.Dataset) error {
	_, span := tracing.Tracer.Start(ctx, "ViewService.Display")
	defer span.End()
	span.SetAttributes(attribute.String("view.id", view.ID))

	if ds == nil || ds.Table == nil {
		monitoring.ViewRenders.WithLabelValues(view.ID, "error").Inc()
		return util.ErrDatasetNotFound
	}
	t := ds.Table

	surface.Heading(view.Heading)
	for _, q := range view.Questions {
		surface.Markdown(fmt.Sprintf("**%s:** %s", q.Code, q.Column))
	}

	primary, notes := s.primarySpec(view, ds)
	for _, n := range notes {
		surface.Info(n)
	}
	if primary.HasData() {
		surface.Chart(0, primary)
	} else {
		surface.Info("No data available to plot for this view.")
	}

	if view.Primary.Scaled && len(ds.Scale) > 0 {
		surface.Markdown("**Scale Reference:**")
		rows := make([][]string, 0, len(ds.Scale))
		for _, r := range ScaleReference(ds.Scale) {
			rows = append(rows, []string{strconv.Itoa(r.Value), r.Label})
		}
		surface.Table([]string{"Score", "Label"}, rows)
	}

	if st := view.Stratify; st != nil {
		surface.Divider()
		surface.Markdown("#### " + st.Heading)
		if !t.HasColumn(st.CategoryColumn) {
			surface.Info(st.MissingMessage)
		} else {
			spec, err := s.stratifiedSpec(view, ds)
			switch {
			case err != nil:
				surface.Info(fmt.Sprintf("Breakdown unavailable: %v.", err))
			case spec.HasData():
				surface.Chart(1, spec)
			default:
				surface.Info("No data available to plot for this breakdown.")
			}
		}
	}

	if cc := view.Comments; cc != nil {
		limit := cc.Limit
		if s.CommentLimit > 0 {
			limit = s.CommentLimit
		}
		comments, err := SampleComments(t, cc.Column, limit)
		switch {
		case errors.Is(err, util.ErrColumnNotFound):
			surface.Info(cc.MissingMessage)
		case len(comments) == 0:
			surface.Info(cc.EmptyMessage)
		default:
			surface.Markdown("**" + cc.Heading + "**")
			surface.List(comments)
		}
	}

	monitoring.ViewRenders.WithLabelValues(view.ID, "ok").Inc()
	logger.Log.Debug("View displayed", zap.String("view", view.ID), zap.Int("rows", t.Len()))
	return nil
}

// Charts 视图中所有图表的描述，顺序与 Display 中的图表序号一致
func (s *ViewService) Charts(view model.ViewConfig, ds *model.Dataset) []chart.Spec {
	primary, _ := s.primarySpec(view, ds)
	specs := []chart.Spec{primary}
	if view.Stratify != nil {
		spec, _ := s.stratifiedSpec(view, ds)
		specs = append(specs, spec)
	}
	return specs
}

// Chart 返回单张图的描述，序号越界时返回 ErrChartNotFound，无数据时返回 ErrNoData
func (s *ViewService) Chart(view model.ViewConfig, ds *model.Dataset, index int) (chart.Spec, error) {
	specs := s.Charts(view, ds)
	if index < 0 || index >= len(specs) {
		return chart.Spec{}, fmt.Errorf("%w: %s/%d", util.ErrChartNotFound, view.ID, index)
	}
	if !specs[index].HasData() {
		return specs[index], util.ErrNoData
	}
	return specs[index], nil
}

func (s *ViewService) baseSpec(cfg model.ChartConfig, scale model.ScaleMap) chart.Spec {
	spec := chart.Spec{
		Title:  cfg.Title,
		XLabel: cfg.XLabel,
		YLabel: cfg.YLabel,
		Kind:   cfg.Kind,
		YRange: chart.YRange{Min: cfg.YMin, Max: cfg.YMax},
		Grid:   cfg.Grid,
		Legend: cfg.Legend,
		Ticks:  cfg.Ticks,
		Width:  s.ChartWidth,
		Height: s.ChartHeight,
	}
	if cfg.Scaled {
		if ticks := ResolveScale(scale, cfg.DefaultScale); len(ticks) > 0 {
			spec.Ticks = ticks
		}
	}
	return spec
}

// primarySpec 构造主图，返回缺列等降级提示
func (s *ViewService) primarySpec(view model.ViewConfig, ds *model.Dataset) (chart.Spec, []string) {
	t := ds.Table
	spec := s.baseSpec(view.Primary, ds.Scale)

	var notes []string
	if !t.HasColumn(model.ColumnSession) {
		return spec, []string{fmt.Sprintf("Column '%s' not found; session trends cannot be computed.", model.ColumnSession)}
	}

	for _, sc := range view.Primary.Series {
		trend, err := seriesTrend(t, sc)
		if err != nil {
			notes = append(notes, fmt.Sprintf("Series '%s' skipped: %v.", sc.Label, err))
			continue
		}
		spec.Series = append(spec.Series, chart.Series{
			Label:       sc.Label,
			Color:       sc.Color,
			Marker:      sc.Marker,
			LabelOffset: sc.LabelOffset,
			Points:      trend.Points,
		})
	}
	return spec, notes
}

func seriesTrend(t *model.SurveyTable, sc model.SeriesConfig) (model.Trend, error) {
	if sc.Role != "" {
		therapist, parent, err := AggregateByRole(t, sc.Column)
		if err != nil {
			return model.Trend{}, err
		}
		if sc.Role == model.RoleTherapist {
			return therapist, nil
		}
		return parent, nil
	}
	trends, err := AggregateBySession(t, sc.Column)
	if err != nil {
		return model.Trend{}, err
	}
	return trends[0], nil
}

func (s *ViewService) stratifiedSpec(view model.ViewConfig, ds *model.Dataset) (chart.Spec, error) {
	st := view.Stratify
	spec := s.baseSpec(st.Chart, ds.Scale)
	if len(st.Chart.Series) == 0 {
		return spec, nil
	}
	tmpl := st.Chart.Series[0]

	groups, err := AggregateByCategory(ds.Table, tmpl.Column, st.CategoryColumn)
	if err != nil {
		return spec, err
	}
	for i, g := range groups {
		spec.Series = append(spec.Series, chart.Series{
			Label:       st.LabelPrefix + g.Category,
			Color:       chart.PaletteColor(st.Palette, i),
			Marker:      tmpl.Marker,
			LabelOffset: st.LabelOffset,
			Points:      g.Points,
		})
	}
	return spec, nil
}
