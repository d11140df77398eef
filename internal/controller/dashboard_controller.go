package controller

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/service"
	"therapy_dashboard/internal/util"
	"therapy_dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardController struct {
	ViewService *service.ViewService
	Title       string
}

func NewDashboardController(viewService *service.ViewService, title string) *DashboardController {
	return &DashboardController{ViewService: viewService, Title: title}
}

// ViewSummary 视图列表项
type ViewSummary struct {
	ID        string `json:"id"`
	MenuLabel string `json:"menuLabel"`
	Heading   string `json:"heading"`
	Charts    int    `json:"charts"`
}

// ViewDetail 视图输出及其图表数据
type ViewDetail struct {
	View   ViewSummary   `json:"view"`
	Page   *service.Page `json:"page"`
	Charts interface{}   `json:"charts"`
}

func summarize(v model.ViewConfig) ViewSummary {
	return ViewSummary{ID: v.ID, MenuLabel: v.MenuLabel, Heading: v.Heading, Charts: len(v.Charts())}
}

// Index 概览页
func (c *DashboardController) Index(ctx *gin.Context) {
	ds := util.GetDatasetFromContext(ctx)
	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Title":    c.Title,
		"Views":    service.Views(),
		"Selected": "",
		"Summary":  service.Summarize(ds.Table),
		"DataPath": ds.Path,
	})
}

// ShowView 渲染单个研究问题视图
func (c *DashboardController) ShowView(ctx *gin.Context) {
	view, err := service.LookupView(ctx.Param("id"))
	if err != nil {
		ctx.HTML(http.StatusNotFound, "error.html", gin.H{
			"Title":  c.Title,
			"Status": "Could not load module for " + ctx.Param("id"),
			"Hint":   "Select a Research Question from the sidebar.",
		})
		return
	}

	page := service.NewPage(view.ID)
	if err := c.ViewService.Display(ctx.Request.Context(), page, view, util.GetDatasetFromContext(ctx)); err != nil {
		logger.Log.Error("Failed to display view", zap.String("view", view.ID), zap.Error(err))
		ctx.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Title":  c.Title,
			"Status": err.Error(),
		})
		return
	}

	ctx.HTML(http.StatusOK, "view.html", gin.H{
		"Title":    c.Title,
		"Views":    service.Views(),
		"Selected": view.ID,
		"Page":     page,
	})
}

// ChartImage 以 SVG 或 PNG 格式输出视图中的第 index 张图表
func (c *DashboardController) ChartImage(ctx *gin.Context) {
	view, err := service.LookupView(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, err.Error())
		return
	}
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "invalid chart index")
		return
	}
	format := ctx.DefaultQuery("format", util.FormatSVG)

	spec, err := c.ViewService.Chart(view, util.GetDatasetFromContext(ctx), index)
	if err != nil {
		chartError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := service.RenderChart(spec, format, &buf); err != nil {
		chartError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, util.ContentType(format), buf.Bytes())
}

func chartError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrChartNotFound), errors.Is(err, util.ErrNoData):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrUnknownFormat):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 视图列表
// @Description 按菜单顺序列出全部研究问题视图
// @Tags 视图
// @Produce json
// @Success 200 {object} util.Response
// @Router /views [get]
func (c *DashboardController) ListViews(ctx *gin.Context) {
	views := service.Views()
	out := make([]ViewSummary, 0, len(views))
	for _, v := range views {
		out = append(out, summarize(v))
	}
	util.Success(ctx, out)
}

// @Summary 视图详情
// @Description 返回视图的输出块以及每张图的会话均值数据
// @Tags 视图
// @Produce json
// @Param id path string true "视图ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /views/{id} [get]
func (c *DashboardController) GetView(ctx *gin.Context) {
	view, err := service.LookupView(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, err.Error())
		return
	}
	ds := util.GetDatasetFromContext(ctx)

	page := service.NewPage(view.ID)
	if err := c.ViewService.Display(ctx.Request.Context(), page, view, ds); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, ViewDetail{
		View:   summarize(view),
		Page:   page,
		Charts: c.ViewService.Charts(view, ds),
	})
}

// @Summary 数据概览
// @Description 记录总数、平均参与度、最低困扰度、最高社交影响
// @Tags 视图
// @Produce json
// @Success 200 {object} util.Response{data=model.Summary}
// @Failure 503 {object} util.Response
// @Router /overview [get]
func (c *DashboardController) Overview(ctx *gin.Context) {
	ds := util.GetDatasetFromContext(ctx)
	util.Success(ctx, service.Summarize(ds.Table))
}
