package controller

import (
	"errors"
	"strconv"
	"therapy_dashboard/internal/service"
	"therapy_dashboard/internal/util"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	ExportService *service.ExportService
}

func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{ExportService: exportService}
}

// ExportRequest 导出请求
type ExportRequest struct {
	Chart  int    `json:"chart" binding:"min=0"`
	Format string `json:"format" binding:"omitempty,oneof=svg png"`
}

// @Summary 导出图表
// @Description 渲染视图中的图表并保存到配置的存储
// @Tags 导出
// @Accept json
// @Produce json
// @Param id path string true "视图ID"
// @Param request body ExportRequest true "导出参数"
// @Success 201 {object} util.Response{data=model.ExportRecord}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /views/{id}/export [post]
func (c *ExportController) Export(ctx *gin.Context) {
	view, err := service.LookupView(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, err.Error())
		return
	}

	var req ExportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.ExportService.Export(ctx.Request.Context(), view, util.GetDatasetFromContext(ctx), req.Chart, req.Format)
	if err != nil {
		chartError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// @Summary 导出历史
// @Description 最近的图表导出记录，需要启用数据库
// @Tags 导出
// @Produce json
// @Param view query string false "视图ID"
// @Param limit query int false "数量" default(20)
// @Success 200 {object} util.Response{data=[]model.ExportRecord}
// @Failure 503 {object} util.Response
// @Router /exports [get]
func (c *ExportController) ListExports(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		util.BadRequest(ctx, "invalid limit")
		return
	}
	if limit > 100 {
		limit = 100
	}

	records, err := c.ExportService.History(ctx.Query("view"), limit)
	if err != nil {
		if errors.Is(err, util.ErrHistoryDisabled) {
			util.ServiceUnavailable(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}
