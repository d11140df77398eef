package controller

import (
	"net/http"
	"therapy_dashboard/internal/middleware"
	"therapy_dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB      *gorm.DB
	Dataset middleware.DatasetSource
}

func NewHealthController(db *gorm.DB, dataset middleware.DatasetSource) *HealthController {
	return &HealthController{DB: db, Dataset: dataset}
}

// @Summary 健康检查
// @Description 检查数据集与（可选）数据库状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{}
	healthy := true

	if _, err := c.Dataset.Get(ctx.Request.Context()); err != nil {
		components["dataset"] = "down"
		healthy = false
	} else {
		components["dataset"] = "up"
	}

	// 导出历史库为可选组件
	if c.DB == nil {
		components["database"] = "disabled"
	} else if sqlDB, err := c.DB.DB(); err != nil || sqlDB.Ping() != nil {
		components["database"] = "down"
		healthy = false
	} else {
		components["database"] = "up"
	}

	code := http.StatusOK
	status := "ok"
	if !healthy {
		code = http.StatusServiceUnavailable
		status = "degraded"
	}
	ctx.JSON(code, util.Response{
		Code:    code,
		Message: status,
		Data:    gin.H{"status": status, "components": components},
	})
}
