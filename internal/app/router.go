package app

import (
	"therapy_dashboard/docs"
	"therapy_dashboard/internal/config"
	"therapy_dashboard/internal/middleware"
	"therapy_dashboard/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 页面路由
	a.registerPageRoutes(router, c, repos, cfg)

	// 2. JSON 接口
	a.registerAPIRoutes(router, c, repos)
}

func (a *App) registerPageRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	pages := router.Group("/")
	pages.Use(middleware.DatasetMiddleware(repos.survey, cfg.Dashboard.Title, true))
	{
		pages.GET("", c.dashboard.Index)
		pages.GET("/views/:id", c.dashboard.ShowView)
	}

	charts := router.Group("/views/:id/charts")
	charts.Use(middleware.DatasetMiddleware(repos.survey, cfg.Dashboard.Title, false))
	{
		charts.GET("/:index", c.dashboard.ChartImage)
	}
}

func (a *App) registerAPIRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/views", c.dashboard.ListViews)
		api.GET("/exports", c.export.ListExports)
	}

	data := router.Group("/api")
	data.Use(middleware.DatasetMiddleware(repos.survey, "", false))
	{
		data.GET("/overview", c.dashboard.Overview)
		data.GET("/views/:id", c.dashboard.GetView)
		data.POST("/views/:id/export", c.export.Export)
	}
}
