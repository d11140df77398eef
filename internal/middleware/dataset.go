package middleware

import (
	"context"
	"errors"
	"net/http"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/repository"
	"therapy_dashboard/internal/util"

	"github.com/gin-gonic/gin"
)

const LoadFailureHint = "Please ensure the CSV file is present at the configured data path."

// DatasetSource 提供已加载的问卷数据
type DatasetSource interface {
	Get(ctx context.Context) (*model.Dataset, error)
	Path() string
}

// DatasetMiddleware 加载（或复用缓存的）数据集并放入上下文。
// 加载失败时中止请求：页面路由渲染错误页，接口路由返回 503。
func DatasetMiddleware(source DatasetSource, title string, html bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := source.Get(c.Request.Context())
		if err != nil {
			status := err.Error()
			path := source.Path()
			var loadErr *repository.LoadError
			if errors.As(err, &loadErr) {
				status = loadErr.Status
				path = loadErr.Path
			}

			if html {
				c.HTML(http.StatusServiceUnavailable, "error.html", gin.H{
					"Title":  title,
					"Status": status,
					"Hint":   LoadFailureHint,
					"Path":   path,
				})
			} else {
				c.JSON(http.StatusServiceUnavailable, util.Response{
					Code:    http.StatusServiceUnavailable,
					Message: status,
					Data:    gin.H{"path": path, "hint": LoadFailureHint},
				})
			}
			c.Abort()
			return
		}

		c.Set(util.DatasetKey, ds)
		c.Next()
	}
}
