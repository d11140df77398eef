package util

import (
	"therapy_dashboard/internal/model"

	"github.com/gin-gonic/gin"
)

const DatasetKey = "dataset"

// GetDatasetFromContext 获取中间件加载的数据集
func GetDatasetFromContext(c *gin.Context) *model.Dataset {
	v, exists := c.Get(DatasetKey)
	if !exists {
		return nil
	}
	ds, ok := v.(*model.Dataset)
	if !ok {
		return nil
	}
	return ds
}
