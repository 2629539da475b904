// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"time"

	"github.com/kiyensi/store-settings-service/internal/app"
	"github.com/kiyensi/store-settings-service/internal/dto"
	pkgapp "github.com/kiyensi/store-settings-service/pkg/app"
	"github.com/kiyensi/store-settings-service/pkg/code"
	"github.com/kiyensi/store-settings-service/pkg/util"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库连接
// @Tags 系统
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.HealthDTO}
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	result := dto.HealthDTO{
		Status:    "healthy",
		Version:   h.App.Version().Version,
		Uptime:    int64(time.Since(h.App.StartTime).Seconds()),
		Database:  "connected",
		MachineID: util.GetMachineID(),
		Host:      util.GetHostStats(),
	}

	// 检查数据库连接
	if err := h.App.DB.Raw("SELECT 1").Error; err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.Failed.WithData(result))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(result))
}
