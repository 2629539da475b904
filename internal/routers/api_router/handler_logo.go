package api_router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/kiyensi/store-settings-service/internal/app"
	"github.com/kiyensi/store-settings-service/internal/middleware"
	pkgapp "github.com/kiyensi/store-settings-service/pkg/app"
	"github.com/kiyensi/store-settings-service/pkg/code"
	apperrors "github.com/kiyensi/store-settings-service/pkg/errors"
	"go.uber.org/zap"
)

// LogoHandler 店铺 logo API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type LogoHandler struct {
	*Handler
}

// NewLogoHandler 创建 LogoHandler 实例
func NewLogoHandler(a *app.App, wss *pkgapp.WebsocketServer) *LogoHandler {
	return &LogoHandler{
		Handler: NewHandlerWithWSS(a, wss),
	}
}

// Upload 上传店铺 logo
// @Summary 上传店铺 logo
// @Description 流式接收 multipart 文件，落盘后把文件名写入设置，同一请求多个文件时保留最后一个
// @Tags 设置
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "logo 文件"
// @Success 200 {object} pkgapp.Res{data=dto.LogoUploadDTO} "成功"
// @Router /api/settings/logo [post]
func (h *LogoHandler) Upload(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	// 获取请求上下文
	ctx := c.Request.Context()

	result, err := h.App.LogoService.Upload(ctx, c.Request)
	if err != nil {
		h.logError(ctx, "LogoHandler.Upload", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	h.broadcastView(ctx)

	response.ToResponse(code.Success.WithData(result))
}

// Delete 删除店铺 logo
// @Summary 删除店铺 logo
// @Description 删除存储里的 logo 文件并清空设置里的引用，未设置 logo 时为空操作
// @Tags 设置
// @Produce json
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/settings/logo [delete]
func (h *LogoHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	// 获取请求上下文
	ctx := c.Request.Context()

	if err := h.App.LogoService.Delete(ctx); err != nil {
		h.logError(ctx, "LogoHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	h.broadcastView(ctx)

	response.ToResponse(code.Success)
}

// broadcastView 读取刷新后的视图并推送给 WebSocket 客户端
// 读取失败只记录，不影响已完成的变更响应
func (h *LogoHandler) broadcastView(ctx context.Context) {
	if h.WSS == nil || h.WSS.ClientCount() == 0 {
		return
	}
	view, err := h.App.SettingsService.GetView(ctx)
	if err != nil {
		h.logError(ctx, "LogoHandler.broadcastView", err)
		return
	}
	BroadcastSettingsChanged(h.App, h.WSS, view)
}

// logError 记录错误日志，包含 Trace ID
func (h *LogoHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
