package api_router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/kiyensi/store-settings-service/internal/app"
	"github.com/kiyensi/store-settings-service/internal/dto"
	"github.com/kiyensi/store-settings-service/internal/middleware"
	pkgapp "github.com/kiyensi/store-settings-service/pkg/app"
	"github.com/kiyensi/store-settings-service/pkg/code"
	apperrors "github.com/kiyensi/store-settings-service/pkg/errors"
	"go.uber.org/zap"
)

// SettingsHandler 店铺设置 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type SettingsHandler struct {
	*Handler
}

// NewSettingsHandler 创建 SettingsHandler 实例
func NewSettingsHandler(a *app.App, wss *pkgapp.WebsocketServer) *SettingsHandler {
	return &SettingsHandler{
		Handler: NewHandlerWithWSS(a, wss),
	}
}

// Get 获取店铺设置
// @Summary 获取店铺设置
// @Description 返回完整设置视图，未持久化的字段取默认值，logo 为解析后的完整地址
// @Tags 设置
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.SettingsDTO} "成功"
// @Router /api/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	// 获取请求上下文
	ctx := c.Request.Context()

	view, err := h.App.SettingsService.GetView(ctx)
	if err != nil {
		h.logError(ctx, "SettingsHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(view))
}

// Update 更新店铺设置
// @Summary 更新店铺设置
// @Description 接收部分字段并合并到现有设置，未识别字段忽略，返回刷新后的完整视图
// @Tags 设置
// @Accept json
// @Produce json
// @Param params body object true "设置字段补丁"
// @Success 200 {object} pkgapp.Res{data=dto.SettingsDTO} "成功"
// @Router /api/settings [post]
func (h *SettingsHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	// 补丁是自由形态的部分字段对象，字段级校验在服务层完成
	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		h.App.Logger().Error("SettingsHandler.Update.BindJSON err", zap.Error(err))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	// 获取请求上下文
	ctx := c.Request.Context()

	view, err := h.App.SettingsService.Update(ctx, input)
	if err != nil {
		h.logError(ctx, "SettingsHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	BroadcastSettingsChanged(h.App, h.WSS, view)

	response.ToResponse(code.Success.WithData(view))
}

// BroadcastSettingsChanged 将刷新后的视图推送给所有 WebSocket 客户端
// 推送在后台进行，不阻塞 HTTP 响应
func BroadcastSettingsChanged(a *app.App, wss *pkgapp.WebsocketServer, view *dto.SettingsDTO) {
	if wss == nil || wss.ClientCount() == 0 {
		return
	}
	done := a.TrackOperation()
	go func() {
		defer done()
		wss.BroadcastResponse(code.Success.Clone().WithData(view), dto.SettingsChanged)
	}()
}

// logError 记录错误日志，包含 Trace ID
func (h *SettingsHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
