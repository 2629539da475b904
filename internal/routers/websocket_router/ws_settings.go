package websocket_router

import (
	"github.com/kiyensi/store-settings-service/internal/app"
	"github.com/kiyensi/store-settings-service/internal/dto"
	pkgapp "github.com/kiyensi/store-settings-service/pkg/app"
	"github.com/kiyensi/store-settings-service/pkg/code"
)

// SettingsWSHandler settings view WebSocket handler
// SettingsWSHandler 设置视图 WebSocket 处理器
// Uses App Container to inject dependencies
// 使用 App Container 注入依赖
type SettingsWSHandler struct {
	*WSHandler
}

// NewSettingsWSHandler creates SettingsWSHandler instance
// NewSettingsWSHandler 创建 SettingsWSHandler 实例
func NewSettingsWSHandler(a *app.App) *SettingsWSHandler {
	return &SettingsWSHandler{
		WSHandler: NewWSHandler(a),
	}
}

// SettingsGet handles settings view read messages
// SettingsGet 处理设置视图读取消息，消息体无参数
func (h *SettingsWSHandler) SettingsGet(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	ctx := c.Ctx.Request.Context()

	view, err := h.App.SettingsService.GetView(ctx)
	if err != nil {
		h.respondError(c, code.ErrorDatabaseOperation, err, "websocket_router.settings.SettingsGet.GetView")
		return
	}

	c.ToResponse(code.Success.WithData(view), dto.SettingsGet)
}
