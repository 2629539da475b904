package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/kiyensi/store-settings-service/internal/app"
	"github.com/kiyensi/store-settings-service/internal/dto"
	pkgapp "github.com/kiyensi/store-settings-service/pkg/app"
	"github.com/kiyensi/store-settings-service/pkg/code"
)

// VersionHandler version info API router handler
// VersionHandler 版本信息 API 路由处理器
// Uses App Container to inject dependencies
// 使用 App Container 注入依赖
type VersionHandler struct {
	*Handler
}

// NewVersionHandler creates VersionHandler instance
// NewVersionHandler 创建 VersionHandler 实例
func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{
		Handler: NewHandler(a),
	}
}

// ServerVersion retrieves server version information
// @Summary Get server version info
// @Description Get current server software version, Git tag, build time and update availability
// @Tags System
// @Produce json
// @Param client query string false "client version for compatibility check" example(v1.2.0)
// @Success 200 {object} pkgapp.Res{data=dto.VersionDTO} "Success"
// @Router /api/version [get]
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.VersionCheckRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	versionInfo := h.App.Version()
	checkInfo := h.App.CheckVersion(params.Client)
	response.ToResponse(code.Success.WithData(dto.VersionDTO{
		Version:        versionInfo.Version,
		GitTag:         versionInfo.GitTag,
		BuildTime:      versionInfo.BuildTime,
		VersionIsNew:   checkInfo.VersionIsNew,
		VersionNewName: checkInfo.VersionNewName,
		VersionNewLink: checkInfo.VersionNewLink,
	}))
}
