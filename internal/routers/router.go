// Package routers 组装 HTTP 路由和中间件链
package routers

import (
	"net/http"
	"time"

	_ "github.com/kiyensi/store-settings-service/docs"
	"github.com/kiyensi/store-settings-service/internal/app"
	"github.com/kiyensi/store-settings-service/internal/dto"
	"github.com/kiyensi/store-settings-service/internal/middleware"
	"github.com/kiyensi/store-settings-service/internal/routers/api_router"
	"github.com/kiyensi/store-settings-service/internal/routers/websocket_router"
	pkgapp "github.com/kiyensi/store-settings-service/pkg/app"
	"github.com/kiyensi/store-settings-service/pkg/limiter"
	"github.com/kiyensi/store-settings-service/pkg/storage"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/lxzan/gws"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// 写接口限流，读接口不限
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/settings",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	var wss = pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			CheckUtf8Enabled:    true,
			ParallelEnabled:     true,                                 // 开启并行消息处理
			Recovery:            gws.Recovery,                         // 开启异常恢复
			PermessageDeflate:   gws.PermessageDeflate{Enabled: true}, // 开启压缩
			ParallelGolimit:     8,
			ReadMaxPayloadSize:  1024 * 1024,
			WriteMaxPayloadSize: 1024 * 1024,
		},
		Logger: appContainer.Logger(),
	})

	// 创建 WebSocket Handlers（注入 App Container）
	settingsWSHandler := websocket_router.NewSettingsWSHandler(appContainer)

	// 视图按需读取
	wss.Use(dto.SettingsGet, settingsWSHandler.SettingsGet)

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		settingsHandler := api_router.NewSettingsHandler(appContainer, wss)
		logoHandler := api_router.NewLogoHandler(appContainer, wss)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.GET("/settings", settingsHandler.Get)
		api.POST("/settings", settingsHandler.Update)
		api.POST("/settings/logo", logoHandler.Upload)
		api.DELETE("/settings/logo", logoHandler.Delete)

		// 变更推送通道
		api.GET("/settings/ws", wss.Run())

		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)
	}

	// 本地存储时由服务自身托管上传目录，logo 地址的路径段与此一致
	if cfg.Storage.Type == storage.LOCAL && cfg.App.UploadSavePath != "" {
		r.StaticFS("/"+cfg.App.UploadUrlPath, http.Dir(cfg.App.UploadSavePath))
	}

	if cfg.Server.RunMode == "debug" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
