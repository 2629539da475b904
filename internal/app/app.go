// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kiyensi/store-settings-service/internal/dao"
	"github.com/kiyensi/store-settings-service/internal/domain"
	"github.com/kiyensi/store-settings-service/internal/model"
	"github.com/kiyensi/store-settings-service/internal/service"
	pkgapp "github.com/kiyensi/store-settings-service/pkg/app"
	"github.com/kiyensi/store-settings-service/pkg/storage"
	"github.com/kiyensi/store-settings-service/pkg/writequeue"
	"golang.org/x/mod/semver"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// StartTime 进程启动时间，健康检查用
	StartTime time.Time

	// 并发控制组件
	writeQueue *writequeue.Queue

	// 存储后端
	Storage storage.Storager

	// Repository 层
	SettingsRepo domain.SettingsRepository

	// Service 层
	SettingsService service.SettingsService
	LogoService     service.LogoService
	BackupService   service.BackupService

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup

	// 版本检查信息
	checkVersionMu sync.RWMutex
	checkVersion   pkgapp.CheckVersionInfo
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 初始化 Write Queue
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueue = writequeue.New(&wqConfig, logger)

	// 初始化 DAO（写操作经写队列串行化）
	a.Dao = dao.New(db, logger, a.writeQueue)

	// 自动迁移
	if cfg.Database.AutoMigrate {
		if err := model.AutoMigrate(db, "StoreSettings"); err != nil {
			return nil, fmt.Errorf("auto migrate failed: %w", err)
		}
	}

	// 初始化存储后端
	store, err := storage.NewClient(cfg.Storage.Unified(), logger)
	if err != nil {
		return nil, fmt.Errorf("init storage failed: %w", err)
	}
	a.Storage = store

	// 初始化 Repository 层
	a.SettingsRepo = dao.NewSettingsRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		App: service.AppServiceConfig{
			UploadUrlPath:     cfg.App.UploadUrlPath,
			UploadMaxSize:     cfg.GetUploadMaxSize(),
			UploadAllowExts:   cfg.App.UploadAllowExts,
			TempPath:          cfg.App.TempPath,
			TempRetentionTime: cfg.App.TempRetentionTime,
		},
		Backup: service.BackupServiceConfig{
			IsEnable: cfg.Backup.IsEnable,
			Cron:     cfg.Backup.Cron,
			Keep:     cfg.Backup.Keep,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.SettingsService = service.NewSettingsService(a.SettingsRepo, svcConfig)
	a.LogoService = service.NewLogoService(a.SettingsService, a.Storage, svcConfig)

	// 备份基于 sqlite 快照，其他数据库引擎不装配
	if cfg.Database.Type == "sqlite" {
		a.BackupService = service.NewBackupService(a.Dao.SnapshotDatabase, a.Storage, a.backupLocalDir(), svcConfig, logger)
	} else if cfg.Backup.IsEnable {
		logger.Warn("scheduled backup requires sqlite, disabled",
			zap.String("databaseType", cfg.Database.Type))
	}

	logger.Info("App container initialized successfully",
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity),
		zap.String("storageType", cfg.Storage.Type))

	return a, nil
}

// backupLocalDir 本地备份目录，仅 localfs 后端需要按份数清理
func (a *App) backupLocalDir() string {
	if a.config.Storage.Type != storage.LOCAL {
		return ""
	}
	return filepath.Join(a.config.Storage.LocalFS.SavePath, "backups")
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// CheckVersion 获取新版本检查结果
// clientVersion 非空时以其为基准重新比较
func (a *App) CheckVersion(clientVersion string) pkgapp.CheckVersionInfo {
	a.checkVersionMu.RLock()
	cv := a.checkVersion
	a.checkVersionMu.RUnlock()

	if clientVersion != "" && cv.VersionNewName != "" {
		v1 := clientVersion
		if !strings.HasPrefix(v1, "v") {
			v1 = "v" + v1
		}
		v2 := cv.VersionNewName
		if !strings.HasPrefix(v2, "v") {
			v2 = "v" + v2
		}
		cv.VersionIsNew = semver.Compare(v2, v1) > 0
	}

	// 如果没有更新，把版本名称设置为空
	if !cv.VersionIsNew {
		cv.VersionNewName = ""
	}

	// 返回给客户端的版本号不带 v 前缀
	cv.VersionNewName = strings.TrimPrefix(cv.VersionNewName, "v")
	// 补充链接信息
	if cv.VersionNewLink == "" && cv.VersionNewName != "" {
		cv.VersionNewLink = "https://github.com/kiyensi/store-settings-service/releases/tag/" + cv.VersionNewName
	}

	return cv
}

// SetCheckVersionInfo 设置版本检查信息
func (a *App) SetCheckVersionInfo(info pkgapp.CheckVersionInfo) {
	a.checkVersionMu.Lock()
	defer a.checkVersionMu.Unlock()
	a.checkVersion = info
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Backup Service -> Write Queue -> 后台操作 -> Database
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 1. 停止定时备份（等待进行中的备份结束）
	if a.BackupService != nil {
		a.logger.Info("Shutting down backup service...")
		if err := a.BackupService.Shutdown(ctx); err != nil {
			a.logger.Warn("Backup service shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("backup service shutdown: %w", err))
		}
	}

	// 2. 关闭 Write Queue（排空队列中的写操作）
	if a.writeQueue != nil {
		a.logger.Info("Shutting down write queue...")
		if err := a.writeQueue.Shutdown(ctx); err != nil {
			a.logger.Warn("Write queue shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue shutdown: %w", err))
		} else {
			a.logger.Info("Write queue shutdown completed")
		}
	}

	// 3. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 4. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
