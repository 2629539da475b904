package task

import (
	"context"
	"os"
	"time"

	"github.com/kiyensi/store-settings-service/internal/app"
	"github.com/kiyensi/store-settings-service/internal/service"
	"github.com/kiyensi/store-settings-service/pkg/logger"
	"github.com/kiyensi/store-settings-service/pkg/storage"

	"go.uber.org/zap"
)

// LogoOrphanReportTask 未引用 logo 文件统计任务
// 只统计不删除，换 logo 留下的旧文件仍由运维决定去留
type LogoOrphanReportTask struct {
	logger          *zap.Logger
	settingsService service.SettingsService
	uploadDir       string
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewLogoOrphanReportTask(appContainer)
	})
}

// NewLogoOrphanReportTask 创建统计任务，仅本地存储后端有可扫描目录
func NewLogoOrphanReportTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config()
	if cfg.Storage.Type != storage.LOCAL {
		return nil, nil
	}
	return &LogoOrphanReportTask{
		logger:          appContainer.Logger(),
		settingsService: appContainer.SettingsService,
		uploadDir:       cfg.Storage.LocalFS.SavePath,
	}, nil
}

func (t *LogoOrphanReportTask) Name() string {
	return "logo_orphan_report"
}

func (t *LogoOrphanReportTask) LoopInterval() time.Duration {
	return 24 * time.Hour
}

func (t *LogoOrphanReportTask) IsStartupRun() bool {
	return true
}

// Run 扫描上传目录，统计未被 logo_file 引用的文件数量和体积
func (t *LogoOrphanReportTask) Run(ctx context.Context) error {
	view, err := t.settingsService.GetView(ctx)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(t.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var count int
	var size int64
	for _, entry := range entries {
		// 备份等子目录不属于 logo 上传平面
		if entry.IsDir() {
			continue
		}
		if entry.Name() == view.LogoFile {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		count++
		size += info.Size()
	}

	if count > 0 {
		t.logger.Info("unreferenced logo files found",
			zap.Int("count", count),
			zap.Int64(logger.FieldSize, size),
			zap.String(logger.FieldPath, t.uploadDir))
	}
	return nil
}
