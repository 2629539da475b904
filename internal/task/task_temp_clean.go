package task

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/kiyensi/store-settings-service/internal/app"
	"github.com/kiyensi/store-settings-service/pkg/logger"
	"github.com/kiyensi/store-settings-service/pkg/util"

	"go.uber.org/zap"
)

// TempCleanTask 上传临时目录清理任务
// 启动时整体清空，周期运行时只删除超过保留时间的残留文件
type TempCleanTask struct {
	logger    *zap.Logger
	tempPath  string
	retention time.Duration
	firstRun  bool
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewTempCleanTask(appContainer)
	})
}

// NewTempCleanTask 创建临时目录清理任务
func NewTempCleanTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config()
	if cfg.App.TempPath == "" {
		return nil, nil
	}

	var retention time.Duration
	if cfg.App.TempRetentionTime != "" {
		if d, err := util.ParseDuration(cfg.App.TempRetentionTime); err == nil {
			retention = d
		}
	}

	return &TempCleanTask{
		logger:    appContainer.Logger(),
		tempPath:  cfg.App.TempPath,
		retention: retention,
		firstRun:  true,
	}, nil
}

// Name 任务名称
func (t *TempCleanTask) Name() string {
	return "temp_clean"
}

// LoopInterval 周期间隔，保留时间未配置时只在启动时运行
func (t *TempCleanTask) LoopInterval() time.Duration {
	return t.retention
}

// IsStartupRun 启动时立即执行
func (t *TempCleanTask) IsStartupRun() bool {
	return true
}

// Run 清理临时目录
// 首次运行整体清空，之后只删超龄文件，避免碰到进行中的上传
func (t *TempCleanTask) Run(ctx context.Context) error {
	if t.firstRun {
		t.firstRun = false
		if err := os.RemoveAll(t.tempPath); err != nil {
			return err
		}
		if err := os.MkdirAll(t.tempPath, 0754); err != nil {
			return err
		}
		t.logger.Info("temp dir cleaned", zap.String(logger.FieldPath, t.tempPath))
		return nil
	}

	entries, err := os.ReadDir(t.tempPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().Add(-t.retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(t.tempPath, entry.Name())); err != nil {
			t.logger.Warn("remove stale temp file failed",
				zap.String(logger.FieldPath, entry.Name()),
				zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		t.logger.Info("stale temp files removed",
			zap.Int("count", removed),
			zap.String(logger.FieldPath, t.tempPath))
	}
	return nil
}
