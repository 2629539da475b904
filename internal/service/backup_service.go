// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kiyensi/store-settings-service/pkg/logger"
	"github.com/kiyensi/store-settings-service/pkg/storage"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// backupObjectPrefix 备份对象在存储后端中的目录前缀
const backupObjectPrefix = "backups/"

// SnapshotFunc 把数据库的一致性快照写到目标路径
// 目标文件不能预先存在
type SnapshotFunc func(ctx context.Context, dst string) error

// BackupService defines the scheduled database backup service
// BackupService 定时把数据库快照上传到存储后端
type BackupService interface {
	// Start 按 cron 表达式启动调度，未启用时为空操作
	Start() error

	// RunOnce 立即执行一次备份，返回上传的对象键
	RunOnce(ctx context.Context) (string, error)

	// Shutdown 停止调度并等待进行中的备份结束
	Shutdown(ctx context.Context) error
}

// backupService 实现 BackupService 接口
type backupService struct {
	snapshot SnapshotFunc
	store    storage.Storager
	config   *ServiceConfig
	logger   *zap.Logger
	cron     *cron.Cron
	localDir string // localfs 后端的备份落盘目录，其余后端为空
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewBackupService creates BackupService instance
// 创建 BackupService 实例，localDir 仅在本地存储后端时传入，用于保留份数修剪
func NewBackupService(snapshot SnapshotFunc, store storage.Storager, localDir string, config *ServiceConfig, log *zap.Logger) BackupService {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &backupService{
		snapshot: snapshot,
		store:    store,
		config:   config,
		logger:   log,
		localDir: localDir,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start 启动定时调度
func (s *backupService) Start() error {
	if !s.config.Backup.IsEnable || s.config.Backup.Cron == "" {
		return nil
	}

	// 上一轮还没结束时跳过本轮，避免备份相互叠加
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.config.Backup.Cron, s.runScheduled); err != nil {
		return err
	}
	s.cron = c
	c.Start()

	s.logger.Info("database backup scheduled",
		zap.String("cron", s.config.Backup.Cron),
		zap.Int("keep", s.config.Backup.Keep),
	)
	return nil
}

func (s *backupService) runScheduled() {
	key, err := s.RunOnce(s.ctx)
	if err != nil {
		s.logger.Error("scheduled backup failed",
			zap.String(logger.FieldMethod, "BackupService.RunOnce"),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("scheduled backup finished", zap.String(logger.FieldFileKey, key))
}

// RunOnce 执行一次备份
// 快照先完整落盘，再整体上传，失败时不留下半成品对象
func (s *backupService) RunOnce(ctx context.Context) (string, error) {
	start := time.Now().UTC()

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("settings-backup-%d.db", start.UnixNano()))
	if err := s.snapshot(ctx, tmp); err != nil {
		return "", err
	}
	defer os.Remove(tmp)

	f, err := os.Open(tmp)
	if err != nil {
		return "", err
	}
	defer f.Close()

	objKey := backupObjectPrefix + start.Format("20060102-150405") + ".db"
	if _, err := s.store.SendFile(objKey, f, "application/octet-stream", start); err != nil {
		return "", err
	}

	s.pruneLocal()
	return objKey, nil
}

// pruneLocal 修剪本地备份目录到保留份数
// 备份文件名以时间戳开头，字典序即时间序
func (s *backupService) pruneLocal() {
	keep := s.config.Backup.Keep
	if s.localDir == "" || keep <= 0 {
		return
	}

	entries, err := os.ReadDir(s.localDir)
	if err != nil {
		s.logger.Warn("read backup dir failed", zap.String(logger.FieldPath, s.localDir), zap.Error(err))
		return
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".db") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return
	}
	sort.Strings(names)

	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(s.localDir, name)); err != nil {
			s.logger.Warn("prune backup failed", zap.String(logger.FieldPath, name), zap.Error(err))
		}
	}
}

// Shutdown 停止调度
func (s *backupService) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.cron == nil {
		return nil
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
