package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kiyensi/store-settings-service/pkg/storage/local_fs"
)

func newTestBackupService(t *testing.T, snapshot SnapshotFunc, keep int) (BackupService, string) {
	t.Helper()
	saveDir := t.TempDir()
	store, err := local_fs.NewClient(&local_fs.Config{SavePath: saveDir})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	cfg := &ServiceConfig{Backup: BackupServiceConfig{IsEnable: true, Cron: "0 3 * * *", Keep: keep}}
	localDir := filepath.Join(saveDir, "backups")
	return NewBackupService(snapshot, store, localDir, cfg, nil), saveDir
}

func TestBackupRunOnce_UploadsSnapshot(t *testing.T) {
	ctx := context.Background()
	content := []byte("sqlite-snapshot-bytes")
	snapshot := func(ctx context.Context, dst string) error {
		return os.WriteFile(dst, content, 0644)
	}
	svc, saveDir := newTestBackupService(t, snapshot, 0)

	key, err := svc.RunOnce(ctx)
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if !strings.HasPrefix(key, "backups/") || !strings.HasSuffix(key, ".db") {
		t.Errorf("unexpected object key: %q", key)
	}

	saved, err := os.ReadFile(filepath.Join(saveDir, key))
	if err != nil {
		t.Fatalf("backup object missing: %v", err)
	}
	if string(saved) != string(content) {
		t.Errorf("backup content mismatch: got %q", saved)
	}
}

func TestBackupRunOnce_SnapshotFailure(t *testing.T) {
	ctx := context.Background()
	snapshot := func(ctx context.Context, dst string) error {
		return errors.New("database locked")
	}
	svc, saveDir := newTestBackupService(t, snapshot, 0)

	if _, err := svc.RunOnce(ctx); err == nil {
		t.Fatal("expected snapshot error")
	}
	entries, _ := os.ReadDir(filepath.Join(saveDir, "backups"))
	if len(entries) != 0 {
		t.Errorf("failed backup left objects behind: %v", entries)
	}
}

func TestBackupPruneLocal_KeepsNewest(t *testing.T) {
	ctx := context.Background()
	snapshot := func(ctx context.Context, dst string) error {
		return os.WriteFile(dst, []byte("x"), 0644)
	}
	svc, saveDir := newTestBackupService(t, snapshot, 2)

	backupDir := filepath.Join(saveDir, "backups")
	if err := os.MkdirAll(backupDir, 0754); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	// 预置三份更早的备份，时间戳命名保证字典序即时间序
	for _, name := range []string{"20230101-000000.db", "20230102-000000.db", "20230103-000000.db"} {
		if err := os.WriteFile(filepath.Join(backupDir, name), []byte("old"), 0644); err != nil {
			t.Fatalf("seed backup failed: %v", err)
		}
	}

	if _, err := svc.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("read backup dir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 backups kept, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Name() == "20230101-000000.db" || e.Name() == "20230102-000000.db" {
			t.Errorf("old backup not pruned: %s", e.Name())
		}
	}
}

func TestBackupStart_DisabledIsNoop(t *testing.T) {
	cfg := &ServiceConfig{Backup: BackupServiceConfig{IsEnable: false}}
	svc := NewBackupService(nil, nil, "", cfg, nil)
	if err := svc.Start(); err != nil {
		t.Fatalf("disabled Start should be a no-op, got %v", err)
	}
	if err := svc.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
}

func TestBackupStart_InvalidCron(t *testing.T) {
	cfg := &ServiceConfig{Backup: BackupServiceConfig{IsEnable: true, Cron: "not-a-cron"}}
	svc := NewBackupService(nil, nil, "", cfg, nil)
	if err := svc.Start(); err == nil {
		t.Fatal("expected cron parse error")
	}
}
