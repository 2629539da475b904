package local_fs

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLocalFS_SendFile(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{
		SavePath: tempDir,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	filename := "logo/store-logo.png"
	content := "fake png bytes"
	modTime := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	reader := strings.NewReader(content)

	savedPath, err := client.SendFile(filename, reader, "image/png", modTime)
	if err != nil {
		t.Fatalf("SendFile failed: %v", err)
	}

	if _, err := os.Stat(savedPath); os.IsNotExist(err) {
		t.Fatalf("File not found at %s", savedPath)
	}

	savedContent, err := os.ReadFile(savedPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if string(savedContent) != content {
		t.Errorf("Content mismatch: expected %s, got %s", content, string(savedContent))
	}

	fileInfo, err := os.Stat(savedPath)
	if err != nil {
		t.Fatalf("Failed to stat saved file: %v", err)
	}
	// Filesystem mtime precision varies, allow a second of slack
	// 文件系统 mtime 精度不一,允许一秒误差
	if !fileInfo.ModTime().Equal(modTime) {
		diff := fileInfo.ModTime().Sub(modTime)
		if diff < -time.Second || diff > time.Second {
			t.Errorf("ModTime mismatch: expected %v, got %v (diff %v)", modTime, fileInfo.ModTime(), diff)
		}
	}
}

func TestLocalFS_SendContent(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{
		SavePath: tempDir,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	// Nested key, SendContent must create the directory chain
	// 嵌套路径,SendContent 需要创建目录链
	filename := "backup/2025/store-settings.db"
	content := []byte("backup payload")
	modTime := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	savedPath, err := client.SendContent(filename, content, modTime)
	if err != nil {
		t.Fatalf("SendContent failed: %v", err)
	}

	if _, err := os.Stat(savedPath); os.IsNotExist(err) {
		t.Fatalf("File not found at %s", savedPath)
	}

	savedContent, err := os.ReadFile(savedPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(savedContent, content) {
		t.Errorf("Content mismatch: expected %s, got %s", content, string(savedContent))
	}

	fileInfo, err := os.Stat(savedPath)
	if err != nil {
		t.Fatalf("Failed to stat saved file: %v", err)
	}
	if !fileInfo.ModTime().Equal(modTime) {
		diff := fileInfo.ModTime().Sub(modTime)
		if diff < -time.Second || diff > time.Second {
			t.Errorf("ModTime mismatch: expected %v, got %v (diff %v)", modTime, fileInfo.ModTime(), diff)
		}
	}
}
