package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kiyensi/store-settings-service/internal/domain"
	"github.com/kiyensi/store-settings-service/pkg/code"
	"github.com/kiyensi/store-settings-service/pkg/storage"
	"github.com/kiyensi/store-settings-service/pkg/storage/local_fs"
)

func newTestLogoService(t *testing.T, repo domain.SettingsRepository, allowExts []string, maxSize int64) (LogoService, string) {
	t.Helper()
	saveDir := t.TempDir()
	store, err := local_fs.NewClient(&local_fs.Config{SavePath: saveDir})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	cfg := &ServiceConfig{App: AppServiceConfig{
		UploadUrlPath:   "content/uploads",
		UploadMaxSize:   maxSize,
		UploadAllowExts: allowExts,
		TempPath:        t.TempDir(),
	}}
	settings := NewSettingsService(repo, cfg)
	return NewLogoService(settings, store, cfg), saveDir
}

// multipartUpload 构造带文件分片的 multipart 请求，files 按出现顺序写入
func multipartUpload(t *testing.T, files [][2]string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("WriteField failed: %v", err)
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile("file", f[0])
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		if _, err := fw.Write([]byte(f[1])); err != nil {
			t.Fatalf("write part failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/settings/logo", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func wantCodeError(t *testing.T, err error, want *code.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code %d, got none", want.Code())
	}
	var codeErr *code.Code
	if !errors.As(err, &codeErr) {
		t.Fatalf("expected code error, got %T: %v", err, err)
	}
	if codeErr.Code() != want.Code() {
		t.Errorf("error code mismatch: got %d, want %d", codeErr.Code(), want.Code())
	}
}

func TestLogoUpload_SavesFileAndUpdatesSettings(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{}
	svc, saveDir := newTestLogoService(t, repo, nil, 0)

	content := "fake-png-bytes"
	req := multipartUpload(t, [][2]string{{"logo.png", content}}, nil)

	res, err := svc.Upload(ctx, req)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if res.File != "logo.png" {
		t.Errorf("file name mismatch: got %q", res.File)
	}
	if res.Size != int64(len(content)) {
		t.Errorf("size mismatch: got %d, want %d", res.Size, len(content))
	}

	saved, err := os.ReadFile(filepath.Join(saveDir, "logo.png"))
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if string(saved) != content {
		t.Errorf("saved content mismatch: got %q", saved)
	}
	if repo.fields["logo_file"] != "logo.png" {
		t.Errorf("settings reference not updated: got %v", repo.fields["logo_file"])
	}
}

func TestLogoUpload_LastFileWins(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{}
	svc, saveDir := newTestLogoService(t, repo, nil, 0)

	req := multipartUpload(t, [][2]string{
		{"first.png", "first-content"},
		{"second.png", "second-content"},
	}, nil)

	res, err := svc.Upload(ctx, req)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if res.File != "second.png" {
		t.Errorf("expected last file to win, got %q", res.File)
	}

	if _, err := os.Stat(filepath.Join(saveDir, "first.png")); !os.IsNotExist(err) {
		t.Error("earlier file should not be persisted")
	}
	saved, err := os.ReadFile(filepath.Join(saveDir, "second.png"))
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if string(saved) != "second-content" {
		t.Errorf("saved content mismatch: got %q", saved)
	}
	if repo.fields["logo_file"] != "second.png" {
		t.Errorf("settings reference mismatch: got %v", repo.fields["logo_file"])
	}
}

func TestLogoUpload_NoFilePart(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{}
	svc, _ := newTestLogoService(t, repo, nil, 0)

	req := multipartUpload(t, nil, map[string]string{"note": "hi"})

	_, err := svc.Upload(ctx, req)
	wantCodeError(t, err, code.ErrorUploadFileMissing)
	if repo.creates != 0 || repo.upserts != 0 {
		t.Errorf("settings touched on failed upload: creates=%d upserts=%d", repo.creates, repo.upserts)
	}
}

func TestLogoUpload_DisallowedExtension(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{}
	svc, saveDir := newTestLogoService(t, repo, []string{".png", ".jpg"}, 0)

	req := multipartUpload(t, [][2]string{{"payload.exe", "MZ"}}, nil)

	_, err := svc.Upload(ctx, req)
	wantCodeError(t, err, code.ErrorUploadFileTypeNotSupport)
	if repo.upserts != 0 {
		t.Error("settings touched on rejected upload")
	}
	entries, _ := os.ReadDir(saveDir)
	if len(entries) != 0 {
		t.Errorf("rejected upload left files behind: %v", entries)
	}
}

func TestLogoUpload_ExceedsMaxSize(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{}
	svc, _ := newTestLogoService(t, repo, nil, 8)

	req := multipartUpload(t, [][2]string{{"big.png", "0123456789abcdef"}}, nil)

	_, err := svc.Upload(ctx, req)
	wantCodeError(t, err, code.ErrorUploadFileExceedMaxSize)
	if repo.upserts != 0 {
		t.Error("settings touched on rejected upload")
	}
}

func TestLogoDelete_RemovesFileAndClearsReference(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{
		hasDoc: true,
		fields: map[string]any{"logo_file": "logo.png"},
	}
	svc, saveDir := newTestLogoService(t, repo, nil, 0)

	target := filepath.Join(saveDir, "logo.png")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatalf("seed file failed: %v", err)
	}

	if err := svc.Delete(ctx); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("logo file should be removed from storage")
	}
	if repo.fields["logo_file"] != "" {
		t.Errorf("reference not cleared: got %v", repo.fields["logo_file"])
	}
}

func TestLogoDelete_NoLogoIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{}
	svc, _ := newTestLogoService(t, repo, nil, 0)

	if err := svc.Delete(ctx); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if repo.creates != 0 || repo.upserts != 0 {
		t.Errorf("no-op delete touched settings: creates=%d upserts=%d", repo.creates, repo.upserts)
	}
}

type failingStore struct {
	storage.Storager
}

func (f *failingStore) Delete(fileKey string) error {
	return errors.New("backend unavailable")
}

func TestLogoDelete_StorageFailureStillClearsReference(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{
		hasDoc: true,
		fields: map[string]any{"logo_file": "logo.png"},
	}
	cfg := &ServiceConfig{App: AppServiceConfig{UploadUrlPath: "content/uploads"}}
	settings := NewSettingsService(repo, cfg)
	svc := &logoService{settingsService: settings, store: &failingStore{}, config: cfg}

	if err := svc.Delete(ctx); err != nil {
		t.Fatalf("Delete should swallow storage failures, got %v", err)
	}
	if repo.fields["logo_file"] != "" {
		t.Errorf("reference not cleared: got %v", repo.fields["logo_file"])
	}
}
