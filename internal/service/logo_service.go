// Package service 实现业务逻辑层
package service

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/kiyensi/store-settings-service/internal/domain"
	"github.com/kiyensi/store-settings-service/internal/dto"
	"github.com/kiyensi/store-settings-service/pkg/code"
	"github.com/kiyensi/store-settings-service/pkg/fileurl"
	"github.com/kiyensi/store-settings-service/pkg/logger"
	"github.com/kiyensi/store-settings-service/pkg/storage"

	"go.uber.org/zap"
)

// LogoService 定义 Logo 文件业务服务接口
type LogoService interface {
	// Upload 流式读取 multipart 请求，保存 Logo 文件并更新设置引用
	// 同一请求携带多个文件时，后出现的覆盖先出现的
	Upload(ctx context.Context, r *http.Request) (*dto.LogoUploadDTO, error)

	// Delete 删除 Logo 文件并清空设置中的引用
	// 文件删除失败不阻断引用清理；未设置 Logo 时不做任何事
	Delete(ctx context.Context) error
}

// logoService 实现 LogoService 接口
type logoService struct {
	settingsService SettingsService
	store           storage.Storager
	config          *ServiceConfig
}

// NewLogoService 创建 LogoService 实例
func NewLogoService(settingsService SettingsService, store storage.Storager, config *ServiceConfig) LogoService {
	return &logoService{
		settingsService: settingsService,
		store:           store,
		config:          config,
	}
}

// Upload 流式处理上传
// 文件先完整落到临时盘，再写入存储并更新设置，引用永不指向半写文件
func (s *logoService) Upload(ctx context.Context, r *http.Request) (*dto.LogoUploadDTO, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}

	var (
		fileName string
		cType    string
		size     int64
		spool    *os.File
	)
	defer func() {
		if spool != nil {
			spool.Close()
			os.Remove(spool.Name())
		}
	}()

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
		}
		if part.FileName() == "" {
			// 非文件字段忽略
			continue
		}

		name := fileurl.SafeFileName(part.FileName())
		if len(s.config.App.UploadAllowExts) > 0 &&
			!fileurl.IsContainExt(fileurl.ImageType, name, s.config.App.UploadAllowExts) {
			return nil, code.ErrorUploadFileTypeNotSupport.WithDetails(fileurl.GetFileExt(name))
		}

		// 后出现的文件覆盖之前的落盘内容
		if spool != nil {
			spool.Close()
			os.Remove(spool.Name())
			spool = nil
		}

		tmp, written, err := s.spoolPart(part)
		if err != nil {
			return nil, err
		}
		spool = tmp
		fileName = name
		size = written
		if cType = part.Header.Get("Content-Type"); cType == "" {
			cType = "application/octet-stream"
		}
	}

	if fileName == "" {
		return nil, code.ErrorUploadFileMissing
	}

	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}
	if _, err := s.store.SendFile(fileName, spool, cType, time.Now().UTC()); err != nil {
		return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}

	if _, err := s.settingsService.Update(ctx, map[string]any{domain.FieldLogoFile: fileName}); err != nil {
		return nil, err
	}
	return &dto.LogoUploadDTO{File: fileName, Size: size}, nil
}

// spoolPart 把一个文件分片完整写入临时文件并返回写入字节数
func (s *logoService) spoolPart(part *multipart.Part) (*os.File, int64, error) {
	if err := os.MkdirAll(s.config.App.TempPath, 0754); err != nil {
		return nil, 0, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}
	tmp, err := os.CreateTemp(s.config.App.TempPath, "logo-*.upload")
	if err != nil {
		return nil, 0, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}

	var src io.Reader = part
	maxSize := s.config.App.UploadMaxSize
	if maxSize > 0 {
		// 多读一个字节以区分恰好等于上限和超限
		src = io.LimitReader(part, maxSize+1)
	}

	written, err := io.Copy(tmp, src)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, 0, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}
	if maxSize > 0 && written > maxSize {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, 0, code.ErrorUploadFileExceedMaxSize
	}
	return tmp, written, nil
}

// Delete 删除 Logo 文件并清空引用
func (s *logoService) Delete(ctx context.Context) error {
	view, err := s.settingsService.GetView(ctx)
	if err != nil {
		return err
	}
	if view.LogoFile == "" {
		return nil
	}

	if err := s.store.Delete(view.LogoFile); err != nil {
		// 存储侧删除失败只记录，引用照常清空
		zap.L().Warn("delete logo file failed",
			zap.String(logger.FieldFileKey, view.LogoFile),
			zap.String(logger.FieldMethod, "LogoService.Delete"),
			zap.Error(err),
		)
	}

	if _, err := s.settingsService.Update(ctx, map[string]any{domain.FieldLogoFile: nil}); err != nil {
		return err
	}
	return nil
}
