// Package service 实现业务逻辑层
package service

import (
	"context"
	"strings"

	"github.com/kiyensi/store-settings-service/internal/domain"
	"github.com/kiyensi/store-settings-service/internal/dto"
	"github.com/kiyensi/store-settings-service/pkg/code"
	"github.com/kiyensi/store-settings-service/pkg/convert"
	apperrors "github.com/kiyensi/store-settings-service/pkg/errors"
	"github.com/kiyensi/store-settings-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// settingsViewKey singleflight key，全量视图只有一份
const settingsViewKey = "settings:view"

// SettingsService 定义店铺设置业务服务接口
type SettingsService interface {
	// GetView 返回完整设置视图，未持久化的字段取默认值
	GetView(ctx context.Context) (*dto.SettingsDTO, error)

	// Update 校验并持久化设置变更，返回刷新后的视图
	Update(ctx context.Context, input map[string]any) (*dto.SettingsDTO, error)
}

// settingsService 实现 SettingsService 接口
type settingsService struct {
	settingsRepo domain.SettingsRepository
	sf           *singleflight.Group
	config       *ServiceConfig
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(settingsRepo domain.SettingsRepository, config *ServiceConfig) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		sf:           &singleflight.Group{},
		config:       config,
	}
}

// GetView 返回完整设置视图
// 并发读共享同一次装载
func (s *settingsService) GetView(ctx context.Context) (*dto.SettingsDTO, error) {
	v, err, _ := s.sf.Do(settingsViewKey, func() (any, error) {
		return s.loadView(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.SettingsDTO), nil
}

// Update 校验输入，必要时先落一条完整默认记录，再合并补丁并返回刷新后的视图
func (s *settingsService) Update(ctx context.Context, input map[string]any) (*dto.SettingsDTO, error) {
	patch, err := s.buildPatch(input)
	if err != nil {
		return nil, err
	}

	count, err := s.settingsRepo.Count(ctx)
	if err != nil {
		return nil, code.ErrorDatabaseOperation.WithDetails(err.Error())
	}
	if count == 0 {
		// 并发首写可能竞争建档，冲突由 upsert 的合并语义兜底，失败只记警告
		if err := s.settingsRepo.Create(ctx, domain.DefaultSettings()); err != nil {
			zap.L().Warn("seed default settings failed",
				zap.String(logger.FieldMethod, "SettingsService.Update"),
				zap.Error(err),
			)
		}
	}

	if err := s.settingsRepo.Upsert(ctx, patch); err != nil {
		return nil, code.ErrorSettingsUpdateFailed.WithDetails(err.Error())
	}

	// 写后直接装载，不与进行中的旧读共享结果
	return s.loadView(ctx)
}

// buildPatch 依据字段规则把原始输入归一为补丁
// 只遍历识别字段，识别集合之外的键静默丢弃；空输入视为校验错误
func (s *settingsService) buildPatch(input map[string]any) (map[string]any, error) {
	if len(input) == 0 {
		return nil, apperrors.NewAppErrorWithMessage(code.ErrorSettingsValidation.Code(), "empty input", nil)
	}

	patch := make(map[string]any)
	for _, field := range domain.SettingsFields() {
		value, ok := input[field]
		if !ok {
			continue
		}
		kind, known := domain.FieldRule(field)
		if !known {
			// 默认值表和规则表不一致属于编程错误，显式暴露而不是吞掉
			return nil, apperrors.NewAppErrorWithMessage(code.ErrorSettingsValidation.Code(), "unknown setting: "+field, nil)
		}
		switch kind {
		case domain.KindString:
			patch[field] = convert.ToString(value)
		case domain.KindNonNegativeInt:
			patch[field] = convert.ToNonNegativeInt(value)
		case domain.KindPositiveInt:
			patch[field] = convert.ToPositiveInt(value)
		case domain.KindBool:
			patch[field] = convert.ToBoolOr(value, false)
		}
	}
	return patch, nil
}

// loadView 读取持久化字段并叠加到默认值副本上
func (s *settingsService) loadView(ctx context.Context) (*dto.SettingsDTO, error) {
	persisted, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, code.ErrorDatabaseOperation.WithDetails(err.Error())
	}

	merged := domain.DefaultSettings()
	for field, value := range persisted {
		// 历史记录里可能混有已废弃的键，视图只认识别集合
		if domain.IsRecognizedField(field) {
			merged[field] = value
		}
	}

	view := &dto.SettingsDTO{}
	if err := convert.MapToStruct(merged, view); err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	view.Logo = s.resolveLogoURL(view.Domain, view.LogoFile)
	return view, nil
}

// resolveLogoURL 由 domain 和上传路径段拼出 Logo 的完整 URL
// 未设置 Logo 时返回 nil，domain 为空时得到根相对路径
func (s *settingsService) resolveLogoURL(domainURL string, logoFile string) *string {
	if logoFile == "" {
		return nil
	}
	parts := []string{strings.TrimSuffix(domainURL, "/")}
	if segment := strings.Trim(s.config.App.UploadUrlPath, "/"); segment != "" {
		parts = append(parts, segment)
	}
	parts = append(parts, logoFile)
	url := strings.Join(parts, "/")
	return &url
}
