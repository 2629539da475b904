package task

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kiyensi/store-settings-service/internal/app"
	pkgapp "github.com/kiyensi/store-settings-service/pkg/app"

	"github.com/bytedance/sonic"
	"golang.org/x/mod/semver"
)

const (
	// ServiceVersionURL 最新发布版本徽标接口
	ServiceVersionURL = "https://img.shields.io/github/v/release/kiyensi/store-settings-service.json"
)

type ShieldsJSON struct {
	Message string `json:"message"`
}

// CheckVersionTask 新版本检查任务
type CheckVersionTask struct {
	app      *app.App
	interval time.Duration
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewCheckVersionTask(appContainer)
	})
}

// NewCheckVersionTask 创建版本检查任务，配置关闭时返回 nil
func NewCheckVersionTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config()
	if !cfg.VersionCheck.IsEnable {
		return nil, nil
	}
	return &CheckVersionTask{
		app:      appContainer,
		interval: cfg.GetVersionCheckInterval(),
	}, nil
}

func (t *CheckVersionTask) Name() string {
	return "check_version"
}

func (t *CheckVersionTask) Run(ctx context.Context) error {
	latest, err := t.fetchVersion(ctx, ServiceVersionURL)
	if err != nil {
		return err
	}

	current := t.app.Version().Version
	if !strings.HasPrefix(current, "v") {
		current = "v" + current
	}
	if !strings.HasPrefix(latest, "v") {
		latest = "v" + latest
	}

	info := pkgapp.CheckVersionInfo{
		VersionNewName: latest,
		VersionIsNew:   semver.Compare(latest, current) > 0,
	}

	// 更新 App 中的版本信息
	t.app.SetCheckVersionInfo(info)

	return nil
}

func (t *CheckVersionTask) fetchVersion(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var sj ShieldsJSON
	if err := sonic.Unmarshal(body, &sj); err != nil {
		return "", err
	}

	return sj.Message, nil
}

func (t *CheckVersionTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *CheckVersionTask) IsStartupRun() bool {
	return true
}
