package local_fs

import "github.com/kiyensi/store-settings-service/pkg/fileurl"

// Config 本地文件系统存储配置
type Config struct {
	IsEnabled      bool   `yaml:"is-enable" default:"true"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
	SavePath       string `yaml:"save-path" default:"storage/uploads"`
	CustomPath     string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(cf *Config) (*LocalFS, error) {
	return &LocalFS{Config: cf}, nil
}

func (p *LocalFS) getSavePath() string {
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/")
}
