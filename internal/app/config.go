// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kiyensi/store-settings-service/internal/config"
	"github.com/kiyensi/store-settings-service/pkg/util"
	"github.com/kiyensi/store-settings-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File         string               `yaml:"-"` // 配置文件路径，不序列化
	Server       ServerConfig         `yaml:"server"`
	Log          LogConfig            `yaml:"log"`
	Database     DatabaseConfig       `yaml:"database"`
	App          AppSettings          `yaml:"app"`
	Storage      config.StorageConfig `yaml:"storage"`
	Backup       BackupConfig         `yaml:"backup"`
	VersionCheck VersionCheckConfig   `yaml:"version-check"`
	Tracer       TracerConfig         `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，支持格式：10m（分钟）、1h（小时），默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// TempPath 上传临时路径
	TempPath string `yaml:"temp-path" default:"storage/temp"`
	// TempRetentionTime 临时文件保留时间，支持格式：24h（小时）、7d（天），空表示不自动清理
	TempRetentionTime string `yaml:"temp-retention-time" default:"24h"`
	// UploadSavePath 上传保存路径
	UploadSavePath string `yaml:"upload-save-path" default:"storage/uploads"`
	// UploadUrlPath 资源 URL 路径段，视图里的 logo 地址由商店域名和该路径段拼接
	UploadUrlPath string `yaml:"upload-url-path" default:"content/uploads"`
	// UploadMaxSize 单次上传大小上限，支持格式：512KB、2MB，空表示不限制
	UploadMaxSize string `yaml:"upload-max-size" default:"2MB"`
	// UploadAllowExts 允许上传的扩展名，空表示不限制
	UploadAllowExts []string `yaml:"upload-allow-exts" default:"[\".png\", \".jpg\", \".jpeg\", \".gif\", \".webp\", \".svg\", \".ico\"]"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
}

// BackupConfig 数据库定时备份配置
type BackupConfig struct {
	// IsEnable 是否启用定时备份
	IsEnable bool `yaml:"is-enable" default:"false"`
	// Cron 标准五段 cron 表达式
	Cron string `yaml:"cron" default:"0 3 * * *"`
	// Keep 本地备份保留份数，0 表示全部保留
	Keep int `yaml:"keep" default:"7"`
}

// VersionCheckConfig 新版本检查配置
type VersionCheckConfig struct {
	// IsEnable 是否启用新版本检查
	IsEnable bool `yaml:"is-enable" default:"true"`
	// Interval 检查间隔，支持格式：30m（分钟）、1h（小时）
	Interval string `yaml:"interval" default:"30m"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}

	return cfg
}

// GetUploadMaxSize 获取上传大小上限（字节），0 表示不限制
func (c *AppConfig) GetUploadMaxSize() int64 {
	if c.App.UploadMaxSize == "" {
		return 0
	}
	return util.ParseSize(c.App.UploadMaxSize, 2*1024*1024)
}

// GetVersionCheckInterval 获取版本检查间隔
func (c *AppConfig) GetVersionCheckInterval() time.Duration {
	if interval, err := util.ParseDuration(c.VersionCheck.Interval); err == nil && interval > 0 {
		return interval
	}
	return 30 * time.Minute // 理论上不会走到这里，因为有默认值
}
