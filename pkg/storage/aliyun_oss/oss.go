package aliyun_oss

import (
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type OSS struct {
	Client *oss.Client
	Bucket *oss.Bucket
	Config *Config
	logger *zap.Logger
}

// Option 配置选项函数类型
type Option func(*OSS)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(o *OSS) {
		o.logger = logger
	}
}

var clients = make(map[string]*OSS)

// NewClient 创建 OSS 存储实例
// opts 可选参数用于配置日志器等选项
func NewClient(cf *Config, opts ...Option) (*OSS, error) {
	accessKeyId := cf.AccessKeyID

	if clients[accessKeyId] != nil {
		for _, opt := range opts {
			opt(clients[accessKeyId])
		}
		return clients[accessKeyId], nil
	}

	client, err := oss.New(cf.Endpoint, accessKeyId, cf.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}

	clients[accessKeyId] = &OSS{
		Client: client,
		Config: cf,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(clients[accessKeyId])
	}
	return clients[accessKeyId], nil
}
