package aws_s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type S3 struct {
	S3Client  *s3.Client
	S3Manager *manager.Uploader
	Config    *Config
	logger    *zap.Logger
}

// Option 配置选项函数类型
type Option func(*S3)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(s *S3) {
		s.logger = logger
	}
}

// 同一凭证复用同一个客户端
var clients = make(map[string]*S3)

// NewClient 创建 S3 存储实例
// opts 可选参数用于配置日志器等选项
func NewClient(cf *Config, opts ...Option) (*S3, error) {
	accessKeyId := cf.AccessKeyID

	if clients[accessKeyId] != nil {
		for _, opt := range opts {
			opt(clients[accessKeyId])
		}
		return clients[accessKeyId], nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyId, cf.AccessKeySecret, "")),
		config.WithRegion(cf.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {})

	clients[accessKeyId] = &S3{
		S3Client:  client,
		S3Manager: manager.NewUploader(client),
		Config:    cf,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(clients[accessKeyId])
	}
	return clients[accessKeyId], nil
}

// GetBucket 返回目标存储桶，空值时回退到配置的默认桶
func (p *S3) GetBucket(bucketName string) string {
	if len(bucketName) <= 0 {
		bucketName = p.Config.BucketName
	}
	return bucketName
}
