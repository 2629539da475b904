// Package config 定义应用配置结构
package config

import (
	"github.com/kiyensi/store-settings-service/pkg/storage"
)

// StorageConfig storage backend configuration, type selects the single active backend
// StorageConfig 存储后端配置，type 决定唯一生效的后端
type StorageConfig struct {
	Type string `yaml:"type" default:"localfs"`

	LocalFS      StorageLocalFSConfig `yaml:"local-fs"`
	AliyunOSS    StorageCloudConfig   `yaml:"aliyun-oss"`
	AwsS3        StorageCloudConfig   `yaml:"aws-s3"`
	CloudflareR2 StorageCloudConfig   `yaml:"cloudflare-r2"`
	MinIO        StorageCloudConfig   `yaml:"minio"`
	WebDAV       StorageWebDAVConfig  `yaml:"webdav"`
}

// StorageLocalFSConfig Local file system storage configuration
// StorageLocalFSConfig 本地文件系统存储配置
type StorageLocalFSConfig struct {
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
	SavePath       string `yaml:"save-path" default:"storage/uploads"`
	CustomPath     string `yaml:"custom-path"`
}

// StorageCloudConfig S3 API 族云存储配置（aws-s3 / cloudflare-r2 / minio / aliyun-oss）
// account-id 仅 R2 使用，endpoint 对 aws-s3 无效
type StorageCloudConfig struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccountID       string `yaml:"account-id"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

// StorageWebDAVConfig WebDAV 存储配置
type StorageWebDAVConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Path       string `yaml:"path"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

// Unified 把当前生效后端的配置映射为统一存储配置
func (c *StorageConfig) Unified() *storage.Config {
	out := &storage.Config{
		Type:      c.Type,
		IsEnabled: true,
	}
	switch c.Type {
	case storage.LOCAL:
		out.HttpfsIsEnable = c.LocalFS.HttpfsIsEnable
		out.SavePath = c.LocalFS.SavePath
		out.CustomPath = c.LocalFS.CustomPath
	case storage.OSS:
		out.Endpoint = c.AliyunOSS.Endpoint
		out.BucketName = c.AliyunOSS.BucketName
		out.AccessKeyID = c.AliyunOSS.AccessKeyID
		out.AccessKeySecret = c.AliyunOSS.AccessKeySecret
		out.CustomPath = c.AliyunOSS.CustomPath
	case storage.S3:
		out.Region = c.AwsS3.Region
		out.BucketName = c.AwsS3.BucketName
		out.AccessKeyID = c.AwsS3.AccessKeyID
		out.AccessKeySecret = c.AwsS3.AccessKeySecret
		out.CustomPath = c.AwsS3.CustomPath
	case storage.R2:
		out.AccountID = c.CloudflareR2.AccountID
		out.BucketName = c.CloudflareR2.BucketName
		out.AccessKeyID = c.CloudflareR2.AccessKeyID
		out.AccessKeySecret = c.CloudflareR2.AccessKeySecret
		out.CustomPath = c.CloudflareR2.CustomPath
	case storage.MinIO:
		out.Endpoint = c.MinIO.Endpoint
		out.Region = c.MinIO.Region
		out.BucketName = c.MinIO.BucketName
		out.AccessKeyID = c.MinIO.AccessKeyID
		out.AccessKeySecret = c.MinIO.AccessKeySecret
		out.CustomPath = c.MinIO.CustomPath
	case storage.WebDAV:
		out.Endpoint = c.WebDAV.Endpoint
		out.Path = c.WebDAV.Path
		out.User = c.WebDAV.User
		out.Password = c.WebDAV.Password
		out.CustomPath = c.WebDAV.CustomPath
	}
	return out
}
