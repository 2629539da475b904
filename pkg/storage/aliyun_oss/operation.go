package aliyun_oss

import (
	"bytes"
	"io"
	"time"

	"github.com/kiyensi/store-settings-service/pkg/fileurl"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// GetBucket 绑定目标存储桶，空值时回退到配置的默认桶
func (p *OSS) GetBucket(bucketName string) error {
	if len(bucketName) <= 0 {
		bucketName = p.Config.BucketName
	}
	var err error
	p.Bucket, err = p.Client.Bucket(bucketName)
	return err
}

// SendFile 流式上传文件
func (p *OSS) SendFile(fileKey string, file io.Reader, cType string, lastModified time.Time) (string, error) {
	if p.Bucket == nil {
		err := p.GetBucket("")
		if err != nil {
			return "", err
		}
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	options := []oss.Option{oss.ContentType(cType)}
	if !lastModified.IsZero() {
		options = append(options, oss.Meta("modification-time", lastModified.UTC().Format(time.RFC3339)))
	}

	err := p.Bucket.PutObject(fileKey, file, options...)
	if err != nil {
		return "", err
	}
	return fileKey, nil
}

// SendContent 上传内容
func (p *OSS) SendContent(fileKey string, content []byte, lastModified time.Time) (string, error) {
	if p.Bucket == nil {
		err := p.GetBucket("")
		if err != nil {
			return "", err
		}
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	var options []oss.Option
	if !lastModified.IsZero() {
		options = append(options, oss.Meta("modification-time", lastModified.UTC().Format(time.RFC3339)))
	}

	err := p.Bucket.PutObject(fileKey, bytes.NewReader(content), options...)
	if err != nil {
		return "", err
	}
	return fileKey, nil
}
