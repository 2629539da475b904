package aws_s3

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/kiyensi/store-settings-service/pkg/fileurl"
	"github.com/kiyensi/store-settings-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SendFile 流式上传文件
func (p *S3) SendFile(fileKey string, file io.Reader, cType string, lastModified time.Time) (string, error) {

	bucket := p.GetBucket("")
	ctx := context.Background()

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(fileKey),
		Body:        file,
		ContentType: aws.String(cType),
	}
	if !lastModified.IsZero() {
		// 对象存储不可改 mtime，记录到元数据
		input.Metadata = map[string]string{
			"modification-time": lastModified.UTC().Format(time.RFC3339),
		}
	}

	_, err := p.S3Client.PutObject(ctx, input)
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}

	return fileKey, nil
}

// SendContent 上传内容
func (p *S3) SendContent(fileKey string, content []byte, lastModified time.Time) (string, error) {

	ctx := context.Background()
	bucket := p.GetBucket("")

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	input := &s3.PutObjectInput{
		Bucket:            aws.String(bucket),
		Key:               aws.String(fileKey),
		Body:              bytes.NewReader(content),
		ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
	}
	if !lastModified.IsZero() {
		input.Metadata = map[string]string{
			"modification-time": lastModified.UTC().Format(time.RFC3339),
		}
	}

	output, err := p.S3Manager.Upload(ctx, input)
	if err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			p.logger.Warn("Bucket does not exist",
				zap.String(logger.FieldBucket, bucket),
				zap.Error(err),
			)
			err = noBucket
		}
	} else {
		err := s3.NewObjectExistsWaiter(p.S3Client).Wait(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(fileKey),
		}, time.Minute)
		if err != nil {
			p.logger.Warn("Failed attempt to wait for object to exist",
				zap.String(logger.FieldFileKey, fileKey),
				zap.String(logger.FieldBucket, bucket),
				zap.Error(err),
			)
		} else {
			_ = *output.Key
		}
	}

	return fileKey, errors.Wrap(err, "aws_s3")
}
