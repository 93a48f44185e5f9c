package oss

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"videotube.com/config"
)

const location = "us-east-1" // MinIO默认区域

// MinioStorage 基于MinIO的对象存储，所有媒体放在同一个bucket下按目录区分
type MinioStorage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinioStorage 按配置连接MinIO，bucket不存在时创建
func NewMinioStorage(ctx context.Context) (*MinioStorage, error) {
	c := config.ConfigInfo.Minio
	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", c.Endpoint, c.AccessKey)

	client, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return nil, err
	}

	publicBase := c.PublicBaseURL
	if publicBase == "" {
		scheme := "http"
		if c.UseSSL {
			scheme = "https"
		}
		publicBase = scheme + "://" + c.Endpoint
	}
	s := &MinioStorage{client: client, bucket: c.Bucket, publicBase: strings.TrimRight(publicBase, "/")}
	if err = s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	hlog.Info("Connect Minio Success")
	return s, nil
}

// 检查存储桶是否存在，不存在则创建
func (s *MinioStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket error: %w", err)
	}
	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return fmt.Errorf("create bucket error: %w", err)
		}
	}
	return nil
}

func (s *MinioStorage) Upload(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload error: %w", err)
	}
	defer f.Close()

	objectName := ObjectName(folder, file.Filename)
	_, err = s.client.PutObject(ctx, s.bucket, objectName, f, file.Size, minio.PutObjectOptions{ContentType: ContentType(file)})
	if err != nil {
		hlog.CtxErrorf(ctx, "upload %s to minio failed: %v", objectName, err)
		return "", err
	}
	return PublicURL(s.publicBase, s.bucket, objectName), nil
}

func (s *MinioStorage) Remove(ctx context.Context, url string) error {
	objectName, err := ObjectFromURL(s.publicBase, s.bucket, url)
	if err != nil {
		return err
	}
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

// PublicURL 返回对象的公开访问地址 {base}/{bucket}/{object}
func PublicURL(base, bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, objectName)
}

// ObjectFromURL 从公开地址反解对象名，不属于该bucket的地址返回错误
func ObjectFromURL(base, bucket, url string) (string, error) {
	prefix := strings.TrimRight(base, "/") + "/" + bucket + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", fmt.Errorf("url %q does not belong to bucket %s", url, bucket)
	}
	return strings.TrimPrefix(url, prefix), nil
}
