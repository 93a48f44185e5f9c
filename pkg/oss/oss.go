package oss

import (
	"context"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectStorage 媒体文件存储，返回可公开访问的URL
type ObjectStorage interface {
	Upload(ctx context.Context, folder string, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, url string) error
}

// ObjectName 生成 folder/uuid.ext 形式的对象名，扩展名取自上传文件名
func ObjectName(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return folder + "/" + uuid.NewString() + ext
}

// ContentType 上传文件的MIME类型，缺省为application/octet-stream
func ContentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
