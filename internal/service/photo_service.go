package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// PhotoService 工单照片存储。minioClient 为 nil 时上传/下载返回 ErrStorageDisabled。
type PhotoService struct {
	minioClient *minio.Client
	bucketName  string
}

// ErrStorageDisabled 对象存储未配置
var ErrStorageDisabled = fmt.Errorf("object storage is not configured")

func NewPhotoService(minioClient *minio.Client, bucketName string) *PhotoService {
	return &PhotoService{minioClient: minioClient, bucketName: bucketName}
}

// Upload 上传一张照片，返回对象路径（存入工单 photos 列表的值）
func (s *PhotoService) Upload(ctx context.Context, reader io.Reader, fileName string, fileSize int64, contentType string) (string, error) {
	if s.minioClient == nil {
		return "", ErrStorageDisabled
	}

	objectName := fmt.Sprintf("manufacturing/%s/%s%s",
		time.Now().Format("2006/01/02"),
		uuid.New().String()[:8],
		filepath.Ext(fileName))

	_, err := s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	return objectName, nil
}

// Download 按对象路径取回照片
func (s *PhotoService) Download(ctx context.Context, objectName string) (io.ReadCloser, error) {
	if s.minioClient == nil {
		return nil, ErrStorageDisabled
	}

	obj, err := s.minioClient.GetObject(ctx, s.bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	return obj, nil
}

// PresignedURL 生成限时下载链接
func (s *PhotoService) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if s.minioClient == nil {
		return "", ErrStorageDisabled
	}

	u, err := s.minioClient.PresignedGetObject(ctx, s.bucketName, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign photo: %w", err)
	}
	return u.String(), nil
}
