package service

import (
	"errors"
	"fmt"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/config"
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/repository"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Project   *ProjectService
	Settings  *SettingsService
	Inventory *InventoryService
	Photo     *PhotoService
}

// NewServices 创建服务集合。db/rdb/minioClient 均可为 nil，对应能力按约定降级。
func NewServices(db *gorm.DB, repos *repository.Repositories, rdb *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) *Services {
	settings := NewSettingsService(repos.Settings, rdb)
	return &Services{
		Project:   NewProjectService(db, repos, settings, logger),
		Settings:  settings,
		Inventory: NewInventoryService(repos.Inventory, logger),
		Photo:     NewPhotoService(minioClient, cfg.MinIO.Bucket),
	}
}

// ValidationError 请求校验失败：调用方修正后重试，不会写入任何数据
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError 判断是否为校验错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
