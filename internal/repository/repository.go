package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrNotConfigured 数据库未配置时写路径返回；读路径降级为空结果
	ErrNotConfigured = errors.New("database not configured")
)

// Repositories 仓库集合
type Repositories struct {
	Project     *ProjectRepository
	ActivityLog *ActivityLogRepository
	Settings    *SettingsRepository
	Inventory   *InventoryRepository
	Directory   *DirectoryRepository
}

// NewRepositories 创建仓库集合。db 可为 nil（未配置时各仓库按约定降级）。
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Project:     NewProjectRepository(db),
		ActivityLog: NewActivityLogRepository(db),
		Settings:    NewSettingsRepository(db),
		Inventory:   NewInventoryRepository(db),
		Directory:   NewDirectoryRepository(db),
	}
}
