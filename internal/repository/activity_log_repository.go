package repository

import (
	"context"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
	"gorm.io/gorm"
)

// ActivityLogRepository 工单日志仓库
type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// FindByProject 查询工单日志，新到旧
func (r *ActivityLogRepository) FindByProject(ctx context.Context, projectID string, page, pageSize int) ([]entity.ActivityLog, int64, error) {
	if r.db == nil {
		return []entity.ActivityLog{}, 0, nil
	}

	var items []entity.ActivityLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ActivityLog{}).
		Where("project_id = ?", projectID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindAllByProject 查询工单全部日志，新到旧（详情页用）
func (r *ActivityLogRepository) FindAllByProject(ctx context.Context, projectID string) ([]entity.ActivityLog, error) {
	if r.db == nil {
		return []entity.ActivityLog{}, nil
	}

	var items []entity.ActivityLog
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// HasPhotoEvidence 某工单在指定工序是否已有带照片的历史日志
func (r *ActivityLogRepository) HasPhotoEvidence(ctx context.Context, projectID, status string) (bool, error) {
	if r.db == nil {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ActivityLog{}).
		Where("project_id = ? AND status = ?", projectID, status).
		Where("photos IS NOT NULL AND photos::text NOT IN ('[]', 'null')").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
