package repository

import (
	"context"
	"errors"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
	"gorm.io/gorm"
)

// ProjectRepository 制作工单仓库
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindAll 查询工单列表
func (r *ProjectRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.ManufacturingProject, int64, error) {
	if r.db == nil {
		return []entity.ManufacturingProject{}, 0, nil
	}

	var items []entity.ManufacturingProject
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ManufacturingProject{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if pieceType := filters["piece_type"]; pieceType != "" {
		query = query.Where("piece_type = ?", pieceType)
	}
	if customerID := filters["customer_id"]; customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("code ILIKE ? OR piece_name ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Gemstones").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID 根据ID查找工单（含宝石用料行）
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.ManufacturingProject, error) {
	if r.db == nil {
		return nil, ErrNotFound
	}

	var project entity.ManufacturingProject
	err := r.db.WithContext(ctx).
		Preload("Gemstones").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindByCode 根据工单编码查找
func (r *ProjectRepository) FindByCode(ctx context.Context, code string) (*entity.ManufacturingProject, error) {
	if r.db == nil {
		return nil, ErrNotFound
	}

	var project entity.ManufacturingProject
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}
