package repository

import (
	"context"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingsRepository 流程工序与自定义字段配置仓库
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// FindSteps 按排序读取全部工序配置
func (r *SettingsRepository) FindSteps(ctx context.Context) ([]entity.WorkflowStep, error) {
	if r.db == nil {
		return []entity.WorkflowStep{}, nil
	}

	var steps []entity.WorkflowStep
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, key ASC").
		Find(&steps).Error
	return steps, err
}

// FindFields 按排序读取全部字段配置
func (r *SettingsRepository) FindFields(ctx context.Context) ([]entity.CustomFieldDef, error) {
	if r.db == nil {
		return []entity.CustomFieldDef{}, nil
	}

	var fields []entity.CustomFieldDef
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, key ASC").
		Find(&fields).Error
	return fields, err
}

// ReplaceAll 整体替换配置：同一事务内先清空再插入，失败则旧配置原样保留
func (r *SettingsRepository) ReplaceAll(ctx context.Context, steps []entity.WorkflowStep, fields []entity.CustomFieldDef) error {
	if r.db == nil {
		return ErrNotConfigured
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.WorkflowStep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&entity.CustomFieldDef{}).Error; err != nil {
			return err
		}

		for i := range steps {
			if steps[i].ID == "" {
				steps[i].ID = uuid.New().String()[:32]
			}
		}
		for i := range fields {
			if fields[i].ID == "" {
				fields[i].ID = uuid.New().String()[:32]
			}
		}

		if len(steps) > 0 {
			if err := tx.Create(&steps).Error; err != nil {
				return err
			}
		}
		if len(fields) > 0 {
			if err := tx.Create(&fields).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
