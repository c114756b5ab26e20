package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
	"gorm.io/gorm"
)

// InventoryRepository 宝石库存仓库（取价查询目标）
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// FindAll 查询库存列表
func (r *InventoryRepository) FindAll(ctx context.Context, page, pageSize int, search string) ([]entity.GemstoneInventoryItem, int64, error) {
	if r.db == nil {
		return []entity.GemstoneInventoryItem{}, 0, nil
	}

	var items []entity.GemstoneInventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.GemstoneInventoryItem{})
	if search != "" {
		query = query.Where("code ILIKE ? OR gemstone_type ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("code ASC, id ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID 根据ID查找定价记录
func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*entity.GemstoneInventoryItem, error) {
	if r.db == nil {
		return nil, ErrNotFound
	}

	var item entity.GemstoneInventoryItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCode 按编码查找定价记录：依次尝试原文、#前缀、纯数字三种变体，
// 每种变体按 id 升序取第一条。无匹配返回 ErrNotFound。
func (r *InventoryRepository) FindByCode(ctx context.Context, code string) (*entity.GemstoneInventoryItem, error) {
	if r.db == nil {
		return nil, ErrNotFound
	}

	candidates := []string{code, "#" + code}
	if digits := digitsOnly(code); digits != "" && digits != code {
		candidates = append(candidates, digits)
	}

	for _, candidate := range candidates {
		var item entity.GemstoneInventoryItem
		err := r.db.WithContext(ctx).
			Where("code = ?", candidate).
			Order("id ASC").
			First(&item).Error
		if err == nil {
			return &item, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

// Upsert 按编码更新或插入库存记录（工作簿导入用）
func (r *InventoryRepository) Upsert(ctx context.Context, item *entity.GemstoneInventoryItem) error {
	if r.db == nil {
		return ErrNotConfigured
	}

	if item.Code != "" {
		var existing entity.GemstoneInventoryItem
		err := r.db.WithContext(ctx).
			Where("code = ?", item.Code).
			Order("id ASC").
			First(&existing).Error
		if err == nil {
			item.ID = existing.ID
			item.CreatedAt = existing.CreatedAt
			return r.db.WithContext(ctx).Save(item).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
