package repository

import (
	"context"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DirectoryRepository 设计师/工匠名录仓库
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// FindAll 查询名录，可按角色过滤
func (r *DirectoryRepository) FindAll(ctx context.Context, role string) ([]entity.DirectoryPerson, error) {
	if r.db == nil {
		return []entity.DirectoryPerson{}, nil
	}

	query := r.db.WithContext(ctx).Model(&entity.DirectoryPerson{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var people []entity.DirectoryPerson
	err := query.Order("role ASC, name ASC").Find(&people).Error
	return people, err
}

// UpsertDirectoryPersonTx 在既有事务内按(角色,姓名)幂等建档
func UpsertDirectoryPersonTx(tx *gorm.DB, role, name string) error {
	person := &entity.DirectoryPerson{
		ID:   uuid.New().String()[:32],
		Role: role,
		Name: name,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role"}, {Name: "name"}},
		DoNothing: true,
	}).Create(person).Error
}
