package entity

import "time"

// DirectoryPerson 设计师/工匠名录。在工单上填写人名时自动建档，按(角色,姓名)去重。
type DirectoryPerson struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Role      string    `json:"role" gorm:"size:20;not null;uniqueIndex:idx_directory_role_name"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_directory_role_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DirectoryPerson) TableName() string {
	return "directory_people"
}

// 名录角色
const (
	DirectoryRoleDesigner  = "designer"
	DirectoryRoleCraftsman = "craftsman"
)
