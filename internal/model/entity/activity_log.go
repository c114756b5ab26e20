package entity

import "time"

// ActivityLog 工单操作日志（只追加，不修改不删除）
type ActivityLog struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	ProjectID string `json:"project_id" gorm:"size:32;not null;index"`

	Status        string      `json:"status" gorm:"size:60"` // 记录时所处工序
	CraftsmanName string      `json:"craftsman_name" gorm:"size:100"`
	Note          string      `json:"note" gorm:"type:text"`
	Photos        StringArray `json:"photos" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "manufacturing_activity_logs"
}
