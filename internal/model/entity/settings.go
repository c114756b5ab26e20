package entity

import (
	"strings"
	"time"
)

// WorkflowStep 生产流程工序配置。Key 集合即工单 Status 的合法取值集合。
type WorkflowStep struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	Key            string    `json:"key" gorm:"size:60;uniqueIndex;not null"`
	Label          string    `json:"label" gorm:"size:100;not null"`
	SortOrder      int       `json:"sort_order" gorm:"default:0"`
	RequirePhoto   bool      `json:"require_photo" gorm:"default:false"`
	RequireComment bool      `json:"require_comment" gorm:"default:false"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (WorkflowStep) TableName() string {
	return "workflow_steps"
}

// CustomFieldDef 工单自定义字段配置
type CustomFieldDef struct {
	ID        string      `json:"id" gorm:"primaryKey;size:32"`
	Key       string      `json:"key" gorm:"size:60;uniqueIndex;not null"`
	Label     string      `json:"label" gorm:"size:100;not null"`
	Type      string      `json:"type" gorm:"size:20;default:text"` // text/textarea/number/date/select
	Options   StringArray `json:"options" gorm:"type:jsonb"`        // select专用
	Required  bool        `json:"required" gorm:"default:false"`
	IsActive  bool        `json:"is_active" gorm:"default:true"`
	IsSystem  bool        `json:"is_system" gorm:"default:false"`
	SortOrder int         `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (CustomFieldDef) TableName() string {
	return "custom_field_defs"
}

// 字段类型
const (
	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeNumber   = "number"
	FieldTypeDate     = "date"
	FieldTypeSelect   = "select"
)

// 系统字段key（不参与归一化，不可删除，只能隐藏）
const (
	SystemFieldDesigner  = "designerName"
	SystemFieldCraftsman = "craftsmanName"
)

// NormalizeKey 归一化工序/字段key：小写，空格和连字符转下划线，其余非字母数字下划线字符剔除
func NormalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r == ' ' || r == '-':
			b.WriteRune('_')
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DefaultWorkflowSteps 默认10道工序流水线。仅在无任何配置时作为兜底返回，从不隐式落库。
func DefaultWorkflowSteps() []WorkflowStep {
	defaults := []struct {
		Key   string
		Label string
	}{
		{"approved", "Approved"},
		{"sent_to_craftsman", "Sent to Craftsman"},
		{"in_production", "In Production"},
		{"stone_setting", "Stone Setting"},
		{"polishing", "Polishing"},
		{"plating", "Plating"},
		{"quality_check", "Quality Check"},
		{"photography", "Photography"},
		{"ready_for_sale", "Ready for Sale"},
		{StatusSold, "Sold"},
	}

	steps := make([]WorkflowStep, 0, len(defaults))
	for i, d := range defaults {
		steps = append(steps, WorkflowStep{
			Key:       d.Key,
			Label:     d.Label,
			SortOrder: i + 1,
			IsActive:  true,
		})
	}
	return steps
}

// DefaultCustomFields 两个内建系统字段
func DefaultCustomFields() []CustomFieldDef {
	return []CustomFieldDef{
		{Key: SystemFieldDesigner, Label: "Designer", Type: FieldTypeText, IsActive: true, IsSystem: true, SortOrder: 1},
		{Key: SystemFieldCraftsman, Label: "Craftsman", Type: FieldTypeText, IsActive: true, IsSystem: true, SortOrder: 2},
	}
}
