package entity

import "time"

// ManufacturingProject 制作工单（一件正在生产流程中的首饰）
type ManufacturingProject struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	Code      string `json:"code" gorm:"size:50;uniqueIndex;not null"` // 如 MFG-100
	PieceName string `json:"piece_name" gorm:"size:200;not null"`
	PieceType string `json:"piece_type" gorm:"size:30"` // ring/necklace/... /other
	Status    string `json:"status" gorm:"size:60;not null"` // 当前工序，取值来自workflow_steps

	DesignerName  string `json:"designer_name" gorm:"size:100"`
	CraftsmanName string `json:"craftsman_name" gorm:"size:100"`

	PlatingTags StringArray `json:"plating_tags" gorm:"type:jsonb"`

	// 成本（泰铢）
	SettingCost  float64 `json:"setting_cost" gorm:"type:decimal(15,2);default:0"`
	DiamondCost  float64 `json:"diamond_cost" gorm:"type:decimal(15,2);default:0"`
	GemstoneCost float64 `json:"gemstone_cost" gorm:"type:decimal(15,2);default:0"`
	TotalCost    float64 `json:"total_cost" gorm:"type:decimal(15,2);default:0"`
	SellingPrice float64 `json:"selling_price" gorm:"type:decimal(15,2);default:0"`

	CompletedAt *time.Time `json:"completed_at"`
	UsageNotes  string     `json:"usage_notes" gorm:"type:text"`
	Photos      StringArray `json:"photos" gorm:"type:jsonb"`

	// 售出信息：SoldAt 非空 当且仅当 Status == sold
	CustomerID *string    `json:"customer_id" gorm:"size:36"`
	SoldAt     *time.Time `json:"sold_at"`

	CustomFields CustomFieldValues `json:"custom_fields" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Gemstones []GemstoneLine `json:"gemstones,omitempty" gorm:"foreignKey:ProjectID"`
	Activity  []ActivityLog  `json:"activity,omitempty" gorm:"-"`
}

func (ManufacturingProject) TableName() string {
	return "manufacturing_projects"
}

// 件型
const (
	PieceTypeRing           = "ring"
	PieceTypeNecklace       = "necklace"
	PieceTypeBracelet       = "bracelet"
	PieceTypeEarrings       = "earrings"
	PieceTypeBrooch         = "brooch"
	PieceTypePendant        = "pendant"
	PieceTypeClipsCufflinks = "clips_cufflinks"
	PieceTypeOther          = "other"
)

// ValidPieceTypes 合法件型集合
var ValidPieceTypes = map[string]bool{
	PieceTypeRing:           true,
	PieceTypeNecklace:       true,
	PieceTypeBracelet:       true,
	PieceTypeEarrings:       true,
	PieceTypeBrooch:         true,
	PieceTypePendant:        true,
	PieceTypeClipsCufflinks: true,
	PieceTypeOther:          true,
}

// StatusSold 售出是唯一带副作用的工序
const StatusSold = "sold"

// GemstoneLine 宝石用料行（随工单整体替换，不做行级修改）
type GemstoneLine struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	ProjectID string `json:"project_id" gorm:"size:32;not null;index"`

	InventoryItemID *string `json:"inventory_item_id" gorm:"size:32"`
	GemstoneCode    string  `json:"gemstone_code" gorm:"size:50"`
	GemstoneType    string  `json:"gemstone_type" gorm:"size:100"`

	PiecesUsed   float64 `json:"pieces_used" gorm:"type:decimal(10,2);default:0"`
	WeightUsedCt float64 `json:"weight_used_ct" gorm:"type:decimal(10,3);default:0"`
	LineCost     float64 `json:"line_cost" gorm:"type:decimal(15,2);default:0"`

	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (GemstoneLine) TableName() string {
	return "manufacturing_gemstones"
}
