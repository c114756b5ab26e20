package entity

import "time"

// GemstoneInventoryItem 宝石库存定价记录。由库存工作簿导入，制作工单按编号/编码取价。
type GemstoneInventoryItem struct {
	ID   string `json:"id" gorm:"primaryKey;size:32"`
	Code string `json:"code" gorm:"size:50;index"` // 宝石编号，工作簿里可能带#前缀

	GemstoneType string `json:"gemstone_type" gorm:"size:100"`
	Shape        string `json:"shape" gorm:"size:50"`
	WeightText   string `json:"weight_text" gorm:"size:100"` // 原始"0.5ct/2pcs"文本

	PricePerCt    *float64 `json:"price_per_ct" gorm:"type:decimal(15,2)"`
	PricePerPiece *float64 `json:"price_per_piece" gorm:"type:decimal(15,2)"`

	BalancePcs *float64 `json:"balance_pcs" gorm:"type:decimal(10,2)"`
	BalanceCt  *float64 `json:"balance_ct" gorm:"type:decimal(10,3)"`

	BuyingDate *time.Time `json:"buying_date" gorm:"type:date"`
	OwnerName  string     `json:"owner_name" gorm:"size:100"`

	SourceSheet string `json:"source_sheet" gorm:"size:100"`
	SourceRow   int    `json:"source_row" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GemstoneInventoryItem) TableName() string {
	return "gemstone_inventory_items"
}
