package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/repository"
	"github.com/google/uuid"
)

// GemstoneLineRequest 宝石用料行请求
type GemstoneLineRequest struct {
	InventoryItemID *string  `json:"inventory_item_id"`
	GemstoneCode    string   `json:"gemstone_code"`
	GemstoneType    string   `json:"gemstone_type"`
	PiecesUsed      float64  `json:"pieces_used"`
	WeightUsedCt    float64  `json:"weight_used_ct"`
	Cost            *float64 `json:"cost"`
	Notes           string   `json:"notes"`
}

// PricingResolver 宝石取价器。一次保存操作建一个，
// 同一库存ID/编码重复出现时不重复查库。
type PricingResolver struct {
	inventoryRepo *repository.InventoryRepository
	byID          map[string]*entity.GemstoneInventoryItem
	byCode        map[string]*entity.GemstoneInventoryItem
}

func NewPricingResolver(inventoryRepo *repository.InventoryRepository) *PricingResolver {
	return &PricingResolver{
		inventoryRepo: inventoryRepo,
		byID:          make(map[string]*entity.GemstoneInventoryItem),
		byCode:        make(map[string]*entity.GemstoneInventoryItem),
	}
}

// NormalizeGemstoneCode 去掉前导#、去空白、转大写
func NormalizeGemstoneCode(code string) string {
	code = strings.TrimSpace(code)
	code = strings.TrimPrefix(code, "#")
	return strings.ToUpper(code)
}

// Resolve 解析一行用料的成本与编码/类型。
// 取价顺序：库存ID → 编码（原文/#前缀/纯数字变体）。查不到价时回退调用方成本，
// 再没有则记零，允许先记用料后补价，不算错误。
func (r *PricingResolver) Resolve(ctx context.Context, projectID string, req GemstoneLineRequest) (entity.GemstoneLine, error) {
	line := entity.GemstoneLine{
		ID:              uuid.New().String()[:32],
		ProjectID:       projectID,
		InventoryItemID: req.InventoryItemID,
		GemstoneCode:    strings.TrimSpace(req.GemstoneCode),
		GemstoneType:    strings.TrimSpace(req.GemstoneType),
		PiecesUsed:      req.PiecesUsed,
		WeightUsedCt:    req.WeightUsedCt,
		Notes:           req.Notes,
		CreatedAt:       time.Now(),
	}

	item, err := r.lookup(ctx, req)
	if err != nil {
		return line, err
	}

	cost := 0.0
	if req.Cost != nil {
		cost = *req.Cost
	}

	if item != nil {
		switch {
		case item.PricePerCt != nil && *item.PricePerCt > 0 && req.WeightUsedCt > 0:
			cost = *item.PricePerCt * req.WeightUsedCt
		case item.PricePerPiece != nil && *item.PricePerPiece > 0 && req.PiecesUsed > 0:
			cost = *item.PricePerPiece * req.PiecesUsed
		}

		if line.GemstoneCode == "" {
			line.GemstoneCode = item.Code
		}
		if line.GemstoneType == "" {
			line.GemstoneType = item.GemstoneType
		}
	}

	line.LineCost = Round2(cost)
	return line, nil
}

// lookup 带缓存的库存定价查询；查无此价返回 (nil, nil)
func (r *PricingResolver) lookup(ctx context.Context, req GemstoneLineRequest) (*entity.GemstoneInventoryItem, error) {
	if req.InventoryItemID != nil && *req.InventoryItemID != "" {
		id := *req.InventoryItemID
		if cached, ok := r.byID[id]; ok {
			return cached, nil
		}
		item, err := r.inventoryRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				r.byID[id] = nil
				return nil, nil
			}
			return nil, err
		}
		r.byID[id] = item
		return item, nil
	}

	code := NormalizeGemstoneCode(req.GemstoneCode)
	if code == "" {
		return nil, nil
	}
	if cached, ok := r.byCode[code]; ok {
		return cached, nil
	}
	item, err := r.inventoryRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			r.byCode[code] = nil
			return nil, nil
		}
		return nil, err
	}
	r.byCode[code] = item
	return item, nil
}
