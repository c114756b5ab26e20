package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// InventoryService 宝石库存服务：查询与工作簿导入
type InventoryService struct {
	repo   *repository.InventoryRepository
	logger *zap.Logger
}

func NewInventoryService(repo *repository.InventoryRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

// List 库存列表
func (s *InventoryService) List(ctx context.Context, page, pageSize int, search string) ([]entity.GemstoneInventoryItem, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, search)
}

// Get 库存详情
func (s *InventoryService) Get(ctx context.Context, id string) (*entity.GemstoneInventoryItem, error) {
	return s.repo.FindByID(ctx, id)
}

// ImportResult 工作簿导入结果
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportWorkbook 导入库存工作簿首个工作表。
// 列序：编号/类型/重量文本/形状/克拉单价/颗单价/采购日期/结余颗数/结余克拉/使用日期/归属人。
// 前两行是表头；按编号幂等覆盖。
func (s *InventoryService) ImportWorkbook(ctx context.Context, f *excelize.File) (*ImportResult, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < 3 {
			continue
		}
		if rowEmpty(row) {
			continue
		}

		code := normalizeCell(cellAt(row, 0))
		gemstoneType := normalizeCell(cellAt(row, 1))
		if code == "" && gemstoneType == "" {
			result.Skipped++
			continue
		}

		item := &entity.GemstoneInventoryItem{
			Code:          code,
			GemstoneType:  gemstoneType,
			WeightText:    normalizeCell(cellAt(row, 2)),
			Shape:         normalizeCell(cellAt(row, 3)),
			PricePerCt:    parseWorkbookFloat(cellAt(row, 4)),
			PricePerPiece: parseWorkbookFloat(cellAt(row, 5)),
			BuyingDate:    parseWorkbookDate(cellAt(row, 6)),
			BalancePcs:    parseWorkbookFloat(cellAt(row, 7)),
			BalanceCt:     parseWorkbookFloat(cellAt(row, 8)),
			OwnerName:     normalizeCell(cellAt(row, 10)),
			SourceSheet:   sheet,
			SourceRow:     rowNum,
		}

		// 结余列为空时从重量文本回填初始值
		if item.BalanceCt == nil && item.BalancePcs == nil {
			item.BalanceCt, item.BalancePcs = ParseWeightText(item.WeightText)
		}

		if err := s.repo.Upsert(ctx, item); err != nil {
			return nil, err
		}
		result.Imported++
	}

	s.logger.Info("inventory workbook imported",
		zap.String("sheet", sheet),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// === 工作簿单元格解析 ===

var (
	numberPattern = regexp.MustCompile(`-?\d+(?:,\d{3})*(?:\.\d+)?`)
	ctPattern     = regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?)\s*ct`)
	pcsPattern    = regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?)\s*(?:pcs?|pieces?)`)
	slashPattern  = regexp.MustCompile(`/\s*(-?\d+(?:\.\d+)?)`)
)

var workbookDateFormats = []string{
	"2/1/06",
	"2/1/2006",
	"2006-01-02",
	"2-1-2006",
	"1/2/2006",
	"1/2/06",
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// normalizeCell 工作簿里用"-"表示空
func normalizeCell(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}

// parseWorkbookFloat 从"5,000.-"之类的文本里提取数值
func parseWorkbookFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "--" || strings.EqualFold(s, "customer") {
		return nil
	}
	s = strings.ReplaceAll(s, "..", ".")
	match := numberPattern.FindString(s)
	if match == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseWorkbookDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "--" || s == "#VALUE!" {
		return nil
	}
	for _, layout := range workbookDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseWeightText 解析"0.5ct/2pcs"式的重量文本，返回克拉数与颗数
func ParseWeightText(raw string) (ct, pcs *float64) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	lower := strings.ToLower(raw)

	if m := ctPattern.FindStringSubmatch(lower); m != nil {
		ct = parseWorkbookFloat(m[1])
	}
	if m := pcsPattern.FindStringSubmatch(lower); m != nil {
		pcs = parseWorkbookFloat(m[1])
	}
	if pcs == nil {
		if m := slashPattern.FindStringSubmatch(lower); m != nil {
			pcs = parseWorkbookFloat(m[1])
		}
	}

	// "200.-/pc" 或 "1pc." 这类只有一个数字的写法
	if ct == nil && pcs == nil {
		if strings.Contains(lower, "pc") {
			pcs = parseWorkbookFloat(lower)
		} else {
			ct = parseWorkbookFloat(lower)
		}
	}
	return ct, pcs
}
