package handler

import (
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// InventoryHandler 宝石库存处理器
type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List 库存列表
func (h *InventoryHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, c.Query("search"))
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: NewPagination(page, pageSize, total),
	})
}

// Get 库存详情
func (h *InventoryHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Inventory item ID is required")
		return
	}

	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, item)
}

// Import 导入库存工作簿
func (h *InventoryHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "Excel file is required")
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		BadRequest(c, "Cannot parse Excel file: "+err.Error())
		return
	}
	defer f.Close()

	result, err := h.svc.ImportWorkbook(c.Request.Context(), f)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, result)
}
