package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/config"
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/repository"
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/service"
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"go.uber.org/zap"
)

func setupInventoryTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, nil, nil, &config.Config{}, zap.NewNop())
	handlers := NewHandlers(services, repos)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	inventory := api.Group("/inventory")
	inventory.GET("/gemstones", handlers.Inventory.List)
	inventory.GET("/gemstones/:id", handlers.Inventory.Get)
	inventory.POST("/import", handlers.Inventory.Import)

	return router, db
}

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	// 前两行表头
	f.SetCellValue(sheet, "A1", "ROJANATORN STOCK")
	f.SetCellValue(sheet, "A2", "No.")
	f.SetCellValue(sheet, "B2", "Type")

	for i, row := range rows {
		for j, v := range row {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, i+3), v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestInventoryImport(t *testing.T) {
	router, _ := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	workbook := buildWorkbook(t, [][]interface{}{
		{"#101", "Ruby", "0.5ct/2pcs", "Oval", "5,000.-", "", "15/3/23", "", "", "", "Khun A"},
		{"102", "Sapphire", "3 pcs", "Round", "", "800", "", 3, "", "", ""},
	})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "stock.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(workbook.Bytes())
	writer.Close()

	req, _ := http.NewRequest("POST", "/api/v1/inventory/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["imported"].(float64) != 2 {
		t.Errorf("Expected 2 imported rows, got %v", data["imported"])
	}

	// 导入后可查询与取价
	w2 := testutil.DoRequest(router, "GET", "/api/v1/inventory/gemstones?search=Ruby", nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	listData := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	items := listData["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 Ruby item, got %d", len(items))
	}
	ruby := items[0].(map[string]interface{})
	if ruby["code"] != "#101" {
		t.Errorf("Expected code #101, got %v", ruby["code"])
	}
	if ruby["price_per_ct"].(float64) != 5000 {
		t.Errorf("Expected price_per_ct 5000, got %v", ruby["price_per_ct"])
	}
	// 结余列空时由重量文本回填
	if ruby["balance_ct"].(float64) != 0.5 {
		t.Errorf("Expected balance_ct 0.5 from weight text, got %v", ruby["balance_ct"])
	}
}

func TestInventoryImportIdempotent(t *testing.T) {
	router, db := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	send := func() {
		workbook := buildWorkbook(t, [][]interface{}{
			{"201", "Emerald", "1ct", "Pear", "2,000", "", "", "", "", "", ""},
		})
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "stock.xlsx")
		part.Write(workbook.Bytes())
		writer.Close()

		req, _ := http.NewRequest("POST", "/api/v1/inventory/import", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	send()
	send()

	var count int64
	db.Table("gemstone_inventory_items").Count(&count)
	if count != 1 {
		t.Errorf("Expected upsert to keep 1 row, got %d", count)
	}
}
