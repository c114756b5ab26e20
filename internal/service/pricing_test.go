package service

import (
	"context"
	"testing"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/repository"
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/testutil"
)

func TestNormalizeGemstoneCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"#123", "123"},
		{"  rb-45 ", "RB-45"},
		{"#", ""},
		{"", ""},
		{"sp99", "SP99"},
	}
	for _, tc := range cases {
		if got := NormalizeGemstoneCode(tc.in); got != tc.want {
			t.Errorf("NormalizeGemstoneCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolvePreferPerCt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	perCt := 5000.0
	perPiece := 800.0
	testutil.SeedInventoryItem(t, db, "inv-001", "101", "Ruby", &perCt, &perPiece)

	resolver := NewPricingResolver(repository.NewInventoryRepository(db))
	line, err := resolver.Resolve(context.Background(), "proj-1", GemstoneLineRequest{
		GemstoneCode: "101",
		WeightUsedCt: 0.5,
		PiecesUsed:   2,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if line.LineCost != 2500.00 {
		t.Errorf("Expected per-ct pricing 2500.00, got %v", line.LineCost)
	}
	if line.GemstoneType != "Ruby" {
		t.Errorf("Expected type inherited from inventory, got %q", line.GemstoneType)
	}
}

func TestResolvePerPieceFallback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	perPiece := 800.0
	testutil.SeedInventoryItem(t, db, "inv-001", "202", "Sapphire", nil, &perPiece)

	resolver := NewPricingResolver(repository.NewInventoryRepository(db))
	line, err := resolver.Resolve(context.Background(), "proj-1", GemstoneLineRequest{
		GemstoneCode: "202",
		PiecesUsed:   3,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if line.LineCost != 2400.00 {
		t.Errorf("Expected per-piece pricing 2400.00, got %v", line.LineCost)
	}
}

func TestResolveHashPrefixVariant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	perCt := 1000.0
	testutil.SeedInventoryItem(t, db, "inv-001", "#77", "Emerald", &perCt, nil)

	resolver := NewPricingResolver(repository.NewInventoryRepository(db))
	line, err := resolver.Resolve(context.Background(), "proj-1", GemstoneLineRequest{
		GemstoneCode: "77",
		WeightUsedCt: 1.25,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if line.LineCost != 1250.00 {
		t.Errorf("Expected 1250.00 via #-prefix variant, got %v", line.LineCost)
	}
}

func TestResolveByInventoryID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	perCt := 2000.0
	testutil.SeedInventoryItem(t, db, "inv-direct", "55", "Spinel", &perCt, nil)

	id := "inv-direct"
	resolver := NewPricingResolver(repository.NewInventoryRepository(db))
	line, err := resolver.Resolve(context.Background(), "proj-1", GemstoneLineRequest{
		InventoryItemID: &id,
		WeightUsedCt:    2,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if line.LineCost != 4000.00 {
		t.Errorf("Expected 4000.00 via id lookup, got %v", line.LineCost)
	}
	if line.GemstoneCode != "55" {
		t.Errorf("Expected code inherited from inventory, got %q", line.GemstoneCode)
	}
}

func TestResolveMissIsSoft(t *testing.T) {
	db := testutil.SetupTestDB(t)

	resolver := NewPricingResolver(repository.NewInventoryRepository(db))
	line, err := resolver.Resolve(context.Background(), "proj-1", GemstoneLineRequest{
		GemstoneCode: "no-such-stone",
		WeightUsedCt: 1,
	})
	if err != nil {
		t.Fatalf("Pricing miss should not error, got %v", err)
	}
	if line.LineCost != 0 {
		t.Errorf("Expected zero cost on miss, got %v", line.LineCost)
	}

	// 调用方手填成本作为兜底
	cost := 321.987
	line, err = resolver.Resolve(context.Background(), "proj-1", GemstoneLineRequest{
		GemstoneCode: "no-such-stone",
		Cost:         &cost,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if line.LineCost != 321.99 {
		t.Errorf("Expected caller cost rounded to 321.99, got %v", line.LineCost)
	}
}

func TestResolveDuplicateCodeLowestID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	first := 100.0
	second := 999.0
	testutil.SeedInventoryItem(t, db, "inv-a", "88", "Garnet", &first, nil)
	testutil.SeedInventoryItem(t, db, "inv-b", "88", "Garnet", &second, nil)

	resolver := NewPricingResolver(repository.NewInventoryRepository(db))
	line, err := resolver.Resolve(context.Background(), "proj-1", GemstoneLineRequest{
		GemstoneCode: "88",
		WeightUsedCt: 1,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if line.LineCost != 100.00 {
		t.Errorf("Expected lowest-id record to win, got cost %v", line.LineCost)
	}
}
