package service

import (
	"testing"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{2500.0, 2500.0},
		{1.23456, 1.23},
		{9.876, 9.88},
		{0.125, 0.13},
		{-0.125, -0.13},
		{0, 0},
	}

	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSumGemstoneCost(t *testing.T) {
	lines := []entity.GemstoneLine{
		{LineCost: 2500.00},
		{LineCost: 1200.50},
		{LineCost: 0.33},
	}
	if got := SumGemstoneCost(lines); got != 3700.83 {
		t.Errorf("SumGemstoneCost = %v, want 3700.83", got)
	}
	if got := SumGemstoneCost(nil); got != 0 {
		t.Errorf("SumGemstoneCost(nil) = %v, want 0", got)
	}
}

func TestAggregateTotalCost(t *testing.T) {
	if got := AggregateTotalCost(1000, 500, 2500, nil); got != 4000 {
		t.Errorf("Computed total = %v, want 4000", got)
	}

	override := 9999.999
	if got := AggregateTotalCost(1000, 500, 2500, &override); got != 10000 {
		t.Errorf("Caller total = %v, want 10000", got)
	}
}

func TestSanitizeStringList(t *testing.T) {
	got := sanitizeStringList([]string{" Gold ", "gold", "", "  ", "Rose Gold", "GOLD"})
	if len(got) != 2 {
		t.Fatalf("Expected 2 tags, got %d: %v", len(got), got)
	}
	if got[0] != "Gold" || got[1] != "Rose Gold" {
		t.Errorf("Unexpected tags: %v", got)
	}
}

func TestSanitizeCustomFields(t *testing.T) {
	blank := "   "
	value := "18K"
	dup := "duplicate"

	got := sanitizeCustomFields(map[string]*string{
		"metal":  &value,
		"Metal":  &dup,
		"empty":  &blank,
		"absent": nil,
	})

	if len(got) != 1 {
		t.Fatalf("Expected 1 field, got %d: %v", len(got), got)
	}
	// 排序后小写key先到先得
	if v, ok := got["Metal"]; !ok || *v != dup {
		t.Errorf("Expected Metal=%q kept, got %v", dup, got)
	}
}

func TestHasNonBlank(t *testing.T) {
	if hasNonBlank([]string{"", "  "}) {
		t.Error("Expected false for all-blank list")
	}
	if !hasNonBlank([]string{"", "photo.jpg"}) {
		t.Error("Expected true when a non-blank item exists")
	}
}
