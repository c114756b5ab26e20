package service

import "testing"

func TestParseWorkbookFloat(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"5,000.-", f(5000)},
		{"1200.50", f(1200.50)},
		{" 3..5 ", f(3.5)},
		{"-", nil},
		{"--", nil},
		{"customer", nil},
		{"", nil},
		{"no digits", nil},
	}

	for _, tc := range cases {
		got := parseWorkbookFloat(tc.in)
		if (got == nil) != (tc.want == nil) {
			t.Errorf("parseWorkbookFloat(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		if got != nil && *got != *tc.want {
			t.Errorf("parseWorkbookFloat(%q) = %v, want %v", tc.in, *got, *tc.want)
		}
	}
}

func TestParseWorkbookDate(t *testing.T) {
	if d := parseWorkbookDate("15/3/23"); d == nil || d.Year() != 2023 || int(d.Month()) != 3 || d.Day() != 15 {
		t.Errorf("parseWorkbookDate(15/3/23) = %v", d)
	}
	if d := parseWorkbookDate("2024-01-31"); d == nil || d.Year() != 2024 {
		t.Errorf("parseWorkbookDate(2024-01-31) = %v", d)
	}
	if d := parseWorkbookDate("#VALUE!"); d != nil {
		t.Errorf("Expected nil for #VALUE!, got %v", d)
	}
	if d := parseWorkbookDate("-"); d != nil {
		t.Errorf("Expected nil for dash, got %v", d)
	}
}

func TestParseWeightText(t *testing.T) {
	cases := []struct {
		in      string
		wantCt  *float64
		wantPcs *float64
	}{
		{"0.5ct/2pcs", f(0.5), f(2)},
		{"3.25 ct", f(3.25), nil},
		{"12 pcs", nil, f(12)},
		{"4.1ct/6", f(4.1), f(6)},
		{"1pc.", nil, f(1)},
		{"2.75", f(2.75), nil},
		{"", nil, nil},
	}

	for _, tc := range cases {
		ct, pcs := ParseWeightText(tc.in)
		if !floatPtrEq(ct, tc.wantCt) {
			t.Errorf("ParseWeightText(%q) ct = %v, want %v", tc.in, deref(ct), deref(tc.wantCt))
		}
		if !floatPtrEq(pcs, tc.wantPcs) {
			t.Errorf("ParseWeightText(%q) pcs = %v, want %v", tc.in, deref(pcs), deref(tc.wantPcs))
		}
	}
}

func f(v float64) *float64 { return &v }

func floatPtrEq(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func deref(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
