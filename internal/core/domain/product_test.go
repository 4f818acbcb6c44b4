package domain

import (
	"encoding/json"
	"testing"
)

func TestNormalizeID(t *testing.T) {
	cases := []struct {
		raw  string
		want ProductID
	}{
		{"7", "7"},
		{"7.0", "7"},
		{"07", "7"},
		{" 7 ", "7"},
		{"3.5", "3.5"},
		{"sku-42", "sku-42"},
		{"  sku-42  ", "sku-42"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeID(tc.raw); got != tc.want {
			t.Errorf("NormalizeID(%q): expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestProductID_UnmarshalJSON(t *testing.T) {
	var fromNumber, fromString ProductID
	if err := json.Unmarshal([]byte(`7`), &fromNumber); err != nil {
		t.Fatalf("number id: %v", err)
	}
	if err := json.Unmarshal([]byte(`"7"`), &fromString); err != nil {
		t.Fatalf("string id: %v", err)
	}
	if fromNumber != fromString {
		t.Errorf("7 and \"7\" must decode to the same id: %q vs %q", fromNumber, fromString)
	}

	var bad ProductID
	if err := json.Unmarshal([]byte(`{"nested":true}`), &bad); err == nil {
		t.Error("expected an error for a non-scalar id")
	}
}

func TestProductID_IsZero(t *testing.T) {
	if !ProductID("  ").IsZero() {
		t.Error("whitespace id must count as zero")
	}
	if ProductID("7").IsZero() {
		t.Error("a real id is not zero")
	}
}

func TestPrice_LenientDecoding(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`24.9`, "24.9"},
		{`"12.50"`, "12.5"},
		{`"not a number"`, "0"},
		{`null`, "0"},
		{`true`, "0"},
	}
	for _, tc := range cases {
		var p Price
		if err := json.Unmarshal([]byte(tc.in), &p); err != nil {
			t.Fatalf("price %s: unexpected error %v", tc.in, err)
		}
		if p.String() != tc.want {
			t.Errorf("price %s: expected %s, got %s", tc.in, tc.want, p)
		}
	}
}

func TestClampQty(t *testing.T) {
	cases := []struct{ in, want int }{
		{-3, MinQty},
		{0, MinQty},
		{1, 1},
		{42, 42},
		{99, 99},
		{500, MaxQty},
	}
	for _, tc := range cases {
		if got := ClampQty(tc.in); got != tc.want {
			t.Errorf("ClampQty(%d): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}
