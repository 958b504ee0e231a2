package feed

import (
	"testing"
)

func TestParseRows(t *testing.T) {
	text := "SKU,Name,Current Stock,Image URL\n" +
		"ABC123,Crew Sock,12,https://cdn.example/a.jpg\n" +
		"DEF456,Ankle Sock,0,\n" +
		",,,\n" +
		"GHI789,Knee Sock\n"

	rows, err := ParseRows(text)
	if err != nil {
		t.Fatalf("ParseRows returned error: %v", err)
	}

	// Blank row is dropped, short row is padded
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	if got := rows[0].Get("SKU"); got != "ABC123" {
		t.Errorf("Expected SKU ABC123, got %q", got)
	}
	if got := rows[2].Get("Current Stock"); got != "" {
		t.Errorf("Expected empty stock for short record, got %q", got)
	}

	cols := rows[0].Columns()
	if len(cols) != 4 || cols[0] != "SKU" || cols[3] != "Image URL" {
		t.Errorf("Expected header order preserved, got %v", cols)
	}
}

func TestParseRowsEmpty(t *testing.T) {
	rows, err := ParseRows("")
	if err != nil {
		t.Fatalf("ParseRows returned error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(rows))
	}
}

func TestLookup(t *testing.T) {
	row := NewRow(
		[]string{"Item Number", "Current Stock", "Brand Name"},
		map[string]string{
			"Item Number":   " ABC123 ",
			"Current Stock": "7",
			"Brand Name":    "Acme",
		},
	)

	tests := []struct {
		name     string
		variants []string
		expected string
	}{
		{name: "exact variant", variants: []string{"Current Stock"}, expected: "7"},
		{name: "separator insensitive", variants: []string{"CurrentStock"}, expected: "7"},
		{name: "first matching variant wins", variants: []string{"SKU", "Item", "ItemNumber"}, expected: "ABC123"},
		{name: "absent column", variants: []string{"Qty", "Available"}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := row.Lookup(tt.variants...); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Image URL", "imageurl"},
		{"image_url", "imageurl"},
		{"Large Image URL", "largeimageurl"},
		{"  Current-Stock ", "currentstock"},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.expected {
			t.Errorf("NormalizeKey(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
