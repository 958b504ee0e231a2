package images

import (
	"testing"

	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/feed"
)

func TestPickImageColumn(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		values   map[string]string
		expected string
	}{
		{
			name:    "thumb preferred over large",
			columns: []string{"Large Image URL", "Thumb Image URL"},
			values: map[string]string{
				"Thumb Image URL": "//cdn.example/a.jpg",
				"Large Image URL": "https://cdn.example/b.jpg",
			},
			expected: "https://cdn.example/a.jpg",
		},
		{
			name:    "underscore naming",
			columns: []string{"image_url"},
			values: map[string]string{
				"image_url": "http://cdn.example/c.jpg",
			},
			expected: "https://cdn.example/c.jpg",
		},
		{
			name:    "no preference token falls back to first candidate",
			columns: []string{"Name", "Front Image URL", "Back Image URL"},
			values: map[string]string{
				"Name":            "Crew Sock",
				"Front Image URL": "https://cdn.example/front.jpg",
				"Back Image URL":  "https://cdn.example/back.jpg",
			},
			expected: "https://cdn.example/front.jpg",
		},
		{
			name:    "empty-valued candidates skipped",
			columns: []string{"Thumb Image URL", "Large Image URL"},
			values: map[string]string{
				"Thumb Image URL": "",
				"Large Image URL": "https://cdn.example/b.jpg",
			},
			expected: "https://cdn.example/b.jpg",
		},
		{
			name:    "no image column",
			columns: []string{"SKU", "Name"},
			values: map[string]string{
				"SKU":  "ABC",
				"Name": "Crew Sock",
			},
			expected: "",
		},
		{
			name:    "image without url not a candidate",
			columns: []string{"Image Notes"},
			values: map[string]string{
				"Image Notes": "front view",
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := feed.NewRow(tt.columns, tt.values)
			if got := PickImageColumn(row); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"//cdn.example/a.jpg", "https://cdn.example/a.jpg"},
		{"http://cdn.example/a.jpg", "https://cdn.example/a.jpg"},
		{"https://cdn.example/a.jpg", "https://cdn.example/a.jpg"},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.expected {
			t.Errorf("NormalizeURL(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestProfilesFor(t *testing.T) {
	generic := ProfilesFor("https://cdn.example/a.jpg")
	if len(generic) != 2 {
		t.Fatalf("Expected 2 base profiles, got %d", len(generic))
	}
	if generic[0].Referer == "" || generic[1].Referer != "" {
		t.Errorf("Expected storefront referer first and bare profile last, got %+v", generic)
	}

	store := ProfilesFor("https://cdn11.bigcommerce.com/s-abc123/images/stencil/a.jpg")
	if len(store) != 3 {
		t.Fatalf("Expected derived store profile prepended, got %d profiles", len(store))
	}
	if store[0].Referer != "https://store-abc123.mybigcommerce.com/" {
		t.Errorf("Expected derived store referer, got %q", store[0].Referer)
	}
}
