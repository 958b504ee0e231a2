package images

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBaseNameFor(t *testing.T) {
	tests := []struct {
		name     string
		sku      string
		url      string
		expected string
	}{
		{name: "plain sku", sku: "ABC123", url: "https://cdn.example/a.jpg", expected: "ABC123"},
		{name: "unsafe characters sanitized", sku: "AB/C 12#3", url: "", expected: "AB_C_12_3"},
		{name: "dots and dashes kept", sku: "AB-C.123", url: "", expected: "AB-C.123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BaseNameFor(tt.sku, tt.url); got != tt.expected {
				t.Errorf("BaseNameFor(%q) = %q, expected %q", tt.sku, got, tt.expected)
			}
		})
	}
}

func TestBaseNameForHashesURLWithoutSKU(t *testing.T) {
	a := BaseNameFor("", "https://cdn.example/a.jpg")
	b := BaseNameFor("", "https://cdn.example/a.jpg")
	c := BaseNameFor("", "https://cdn.example/b.jpg")

	if a != b {
		t.Errorf("Expected deterministic hash, got %q and %q", a, b)
	}
	if a == c {
		t.Error("Expected different URLs to hash differently")
	}
	if len(a) != 40 {
		t.Errorf("Expected sha1 hex base, got %q", a)
	}
}

func TestExtFor(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		expected    string
	}{
		{name: "url extension wins", url: "https://cdn.example/a.PNG", contentType: "image/webp", expected: "png"},
		{name: "webp from content type", url: "https://cdn.example/a", contentType: "image/webp", expected: "webp"},
		{name: "png from content type", url: "https://cdn.example/a", contentType: "image/png", expected: "png"},
		{name: "gif from content type", url: "https://cdn.example/a", contentType: "image/gif", expected: "gif"},
		{name: "default jpg", url: "https://cdn.example/a", contentType: "image/jpeg", expected: "jpg"},
		{name: "no hints", url: "https://cdn.example/a", contentType: "", expected: "jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtFor(tt.url, tt.contentType); got != tt.expected {
				t.Errorf("ExtFor(%q, %q) = %q, expected %q", tt.url, tt.contentType, got, tt.expected)
			}
		})
	}
}

func TestStoreSaveAndFindValid(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "images"))

	data := bytes.Repeat([]byte{0xAB}, MinImageBytes)
	rel, err := store.Save("ABC123.jpg", data)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if rel != "images/ABC123.jpg" {
		t.Errorf("Expected relative path images/ABC123.jpg, got %q", rel)
	}

	name, ok := store.FindValid("ABC123")
	if !ok || name != "ABC123.jpg" {
		t.Errorf("Expected FindValid to report ABC123.jpg, got %q (%v)", name, ok)
	}

	if _, ok := store.FindValid("DEF456"); ok {
		t.Error("Expected FindValid to miss for unknown base")
	}
}

func TestStoreFindValidIgnoresUndersized(t *testing.T) {
	dir := t.TempDir()
	imagesDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		t.Fatal(err)
	}
	// Leftover from an interrupted run, below the valid-image threshold
	if err := os.WriteFile(filepath.Join(imagesDir, "ABC123.jpg"), []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(imagesDir)
	if _, ok := store.FindValid("ABC123"); ok {
		t.Error("Expected undersized file to be treated as invalid")
	}
}
