// Package images resolves a feed row's remote image to a mirrored local file:
// fuzzy column location, header-profile fetching with proxy fallbacks, and an
// idempotent on-disk store.
package images

import (
	"strings"

	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/feed"
)

// Preference order among image columns. Vendors expose several sizes; the
// smaller renditions mirror faster and are what the storefront grid shows.
var columnPreference = []string{"thumb", "small", "medium", "large", "primary", "main", "base"}

// PickImageColumn scans a row for columns whose normalized name contains both
// "image" and "url" ("Image URL", "Large Image URL", "image_url", ...) and
// returns the best candidate's value, normalized to https. Returns "" when no
// image-like column holds a value.
func PickImageColumn(row feed.Row) string {
	type candidate struct {
		key string
		url string
	}
	var candidates []candidate
	for _, col := range row.Columns() {
		key := feed.NormalizeKey(col)
		if !strings.Contains(key, "image") || !strings.Contains(key, "url") {
			continue
		}
		val := row.Get(col)
		if val == "" {
			continue
		}
		candidates = append(candidates, candidate{key: key, url: val})
	}
	if len(candidates) == 0 {
		return ""
	}

	for _, pref := range columnPreference {
		for _, c := range candidates {
			if strings.Contains(c.key, pref) {
				return NormalizeURL(c.url)
			}
		}
	}
	return NormalizeURL(candidates[0].url)
}

// NormalizeURL rewrites protocol-relative URLs to https and upgrades plain
// http. Applied uniformly before any fetch attempt.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "http://"):
		return "https://" + strings.TrimPrefix(raw, "http://")
	}
	return raw
}
