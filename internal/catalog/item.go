// Package catalog drives the feed-to-storefront pipeline and owns the
// persisted item model.
package catalog

import (
	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/normalize"
)

// Item is the persisted catalog unit. Every item written to the output has
// InStock true and Qty > 0; Image, when non-empty, is a relative local path
// under the output directory, never a remote URL.
type Item struct {
	SKU      string           `json:"sku" parquet:"sku"`
	Name     string           `json:"name" parquet:"name"`
	Brand    string           `json:"brand" parquet:"brand"`
	Category string           `json:"category" parquet:"category"`
	Gender   normalize.Gender `json:"gender" parquet:"gender"`
	Price    float64          `json:"price,omitempty" parquet:"price"`
	Qty      int              `json:"qty" parquet:"qty"`
	InStock  bool             `json:"inStock" parquet:"in_stock"`
	Image    string           `json:"image" parquet:"image"`
}
