package catalog

import (
	"encoding/json"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/normalize"
)

// overrideRule is one entry in the override file: either an exact SKU match
// or a name-matching pattern, mapping to a forced gender tag.
type overrideRule struct {
	SKU       string `json:"sku,omitempty"`
	NameRegex string `json:"name_regex,omitempty"`
	Gender    string `json:"gender"`
}

type skuOverride struct {
	sku    string
	gender normalize.Gender
}

type patternOverride struct {
	re     *regexp.Regexp
	gender normalize.Gender
}

// Overrides holds externally supplied gender corrections. SKU rules are
// checked before pattern rules; within each group the file's order decides
// and the first match wins.
type Overrides struct {
	skus     []skuOverride
	patterns []patternOverride
}

// LoadOverrides reads the optional override file. A missing or malformed
// file means zero overrides, never a failed run. Individual rules with an
// invalid pattern or unknown gender tag are skipped with a warning.
func LoadOverrides(path string) *Overrides {
	o := &Overrides{}
	if path == "" {
		return o
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read gender overrides", "path", path, "err", err)
		}
		return o
	}

	var rules []overrideRule
	if err := json.Unmarshal(data, &rules); err != nil {
		slog.Warn("Failed to parse gender overrides, ignoring file", "path", path, "err", err)
		return o
	}

	for _, rule := range rules {
		gender, ok := normalize.ParseGenderTag(rule.Gender)
		if !ok {
			slog.Warn("Skipping override with unknown gender", "gender", rule.Gender)
			continue
		}
		switch {
		case rule.SKU != "":
			o.skus = append(o.skus, skuOverride{sku: strings.ToLower(strings.TrimSpace(rule.SKU)), gender: gender})
		case rule.NameRegex != "":
			// Inline (?i) markers in the pattern are honored as-is.
			re, err := regexp.Compile(rule.NameRegex)
			if err != nil {
				slog.Warn("Skipping override with invalid pattern", "pattern", rule.NameRegex, "err", err)
				continue
			}
			o.patterns = append(o.patterns, patternOverride{re: re, gender: gender})
		}
	}

	slog.Info("Loaded gender overrides", "sku_rules", len(o.skus), "pattern_rules", len(o.patterns))
	return o
}

// Len returns the total number of usable rules.
func (o *Overrides) Len() int {
	return len(o.skus) + len(o.patterns)
}

// Apply returns the forced gender for an item, or the inferred gender
// untouched when no rule matches. SKU comparison is case-insensitive.
func (o *Overrides) Apply(sku, name string, inferred normalize.Gender) normalize.Gender {
	lowered := strings.ToLower(strings.TrimSpace(sku))
	for _, rule := range o.skus {
		if rule.sku == lowered {
			return rule.gender
		}
	}
	for _, rule := range o.patterns {
		if rule.re.MatchString(name) {
			return rule.gender
		}
	}
	return inferred
}
