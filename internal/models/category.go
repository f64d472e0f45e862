package models

import (
	"fmt"
	"strings"
)

// Category classifies maintenance items. The value is a stable code; use Label for display text.
type Category string

const (
	CategoryEngine       Category = "engine"
	CategoryTransmission Category = "transmission"
	CategoryCooling      Category = "cooling"
	CategoryElectrical   Category = "electrical"
	CategorySuspension   Category = "suspension"
	CategoryBrake        Category = "brake"
	CategoryFilter       Category = "filter"
)

// Categories lists every category in catalog order.
var Categories = []Category{
	CategoryEngine,
	CategoryTransmission,
	CategoryCooling,
	CategoryElectrical,
	CategorySuspension,
	CategoryBrake,
	CategoryFilter,
}

var categoryLabels = map[Category]string{
	CategoryEngine:       "引擎",
	CategoryTransmission: "傳動",
	CategoryCooling:      "冷卻",
	CategoryElectrical:   "電氣",
	CategorySuspension:   "懸吊",
	CategoryBrake:        "煞車",
	CategoryFilter:       "濾清",
}

// IsValidCategory checks if a category is one of the known codes
func IsValidCategory(c Category) bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the zh-TW display label, or the raw code for unknown categories.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseCategory accepts either a category code ("engine") or its display label ("引擎").
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if c := Category(strings.ToLower(s)); IsValidCategory(c) {
		return c, nil
	}
	for c, label := range categoryLabels {
		if label == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown maintenance category %q", s)
}
