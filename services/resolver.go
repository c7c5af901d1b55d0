package services

import "strings"

// The resolver answers one question for estimation formulas: what price and
// package coverage should this line use, the user's override or the built-in
// default? Formulas never need to know whether a material is a cloned
// default or a custom entry.

// ResolveEffectivePrice finds an active material by case-insensitive name
// within category and returns its price, or defaultPrice when no active
// match exists.
func ResolveEffectivePrice(materials []Material, name, category string, defaultPrice float64) float64 {
	if m := findActiveMaterial(materials, name, category); m != nil {
		return m.Price
	}
	return defaultPrice
}

// ResolveUnitQuantity returns the parsed unit-spec quantity of the matched
// active material (how much base quantity one priced unit covers), or
// defaultQuantity when there is no match or the spec text has no number.
func ResolveUnitQuantity(materials []Material, name, category string, defaultQuantity float64) float64 {
	if m := findActiveMaterial(materials, name, category); m != nil && m.UnitSpec != "" {
		if qty, ok := ParseUnitSpec(m.UnitSpec); ok {
			return qty
		}
	}
	return defaultQuantity
}

// ResolveOverride returns the configuration's value for a pricing component
// key, or defaultValue when the key is absent.
func ResolveOverride(overrides map[string]float64, key string, defaultValue float64) float64 {
	if v, ok := overrides[key]; ok {
		return v
	}
	return defaultValue
}

// findActiveMaterial returns the first non-archived material whose name
// matches case-insensitively within the category.
func findActiveMaterial(materials []Material, name, category string) *Material {
	for i := range materials {
		m := &materials[i]
		if m.Archived || m.Category != category {
			continue
		}
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}
